package quill

// Args is the argument list of an invocation.
type Args []*Object

// Len returns the number of arguments.
func (a Args) Len() int {
	return len(a)
}

// At returns the nth argument, or false if n is out of bounds.
func (a Args) At(n int) (*Object, bool) {
	if n < 0 || n >= len(a) {
		return nil, false
	}
	return a[n], true
}

// TryAt returns the nth argument, failing with an ArityError carrying the
// requested index and actual length if the list is too short.
func (a Args) TryAt(n int) (*Object, error) {
	if n < 0 || n >= len(a) {
		return nil, &ArityError{Index: n, Len: len(a)}
	}
	return a[n], nil
}

// From returns the arguments from position n onward. An out-of-bounds n
// yields an empty list.
func (a Args) From(n int) Args {
	if n < 0 || n >= len(a) {
		return nil
	}
	return a[n:]
}

// Prepend returns a new argument list with v in front of the receiver.
func (a Args) Prepend(v *Object) Args {
	r := make(Args, 0, len(a)+1)
	r = append(r, v)
	return append(r, a...)
}
