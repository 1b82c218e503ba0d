package quill

import "fmt"

// MissingAttributeError reports that an attribute was not found on an object
// or any of its ancestors after full resolution.
type MissingAttributeError struct {
	// Key is the attribute that was requested.
	Key Literal
	// Receiver is the id of the object the request was made on.
	Receiver uintptr
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("attribute %q missing from object %d", string(e.Key), e.Receiver)
}

// NotFoundError reports deletion of an attribute that is not in the object's
// own store.
type NotFoundError struct {
	Key Literal
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("attribute %q not found", string(e.Key))
}

// ArityError reports an argument list too short for a required positional
// argument.
type ArityError struct {
	// Index is the argument position that was requested.
	Index int
	// Len is the actual length of the argument list.
	Len int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("missing argument %d (have %d)", e.Index, e.Len)
}

// InitializationError reports that a class's one-time population failed. The
// class stays poisoned: every later request for it receives this error.
type InitializationError struct {
	Class string
	Err   error
}

func (e *InitializationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("class %s failed to initialize", e.Class)
	}
	return fmt.Sprintf("class %s failed to initialize: %v", e.Class, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// DowncastError reports a native-payload operation invoked on an object whose
// payload is not the expected type.
type DowncastError struct {
	// Want is the name of the expected payload type.
	Want string
	// Have describes the payload actually present.
	Have string
}

func (e *DowncastError) Error() string {
	return fmt.Sprintf("payload must be %s, not %s", e.Want, e.Have)
}
