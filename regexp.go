package quill

import "regexp"

func init() {
	RegisterClass("Regex", ClassDef{
		Parents: []string{"Basic"},
		Populate: func(vm *VM, class *Object) error {
			class.SetOwnAttr(Intern("match"), vm.NewFn(regexMatch))
			class.SetOwnAttr(Intern("does_match"), vm.NewFn(regexDoesMatch))
			class.SetOwnAttr(LitEqual, vm.NewFn(regexEqual))
			class.SetOwnAttr(LitText, vm.NewFn(regexText))
			class.SetOwnAttr(LitInspect, vm.NewFn(regexText))
			return nil
		},
	})
}

// NewRegex compiles a pattern into a Regex object.
func (vm *VM) NewRegex(pattern string) (*Object, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return vm.instance("Regex", re), nil
}

// RegexValue returns the object's compiled pattern payload, or a
// DowncastError.
func (vm *VM) RegexValue(o *Object) (*regexp.Regexp, error) {
	o.Lock()
	v, ok := o.Value.(*regexp.Regexp)
	o.Unlock()
	if !ok {
		return nil, &DowncastError{Want: "Regex", Have: payloadName(o)}
	}
	return v, nil
}

func regexArg(vm *VM, args Args) (*regexp.Regexp, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	return vm.RegexValue(this)
}

// regexMatch captures against the argument, which is converted to Text
// first. The result is a list of the capture groups, the whole match first,
// with Null standing in for groups that did not participate; no match at
// all yields Null.
func regexMatch(vm *VM, self *Object, args Args) (*Object, error) {
	re, err := regexArg(vm, args)
	if err != nil {
		return nil, err
	}
	arg, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	s, err := vm.coerceText(arg)
	if err != nil {
		return nil, err
	}
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return vm.Null, nil
	}
	elems := make([]*Object, 0, len(m)/2)
	for i := 0; i < len(m); i += 2 {
		if m[i] < 0 {
			elems = append(elems, vm.Null)
			continue
		}
		elems = append(elems, vm.NewText(s[m[i]:m[i+1]]))
	}
	return vm.NewList(elems...), nil
}

func regexDoesMatch(vm *VM, self *Object, args Args) (*Object, error) {
	re, err := regexArg(vm, args)
	if err != nil {
		return nil, err
	}
	arg, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	s, err := vm.coerceText(arg)
	if err != nil {
		return nil, err
	}
	return vm.Bool(re.MatchString(s)), nil
}

// regexEqual compares source patterns; a non-Regex argument is unequal.
func regexEqual(vm *VM, self *Object, args Args) (*Object, error) {
	re, err := regexArg(vm, args)
	if err != nil {
		return nil, err
	}
	other, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	rhs, err := vm.RegexValue(other)
	if err != nil {
		return vm.False, nil
	}
	return vm.Bool(re.String() == rhs.String()), nil
}

func regexText(vm *VM, self *Object, args Args) (*Object, error) {
	re, err := regexArg(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.NewText("/" + re.String() + "/"), nil
}
