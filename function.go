package quill

func init() {
	RegisterClass("Fn", ClassDef{
		Parents: []string{"Basic"},
		Populate: func(vm *VM, class *Object) error {
			call := vm.NewFn(fnInvoke)
			class.SetOwnAttr(LitCall, call)
			// Native functions never open a scope of their own, so the
			// scoped and scopeless entry points coincide.
			class.SetOwnAttr(LitCallNoScope, call)
			class.SetOwnAttr(LitInspect, vm.NewFn(fnInspect))
			return nil
		},
	})
}

// FnValue returns the object's native function payload, or a DowncastError.
func (vm *VM) FnValue(o *Object) (Fn, error) {
	fn, ok := fnValue(o)
	if !ok {
		return nil, &DowncastError{Want: "Fn", Have: payloadName(o)}
	}
	return fn, nil
}

// fnInvoke is the () entry point of a function object. Direct invocation
// through VM.Call bottoms out on the payload without reaching here; this
// path serves explicit retrieval of the entry point, which arrives bound,
// with the function object as the leading argument.
func fnInvoke(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	fn, err := vm.FnValue(this)
	if err != nil {
		return nil, err
	}
	return fn(vm, this, args.From(1))
}

func fnInspect(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	return vm.NewText("<fn:" + vm.typeName(this) + ">"), nil
}
