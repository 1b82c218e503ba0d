package quill

func init() {
	RegisterClass("Basic", ClassDef{
		Parents: []string{"Pristine"},
		Populate: func(vm *VM, class *Object) error {
			class.SetOwnAttr(LitEqual, vm.NewFn(basicEqual))
			class.SetOwnAttr(LitNotEqual, vm.NewFn(basicNotEqual))
			class.SetOwnAttr(LitBool, vm.NewFn(basicBool))
			return nil
		},
	})
}

// basicEqual is the default equality predicate: object identity. Concrete
// types override it with payload comparison.
func basicEqual(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	other, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	return vm.Bool(this == other), nil
}

// basicNotEqual negates whatever == the receiver actually dispatches to, so
// overriding == is enough to get != for free.
func basicNotEqual(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	other, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	r, err := vm.CallAttr(this, LitEqual, Args{other})
	if err != nil {
		return nil, err
	}
	eq, err := vm.BoolValue(r)
	if err != nil {
		return nil, err
	}
	return vm.Bool(!eq), nil
}

// Everything is truthy unless its type says otherwise.
func basicBool(vm *VM, self *Object, args Args) (*Object, error) {
	if _, err := args.TryAt(0); err != nil {
		return nil, err
	}
	return vm.True, nil
}

// Truthy converts any object to a Go bool through its @bool hook.
func (vm *VM) Truthy(o *Object) (bool, error) {
	if b, err := vm.BoolValue(o); err == nil {
		return b, nil
	}
	r, err := vm.CallAttr(o, LitBool, nil)
	if err != nil {
		return false, err
	}
	return vm.BoolValue(r)
}
