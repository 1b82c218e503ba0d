package quill

func init() {
	RegisterClass("Boolean", ClassDef{
		Parents: []string{"Basic"},
		Populate: func(vm *VM, class *Object) error {
			class.SetOwnAttr(LitEqual, vm.NewFn(booleanEqual))
			class.SetOwnAttr(LitBool, vm.NewFn(booleanBool))
			class.SetOwnAttr(LitNum, vm.NewFn(booleanNum))
			class.SetOwnAttr(LitText, vm.NewFn(booleanText))
			class.SetOwnAttr(LitInspect, vm.NewFn(booleanText))
			class.SetOwnAttr(Intern("not"), vm.NewFn(booleanNot))
			return nil
		},
	})
}

func booleanEqual(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	other, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	a, err := vm.BoolValue(this)
	if err != nil {
		return nil, err
	}
	b, err := vm.BoolValue(other)
	if err != nil {
		return vm.False, nil
	}
	return vm.Bool(a == b), nil
}

func booleanBool(vm *VM, self *Object, args Args) (*Object, error) {
	return args.TryAt(0)
}

func booleanNum(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	v, err := vm.BoolValue(this)
	if err != nil {
		return nil, err
	}
	if v {
		return vm.NewNumber(1), nil
	}
	return vm.NewNumber(0), nil
}

func booleanText(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	v, err := vm.BoolValue(this)
	if err != nil {
		return nil, err
	}
	if v {
		return vm.NewText("true"), nil
	}
	return vm.NewText("false"), nil
}

func booleanNot(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	v, err := vm.BoolValue(this)
	if err != nil {
		return nil, err
	}
	return vm.Bool(!v), nil
}
