package quill

func init() {
	RegisterClass("Null", ClassDef{
		Parents: []string{"Basic"},
		Populate: func(vm *VM, class *Object) error {
			class.SetOwnAttr(LitBool, vm.NewFn(nullBool))
			class.SetOwnAttr(LitText, vm.NewFn(nullText))
			class.SetOwnAttr(LitInspect, vm.NewFn(nullText))
			return nil
		},
	})
}

// The null singleton is falsey; it is also the value a missing-attribute
// hook returns to decline, so nothing in the resolver ever converts it.
func nullBool(vm *VM, self *Object, args Args) (*Object, error) {
	if _, err := args.TryAt(0); err != nil {
		return nil, err
	}
	return vm.False, nil
}

func nullText(vm *VM, self *Object, args Args) (*Object, error) {
	if _, err := args.TryAt(0); err != nil {
		return nil, err
	}
	return vm.NewText("null"), nil
}
