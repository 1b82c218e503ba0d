package quill

import (
	"errors"
	"fmt"
)

func init() {
	RegisterClass("Pristine", ClassDef{
		// The root class is its own sole parent, terminating every
		// inheritance chain.
		Parents: []string{"Pristine"},
		Populate: func(vm *VM, class *Object) error {
			get := vm.NewFn(pristineGetAttr)
			set := vm.NewFn(pristineSetAttr)
			class.SetOwnAttr(LitInspect, vm.NewFn(pristineInspect))
			class.SetOwnAttr(LitKeys, vm.NewFn(pristineKeys))
			class.SetOwnAttr(LitCallAttr, vm.NewFn(pristineCallAttr))
			class.SetOwnAttr(LitGetAttr, get)
			class.SetOwnAttr(LitSetAttr, set)
			class.SetOwnAttr(LitHasAttr, vm.NewFn(pristineHasAttr))
			class.SetOwnAttr(LitDelAttr, vm.NewFn(pristineDelAttr))
			class.SetOwnAttr(LitRawGet, get)
			class.SetOwnAttr(LitDotSet, set)
			class.SetOwnAttr(LitDotGet, vm.NewFn(pristineDotGetAttr))
			class.SetOwnAttr(LitSafeGet, vm.NewFn(pristineSafeGetAttr))
			class.SetOwnAttr(LitInstanceExec, vm.NewFn(pristineInstanceExec))
			class.SetOwnAttr(LitInstanceJump, vm.NewFn(pristineInstanceJump))
			return nil
		},
	})
}

// attrLiteral converts an attribute-name argument to an interned key.
func (vm *VM) attrLiteral(o *Object) (Literal, error) {
	s, err := vm.TextValue(o)
	if err != nil {
		return "", err
	}
	return Intern(s), nil
}

func pristineInspect(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	return vm.NewText(fmt.Sprintf("<%s:%d>", vm.typeName(this), this.ID())), nil
}

func pristineKeys(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	includeParents := false
	if p, ok := args.At(1); ok {
		includeParents, err = vm.BoolValue(p)
		if err != nil {
			return nil, err
		}
	}
	keys := vm.Keys(this, includeParents)
	elems := make([]*Object, len(keys))
	for i, k := range keys {
		elems[i] = vm.NewText(string(k))
	}
	return vm.NewList(elems...), nil
}

func pristineCallAttr(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	name, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	key, err := vm.attrLiteral(name)
	if err != nil {
		return nil, err
	}
	return vm.CallAttr(this, key, args.From(2))
}

func pristineGetAttr(vm *VM, self *Object, args Args) (*Object, error) {
	this, key, err := receiverAndKey(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.GetAttr(this, key)
}

func pristineSetAttr(vm *VM, self *Object, args Args) (*Object, error) {
	this, key, err := receiverAndKey(vm, args)
	if err != nil {
		return nil, err
	}
	value, err := args.TryAt(2)
	if err != nil {
		return nil, err
	}
	if err := vm.SetAttr(this, key, value); err != nil {
		return nil, err
	}
	return value, nil
}

func pristineHasAttr(vm *VM, self *Object, args Args) (*Object, error) {
	this, key, err := receiverAndKey(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.Bool(vm.HasAttr(this, key)), nil
}

func pristineDelAttr(vm *VM, self *Object, args Args) (*Object, error) {
	this, key, err := receiverAndKey(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.DelAttr(this, key)
}

func pristineDotGetAttr(vm *VM, self *Object, args Args) (*Object, error) {
	this, key, err := receiverAndKey(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.DotGetAttr(this, key)
}

// pristineSafeGetAttr is receiver retrieval that yields Null instead of
// failing when nothing resolves the key.
func pristineSafeGetAttr(vm *VM, self *Object, args Args) (*Object, error) {
	this, key, err := receiverAndKey(vm, args)
	if err != nil {
		return nil, err
	}
	v, err := vm.DotGetAttr(this, key)
	var miss *MissingAttributeError
	if errors.As(err, &miss) {
		return vm.Null, nil
	}
	return v, err
}

func pristineInstanceExec(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	callable, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	return vm.InstanceExec(this, callable)
}

func pristineInstanceJump(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	callable, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	return vm.InstanceJump(this, callable)
}

func receiverAndKey(vm *VM, args Args) (*Object, Literal, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, "", err
	}
	name, err := args.TryAt(1)
	if err != nil {
		return nil, "", err
	}
	key, err := vm.attrLiteral(name)
	if err != nil {
		return nil, "", err
	}
	return this, key, nil
}
