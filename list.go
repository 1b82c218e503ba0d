package quill

import "strings"

func init() {
	RegisterClass("List", ClassDef{
		Parents: []string{"Basic"},
		Populate: func(vm *VM, class *Object) error {
			class.SetOwnAttr(Intern("get"), vm.NewFn(listGet))
			class.SetOwnAttr(Intern("len"), vm.NewFn(listLen))
			class.SetOwnAttr(Intern("push"), vm.NewFn(listPush))
			class.SetOwnAttr(LitEqual, vm.NewFn(listEqual))
			class.SetOwnAttr(LitBool, vm.NewFn(listBool))
			class.SetOwnAttr(LitText, vm.NewFn(listInspect))
			class.SetOwnAttr(LitInspect, vm.NewFn(listInspect))
			return nil
		},
	})
}

func listArg(vm *VM, args Args) (*Object, []*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, nil, err
	}
	elems, err := vm.ListValue(this)
	if err != nil {
		return nil, nil, err
	}
	return this, elems, nil
}

// listGet returns the element at an index. A negative index counts from the
// end; out of range yields Null.
func listGet(vm *VM, self *Object, args Args) (*Object, error) {
	_, elems, err := listArg(vm, args)
	if err != nil {
		return nil, err
	}
	idx, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	nf, err := vm.coerceNumber(idx)
	if err != nil {
		return nil, err
	}
	n := int(nf)
	if n < 0 {
		n += len(elems)
	}
	if n < 0 || n >= len(elems) {
		return vm.Null, nil
	}
	return elems[n], nil
}

func listLen(vm *VM, self *Object, args Args) (*Object, error) {
	_, elems, err := listArg(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.NewNumber(float64(len(elems))), nil
}

// listPush appends the arguments to the receiver in place and returns the
// receiver.
func listPush(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	this.Lock()
	elems, ok := this.Value.([]*Object)
	if !ok {
		this.Unlock()
		return nil, &DowncastError{Want: "List", Have: payloadName(this)}
	}
	this.Value = append(elems, args.From(1)...)
	this.Unlock()
	return this, nil
}

// listEqual compares element-wise, dispatching each pair through ==.
func listEqual(vm *VM, self *Object, args Args) (*Object, error) {
	_, a, err := listArg(vm, args)
	if err != nil {
		return nil, err
	}
	other, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	b, err := vm.ListValue(other)
	if err != nil {
		return vm.False, nil
	}
	if len(a) != len(b) {
		return vm.False, nil
	}
	for i := range a {
		r, err := vm.CallAttr(a[i], LitEqual, Args{b[i]})
		if err != nil {
			return nil, err
		}
		eq, err := vm.Truthy(r)
		if err != nil {
			return nil, err
		}
		if !eq {
			return vm.False, nil
		}
	}
	return vm.True, nil
}

func listBool(vm *VM, self *Object, args Args) (*Object, error) {
	_, elems, err := listArg(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.Bool(len(elems) != 0), nil
}

func listInspect(vm *VM, self *Object, args Args) (*Object, error) {
	_, elems, err := listArg(vm, args)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(vm.Inspect(e))
	}
	b.WriteByte(']')
	return vm.NewText(b.String()), nil
}
