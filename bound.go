package quill

// NewBoundMethod pairs a callable with an owner. Invoking the wrapper
// prepends the owner to the argument list and dispatches the wrapped
// callable; the wrapper itself carries no payload, so invocation routes
// through its () attribute like any other object.
func (vm *VM) NewBoundMethod(owner, callable *Object) *Object {
	bm := vm.instance("BoundMethod", nil)
	bm.SetOwnAttr(LitBoundOwner, owner)
	bm.SetOwnAttr(LitBoundCallable, callable)
	return bm
}

// BoundOwner returns the receiver a bound method was created for.
func (vm *VM) BoundOwner(bm *Object) (*Object, error) {
	v, ok := bm.GetOwnAttr(LitBoundOwner)
	if !ok {
		return nil, &NotFoundError{Key: LitBoundOwner}
	}
	return v, nil
}

// BoundCallable returns the callable a bound method wraps.
func (vm *VM) BoundCallable(bm *Object) (*Object, error) {
	v, ok := bm.GetOwnAttr(LitBoundCallable)
	if !ok {
		return nil, &NotFoundError{Key: LitBoundCallable}
	}
	return v, nil
}

func init() {
	RegisterClass("BoundMethod", ClassDef{
		Parents: []string{"Basic"},
		Populate: func(vm *VM, class *Object) error {
			class.SetOwnAttr(LitCall, vm.NewFn(boundCall))
			class.SetOwnAttr(LitInspect, vm.NewFn(boundInspect))
			return nil
		},
	})
}

// boundCall is the () entry point of a bound method. The wrapper normally
// arrives as self, via the payload bottom-out in VM.Call; when the entry
// point itself was retrieved receiver-style first, the wrapper arrives as
// the leading argument instead.
func boundCall(vm *VM, self *Object, args Args) (*Object, error) {
	bm := self
	if !bm.HasOwnAttr(LitBoundCallable) {
		b, err := args.TryAt(0)
		if err != nil {
			return nil, err
		}
		bm = b
		args = args.From(1)
	}
	owner, err := vm.BoundOwner(bm)
	if err != nil {
		return nil, err
	}
	callable, err := vm.BoundCallable(bm)
	if err != nil {
		return nil, err
	}
	return vm.Call(callable, args.Prepend(owner))
}

func boundInspect(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	owner, err := vm.BoundOwner(this)
	if err != nil {
		return nil, err
	}
	callable, err := vm.BoundCallable(this)
	if err != nil {
		return nil, err
	}
	return vm.NewText("<bound " + vm.Inspect(callable) + " to " + vm.Inspect(owner) + ">"), nil
}
