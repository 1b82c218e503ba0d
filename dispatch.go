package quill

// Fn is the native function payload type. self is the object through which
// the invocation was routed: the function object itself for a direct call,
// the receiver when the function is an object's own () entry point, or the
// wrapper when a bound method dispatches. Methods registered on classes
// receive their receiver as the first argument.
type Fn func(vm *VM, self *Object, args Args) (*Object, error)

// fnValue extracts a native function payload.
func fnValue(o *Object) (Fn, bool) {
	o.Lock()
	fn, ok := o.Value.(Fn)
	o.Unlock()
	return fn, ok
}

// isCallable reports whether a value can be invoked: it carries a native
// function payload or an invocation entry point is reachable from its store
// or ancestors.
func (vm *VM) isCallable(o *Object) bool {
	if _, ok := fnValue(o); ok {
		return true
	}
	_, ctx := searchAttr(o, LitCall)
	return ctx != nil
}

// DotGetAttr is receiver retrieval, the retrieval behind dot access. It
// resolves like GetAttr, but a callable that was found on a parent rather
// than in the receiver's own store is wrapped in a bound method pairing it
// with the receiver, so later invocation supplies the receiver as the first
// argument implicitly. A match from the object's own store is already local
// and self-sufficient and is returned unwrapped.
func (vm *VM) DotGetAttr(obj *Object, key Literal) (*Object, error) {
	v, ctx, err := vm.resolve(obj, key)
	if err != nil {
		return nil, err
	}
	if ctx != nil && ctx != obj && vm.isCallable(v) {
		return vm.NewBoundMethod(obj, v), nil
	}
	return v, nil
}

// Call invokes a callable with the given arguments. A native function
// payload bottoms out the dispatch; any other object is invoked through its
// () attribute, resolved by the same algorithm as every other attribute, so
// invoking a bound method is itself just another attribute call.
func (vm *VM) Call(callable *Object, args Args) (*Object, error) {
	if fn, ok := fnValue(callable); ok {
		return fn(vm, callable, args)
	}
	entry, _, err := vm.resolve(callable, LitCall)
	if err != nil {
		return nil, err
	}
	if fn, ok := fnValue(entry); ok {
		return fn(vm, callable, args)
	}
	return vm.Call(entry, args)
}

// CallAttr resolves an attribute receiver-style and invokes the result with
// the given arguments. Every operator and method call in the language comes
// down to this.
func (vm *VM) CallAttr(obj *Object, key Literal, args Args) (*Object, error) {
	f, err := vm.DotGetAttr(obj, key)
	if err != nil {
		return nil, err
	}
	return vm.Call(f, args)
}

// InstanceExec runs a callable with obj pushed as the active frame owner,
// so that the this and stack specials inside the callable observe obj. A
// callable exposing a call_noscope entry point is preferred, skipping the
// extra implicit scope layer; otherwise the standard entry point is used.
func (vm *VM) InstanceExec(obj, callable *Object) (*Object, error) {
	return vm.RunInNewFrame(obj, nil, func() (*Object, error) {
		if _, ctx := searchAttr(callable, LitCallNoScope); ctx != nil {
			return vm.CallAttr(callable, LitCallNoScope, nil)
		}
		return vm.Call(callable, nil)
	})
}

// InstanceJump runs a callable with obj pushed as the frame owner, then
// pushes obj again after the call returns, deliberately without a matching
// pop. A failed call leaves the first frame in place. This irregular stack
// discipline exists for one legacy construct; new code should use
// InstanceExec.
func (vm *VM) InstanceJump(obj, callable *Object) (*Object, error) {
	vm.Binding.PushFrame(obj, nil)
	var r *Object
	var err error
	if _, ctx := searchAttr(callable, LitCallNoScope); ctx != nil {
		r, err = vm.CallAttr(callable, LitCallNoScope, nil)
	} else {
		r, err = vm.Call(callable, nil)
	}
	if err != nil {
		return nil, err
	}
	vm.Binding.PushFrame(obj, nil)
	return r, nil
}
