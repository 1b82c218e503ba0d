package quill

import (
	"errors"

	"github.com/zephyrtronium/contains"
)

// GetAttr resolves an attribute on an object: reserved specials, then the
// object's own store, then its missing-attribute hook, then each parent in
// declared order with the entire algorithm applied depth first. An attribute
// nothing resolves fails with a MissingAttributeError; this is the fallible
// entry point, and GetAttrOrDefault is the defaulting one.
//
// GetAttr is raw retrieval: the resolved value is returned exactly as
// stored, never wrapped as a bound method. See VM.DotGetAttr.
func (vm *VM) GetAttr(obj *Object, key Literal) (*Object, error) {
	v, _, err := vm.resolve(obj, key)
	return v, err
}

// GetAttrOrDefault resolves an attribute, returning Null instead of failing
// when it cannot be resolved. This backs safe-navigation access. Callers
// that must distinguish "resolved to Null" from "failed to resolve" use
// GetAttr instead.
func (vm *VM) GetAttrOrDefault(obj *Object, key Literal) (*Object, error) {
	v, _, err := vm.resolve(obj, key)
	var miss *MissingAttributeError
	if errors.As(err, &miss) {
		return vm.Null, nil
	}
	return v, err
}

// SetAttr sets an attribute on the object's own store. Inheritance is
// strictly read-side: assigning through an inherited name creates an entry
// on the receiver rather than mutating the ancestor. Writing parents
// replaces the object's parent list. Writing id is accepted into the store
// but the id reader ignores it.
func (vm *VM) SetAttr(obj *Object, key Literal, value *Object) error {
	if key == LitParents {
		ps, err := vm.ListValue(value)
		if err != nil {
			return err
		}
		obj.SetParents(ps...)
		return nil
	}
	obj.SetOwnAttr(key, value)
	return nil
}

// HasAttr reports whether an attribute is present as a reserved special or
// in the object's own store. Like SetAttr and DelAttr, it does not consult
// the parent chain.
func (vm *VM) HasAttr(obj *Object, key Literal) bool {
	switch key {
	case LitID, LitParents, LitStack:
		return true
	case LitThis:
		return vm.Binding.Depth() > 0
	}
	return obj.HasOwnAttr(key)
}

// DelAttr removes an attribute from the object's own store, returning the
// removed value. Deleting an absent key fails with a NotFoundError.
func (vm *VM) DelAttr(obj *Object, key Literal) (*Object, error) {
	return obj.DelOwnAttr(key)
}

// Keys enumerates the object's own attribute keys, optionally unioned with
// all ancestor keys: own keys first, then ancestors' depth first, duplicates
// collapsed.
func (vm *VM) Keys(obj *Object, includeParents bool) []Literal {
	keys := obj.OwnKeys()
	if !includeParents {
		return keys
	}
	have := make(map[Literal]struct{}, len(keys))
	for _, k := range keys {
		have[k] = struct{}{}
	}
	seen := contains.Set{}
	seen.Add(obj.ID())
	var walk func(o *Object)
	walk = func(o *Object) {
		for _, p := range o.Parents() {
			if !seen.Add(p.ID()) {
				continue
			}
			for _, k := range p.OwnKeys() {
				if _, dup := have[k]; !dup {
					have[k] = struct{}{}
					keys = append(keys, k)
				}
			}
			walk(p)
		}
	}
	walk(obj)
	return keys
}

// resolve runs the full resolution algorithm, additionally reporting the
// object whose own store supplied the value. The context is nil when the
// value came from a reserved special or from a missing-attribute hook;
// dispatch uses it to decide whether a callable needs receiver binding.
func (vm *VM) resolve(obj *Object, key Literal) (value, context *Object, err error) {
	if v, ok, err := vm.special(obj, key); ok || err != nil {
		return v, nil, err
	}
	seen := contains.Set{}
	seen.Add(obj.ID())
	v, ctx, found, err := vm.resolveChain(obj, key, &seen)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		logDispatch.Debugf("missing attribute %q on object %d", string(key), obj.ID())
		return nil, nil, &MissingAttributeError{Key: key, Receiver: obj.ID()}
	}
	return v, ctx, nil
}

// special resolves the reserved attribute names: the immutable id, the
// parent list, and the stack-relative this and stack pseudo-attributes,
// which are not owned by any object. These never consult the store.
func (vm *VM) special(obj *Object, key Literal) (*Object, bool, error) {
	switch key {
	case LitID:
		return vm.NewNumber(float64(obj.ID())), true, nil
	case LitParents:
		return vm.NewList(obj.Parents()...), true, nil
	case LitThis:
		f, ok := vm.Binding.FrameAt(0)
		if !ok {
			return nil, true, &MissingAttributeError{Key: key, Receiver: obj.ID()}
		}
		return f.Owner, true, nil
	case LitStack:
		return vm.NewList(vm.Binding.Owners()...), true, nil
	}
	return nil, false, nil
}

// ownOutcome is the tagged result of examining a single object for a key
// before any parent traversal.
type ownOutcome int8

const (
	// attrFound means the object's own store holds the key.
	attrFound ownOutcome = iota
	// attrDeferred means the store lacks the key but a missing-attribute
	// hook is reachable and must be consulted.
	attrDeferred
	// attrAbsent means neither the store nor a hook can answer.
	attrAbsent
)

// ownStep is the per-object resolution step as a pure function over the
// object's store: it returns the stored value, or the reachable hook to
// defer to, or nothing.
func ownStep(obj *Object, key Literal) (*Object, ownOutcome) {
	if v, ok := obj.GetOwnAttr(key); ok {
		return v, attrFound
	}
	if key != LitAttrMissing {
		if hook, hctx := searchAttr(obj, LitAttrMissing); hctx != nil {
			return hook, attrDeferred
		}
	}
	return nil, attrAbsent
}

// resolveChain applies own store, hook, and parent-chain resolution to one
// object. The seen set spans the whole traversal, so cycles in the parent
// graph, including the self-parented root class, terminate.
func (vm *VM) resolveChain(obj *Object, key Literal, seen *contains.Set) (value, context *Object, found bool, err error) {
	v, oc := ownStep(obj, key)
	switch oc {
	case attrFound:
		return v, obj, true, nil
	case attrDeferred:
		r, err := vm.invokeHook(obj, v, key)
		if err != nil {
			return nil, nil, false, err
		}
		if r != vm.Null {
			return r, nil, true, nil
		}
		// Null means the hook declined; keep searching the parents.
	}
	for _, p := range obj.Parents() {
		if !seen.Add(p.ID()) {
			continue
		}
		v, ctx, ok, err := vm.resolveChain(p, key, seen)
		if err != nil {
			return nil, nil, false, err
		}
		if ok {
			return v, ctx, true, nil
		}
	}
	return nil, nil, false, nil
}

// invokeHook calls a missing-attribute hook with the requested key as its
// sole argument, whether the hook is the object's own or inherited.
func (vm *VM) invokeHook(obj, hook *Object, key Literal) (*Object, error) {
	logDispatch.Debugf("attr_missing hook on object %d for %q", obj.ID(), string(key))
	return vm.Call(hook, Args{vm.NewText(string(key))})
}

// searchAttr finds a key in the object's own store or its ancestors in
// depth-first, first-parent-wins order, consulting neither specials nor the
// missing-attribute hook. It returns the value and the object that owned
// it; the context is nil if the key was not found.
func searchAttr(obj *Object, key Literal) (value, context *Object) {
	if v, ok := obj.GetOwnAttr(key); ok {
		return v, obj
	}
	seen := contains.Set{}
	seen.Add(obj.ID())
	return searchAncestors(obj, key, &seen)
}

func searchAncestors(obj *Object, key Literal, seen *contains.Set) (value, context *Object) {
	for _, p := range obj.Parents() {
		if !seen.Add(p.ID()) {
			continue
		}
		if v, ok := p.GetOwnAttr(key); ok {
			return v, p
		}
		if v, ctx := searchAncestors(p, key, seen); ctx != nil {
			return v, ctx
		}
	}
	return nil, nil
}
