package quill

import (
	"fmt"

	"github.com/tliron/commonlog"
)

// logDispatch carries debug-level tracing of attribute dispatch and class
// initialization. The runtime never logs above debug and never writes to the
// log on the success path of a resolved attribute.
var logDispatch = commonlog.GetLogger("quill.dispatch")

// VM is an object runtime instance: a class registry, a call stack, and the
// singleton values shared by everything the VM runs. Multiple VMs are fully
// independent; objects must not be shared between them.
type VM struct {
	// Binding is the call stack.
	Binding *Binding

	// Singletons. Null is the canonical empty value and the sentinel a
	// missing-attribute hook returns to decline.
	Null  *Object
	True  *Object
	False *Object

	// classes is the VM's class registry. The map is read-only after NewVM;
	// the entries synchronize themselves.
	classes map[string]*classEntry
}

// NewVM prepares a new runtime. Classes registered via RegisterClass are
// known to the VM but not built until first demand, except the handful
// needed for the VM's own singletons.
func NewVM() *VM {
	vm := &VM{
		Binding: NewBinding(),
		classes: registeredClasses(),
	}
	// Null must exist before anything consults the resolver, because the
	// missing-attribute hook declines by returning it.
	vm.Null = vm.instance("Null", nil)
	vm.True = vm.instance("Boolean", true)
	vm.False = vm.instance("Boolean", false)
	return vm
}

// Bool converts a Go bool to the VM's Boolean singletons.
func (vm *VM) Bool(c bool) *Object {
	if c {
		return vm.True
	}
	return vm.False
}

// NewNumber creates a Number object with the given value.
func (vm *VM) NewNumber(v float64) *Object {
	return vm.instance("Number", v)
}

// NewText creates a Text object with the given value.
func (vm *VM) NewText(s string) *Object {
	return vm.instance("Text", s)
}

// NewList creates a List object holding the given elements.
func (vm *VM) NewList(elems ...*Object) *Object {
	v := make([]*Object, len(elems))
	copy(v, elems)
	return vm.instance("List", v)
}

// NewFn creates a native function object.
func (vm *VM) NewFn(fn Fn) *Object {
	return vm.instance("Fn", fn)
}

// payloadName describes an object's payload for DowncastError messages.
func payloadName(o *Object) string {
	o.Lock()
	v := o.Value
	o.Unlock()
	if v == nil {
		return "nothing"
	}
	return fmt.Sprintf("%T", v)
}

// NumberValue returns the object's float64 payload, or a DowncastError.
func (vm *VM) NumberValue(o *Object) (float64, error) {
	o.Lock()
	v, ok := o.Value.(float64)
	o.Unlock()
	if !ok {
		return 0, &DowncastError{Want: "Number", Have: payloadName(o)}
	}
	return v, nil
}

// TextValue returns the object's string payload, or a DowncastError.
func (vm *VM) TextValue(o *Object) (string, error) {
	o.Lock()
	v, ok := o.Value.(string)
	o.Unlock()
	if !ok {
		return "", &DowncastError{Want: "Text", Have: payloadName(o)}
	}
	return v, nil
}

// BoolValue returns the object's bool payload, or a DowncastError.
func (vm *VM) BoolValue(o *Object) (bool, error) {
	o.Lock()
	v, ok := o.Value.(bool)
	o.Unlock()
	if !ok {
		return false, &DowncastError{Want: "Boolean", Have: payloadName(o)}
	}
	return v, nil
}

// ListValue returns a snapshot of the object's element payload, or a
// DowncastError.
func (vm *VM) ListValue(o *Object) ([]*Object, error) {
	o.Lock()
	v, ok := o.Value.([]*Object)
	r := make([]*Object, len(v))
	copy(r, v)
	o.Unlock()
	if !ok {
		return nil, &DowncastError{Want: "List", Have: payloadName(o)}
	}
	return r, nil
}

// typeName reports the name a value inherits from its class, defaulting to
// Object.
func (vm *VM) typeName(o *Object) string {
	if v, ctx := searchAttr(o, LitName); ctx != nil {
		if s, err := vm.TextValue(v); err == nil {
			return s
		}
	}
	return "Object"
}

// Inspect returns debug text for an object via its inspect method, falling
// back to a stable default when the method is unavailable.
func (vm *VM) Inspect(o *Object) string {
	if o == nil {
		return "nothing"
	}
	if r, err := vm.CallAttr(o, LitInspect, nil); err == nil {
		if s, err := vm.TextValue(r); err == nil {
			return s
		}
	}
	return fmt.Sprintf("<%s:%d>", vm.typeName(o), o.ID())
}
