package quill

import (
	"errors"
	"sync"
	"sync/atomic"
)

// A ClassDef describes a built-in class: the classes it inherits from, in
// order, and the one-time population of its method and constant table. A
// class may name itself as its sole parent to terminate the inheritance
// chain; the registry resolves the self-reference to the class object being
// built instead of recursing.
type ClassDef struct {
	// Parents names the parent classes in declared order.
	Parents []string
	// Populate fills in the class object's attribute table. It runs at most
	// once per VM, regardless of how many call sites race to initialize the
	// class.
	Populate func(vm *VM, class *Object) error
}

var (
	classRegMu sync.Mutex
	classDefs  = map[string]ClassDef{}
)

// RegisterClass registers a built-in class definition. Value types call this
// from init funcs; each VM created afterward knows the class and builds its
// own singleton for it on first demand, so independent VMs never share class
// objects. Registering the same name twice panics.
func RegisterClass(name string, def ClassDef) {
	classRegMu.Lock()
	defer classRegMu.Unlock()
	if _, ok := classDefs[name]; ok {
		panic("quill: class " + name + " registered twice")
	}
	classDefs[name] = def
}

// registeredClasses snapshots the registered definitions for a new VM.
func registeredClasses() map[string]*classEntry {
	classRegMu.Lock()
	defer classRegMu.Unlock()
	r := make(map[string]*classEntry, len(classDefs))
	for name, def := range classDefs {
		r[name] = &classEntry{def: def}
	}
	return r
}

// classEntry is one class's registry entry in a VM.
type classEntry struct {
	def ClassDef
	// obj holds the class *Object once created. Creation is separate from
	// population so initializers may reenter the registry for their parent
	// classes, including themselves.
	obj atomic.Value
	// claimed is the one-time population claim. The claim is an atomic flag
	// rather than a lock: a class's initializer may itself trigger
	// initialization of its parent class, and the root class parents
	// itself, so waiting here could deadlock.
	claimed uint32
	// err records a failed population. The entry stays poisoned; there is
	// no retry.
	err atomic.Value
}

// object returns the entry's class object, creating it exactly once.
func (e *classEntry) object() *Object {
	if v := e.obj.Load(); v != nil {
		return v.(*Object)
	}
	o := NewObject(nil, nil)
	if e.obj.CompareAndSwap(nil, o) {
		return o
	}
	return e.obj.Load().(*Object)
}

// errUnregistered reports a request for a class no one registered.
var errUnregistered = errors.New("class not registered")

// ClassFor returns the shared class object for the named built-in type,
// constructing and populating it on first demand. When callers race to
// initialize the same class for the first time, exactly one performs the
// population and receives any population error; the others proceed
// immediately against the already-created class object. Once a population
// has failed, every later call reports the same InitializationError.
func (vm *VM) ClassFor(name string) (*Object, error) {
	e, ok := vm.classes[name]
	if !ok {
		return nil, &InitializationError{Class: name, Err: errUnregistered}
	}
	class := e.object()
	if atomic.CompareAndSwapUint32(&e.claimed, 0, 1) {
		if err := vm.populateClass(name, e, class); err != nil {
			ie := &InitializationError{Class: name, Err: err}
			e.err.Store(ie)
			return nil, ie
		}
		return class, nil
	}
	if err, _ := e.err.Load().(*InitializationError); err != nil {
		return nil, err
	}
	return class, nil
}

// populateClass performs the one-time population of a claimed class entry.
func (vm *VM) populateClass(name string, e *classEntry, class *Object) error {
	logDispatch.Debugf("initializing class %s", name)
	parents := make([]*Object, 0, len(e.def.Parents))
	for _, pname := range e.def.Parents {
		if pname == name {
			// Self-referential root: terminate the chain with the class
			// itself rather than a separate no-parent marker.
			parents = append(parents, class)
			continue
		}
		p, err := vm.ClassFor(pname)
		if err != nil {
			return err
		}
		parents = append(parents, p)
	}
	class.SetParents(parents...)
	class.SetOwnAttr(LitName, vm.NewText(name))
	if e.def.Populate != nil {
		return e.def.Populate(vm, class)
	}
	return nil
}

// mustClass returns the named class, panicking on initialization failure.
// Built-in constructors use this; a failure here is a programming error in
// the runtime itself.
func (vm *VM) mustClass(name string) *Object {
	c, err := vm.ClassFor(name)
	if err != nil {
		panic(err)
	}
	return c
}

// instance creates an object whose sole parent is the named class.
func (vm *VM) instance(name string, value interface{}) *Object {
	return NewObject([]*Object{vm.mustClass(name)}, value)
}
