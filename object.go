package quill

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Object is the universal value unit of Quill. Every value the runtime
// touches, including numbers, text, functions, and class singletons, is an
// Object with an id, an attribute store, and an ordered parent list.
//
// Objects are shared by every holder that references them. The attribute
// store serializes mutation internally; reads may proceed concurrently with
// each other but not with a write.
type Object struct {
	// mu guards slots and parents.
	mu sync.RWMutex
	// slots is the object's own attribute store.
	slots map[Literal]*Object
	// parents is the ordered list of objects consulted for inherited
	// attribute lookup. First match wins.
	parents []*Object

	// Mutex is a lock which must be held when accessing Value if it is or
	// may be mutable.
	sync.Mutex
	// Value is the object's native payload, if any. It is orthogonal to the
	// attribute protocol.
	Value interface{}

	// id is the object's unique id, immutable for the object's lifetime.
	id uintptr
}

// objcounter is the global counter for object ids. All accesses must be
// atomic.
var objcounter uintptr

// nextObject increments the object counter and returns its value as a unique
// id for a new object.
func nextObject() uintptr {
	return atomic.AddUintptr(&objcounter, 1)
}

// NewObject creates an object with a fresh id, an empty attribute store, the
// given parents, and the given native payload.
func NewObject(parents []*Object, value interface{}) *Object {
	o := &Object{
		slots: map[Literal]*Object{},
		Value: value,
		id:    nextObject(),
	}
	if len(parents) > 0 {
		o.parents = append(o.parents, parents...)
	}
	return o
}

// ID returns the object's unique id. Writing the id attribute through the
// normal attribute-set path lands in the store but never changes the value
// this returns.
func (o *Object) ID() uintptr {
	return o.id
}

// GetOwnAttr looks up an attribute in the object's own store, without
// consulting parents, specials, or the missing-attribute hook.
func (o *Object) GetOwnAttr(key Literal) (*Object, bool) {
	o.mu.RLock()
	v, ok := o.slots[key]
	o.mu.RUnlock()
	return v, ok
}

// SetOwnAttr sets an attribute in the object's own store.
func (o *Object) SetOwnAttr(key Literal, value *Object) {
	o.mu.Lock()
	if o.slots == nil {
		o.slots = map[Literal]*Object{}
	}
	o.slots[key] = value
	o.mu.Unlock()
}

// HasOwnAttr reports whether the object's own store contains the key.
func (o *Object) HasOwnAttr(key Literal) bool {
	o.mu.RLock()
	_, ok := o.slots[key]
	o.mu.RUnlock()
	return ok
}

// DelOwnAttr removes an attribute from the object's own store and returns
// its value. Deleting an absent key fails with a NotFoundError.
func (o *Object) DelOwnAttr(key Literal) (*Object, error) {
	o.mu.Lock()
	v, ok := o.slots[key]
	if ok {
		delete(o.slots, key)
	}
	o.mu.Unlock()
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return v, nil
}

// OwnKeys returns the keys of the object's own store, sorted so that
// enumeration is deterministic.
func (o *Object) OwnKeys() []Literal {
	o.mu.RLock()
	keys := make([]Literal, 0, len(o.slots))
	for k := range o.slots {
		keys = append(keys, k)
	}
	o.mu.RUnlock()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Parents returns a snapshot of the object's parent list.
func (o *Object) Parents() []*Object {
	o.mu.RLock()
	ps := make([]*Object, len(o.parents))
	copy(ps, o.parents)
	o.mu.RUnlock()
	return ps
}

// SetParents replaces the object's parent list.
func (o *Object) SetParents(parents ...*Object) {
	o.mu.Lock()
	o.parents = append(o.parents[:0:0], parents...)
	o.mu.Unlock()
}

// AppendParent adds a parent at the end of the object's parent list.
func (o *Object) AppendParent(p *Object) {
	o.mu.Lock()
	o.parents = append(o.parents, p)
	o.mu.Unlock()
}
