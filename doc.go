/*
Package quill implements the Quill object runtime.

Quill is a prototype-based object model: every value is an Object holding a
mutable attribute store and an ordered list of parent objects. Attribute
resolution walks the receiver's own store, its missing-attribute hook, and
then each parent depth first with the first parent winning, so inheritance
is differential in the Self tradition. There are no classes in the usual
sense; the built-in types are themselves objects, built lazily by the class
registry and shared by every value of that type within one VM.

To embed the runtime, create a VM with NewVM, then create values with
NewNumber, NewText, NewList, NewFn, and NewObject, and drive them through
the attribute protocol: GetAttr, SetAttr, CallAttr, and friends. Methods
are native Go functions of type Fn; a method reached through a parent is
delivered as a bound method, which injects the receiver as the first
argument when invoked.

A VM is safe to drive from multiple goroutines sharing the same object
graph. Each object's store synchronizes its own mutation, the call stack is
owned by the VM rather than ambient global state, and class initialization
is claimed atomically so it happens at most once per VM no matter how many
goroutines demand the class first.
*/
package quill
