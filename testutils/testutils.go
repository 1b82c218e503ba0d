// Package testutils provides utilities for testing the Quill runtime in Go.
package testutils

import (
	"sync"
	"testing"

	"github.com/quillang/quill"
)

// testVM is the VM used for all tests.
var testVM *quill.VM

var testVMInit sync.Once

// TestingVM returns a VM for testing. The VM is shared by all tests that use
// this package.
func TestingVM() *quill.VM {
	testVMInit.Do(ResetTestingVM)
	return testVM
}

// ResetTestingVM reinitializes the VM returned by TestingVM. It is not safe
// to call this in parallel tests.
func ResetTestingVM() {
	testVM = quill.NewVM()
}

// CheckAttrs checks that an object's own store holds exactly the named
// attributes.
func CheckAttrs(t *testing.T, obj *quill.Object, attrs []string) {
	t.Helper()
	checked := make(map[quill.Literal]bool, len(attrs))
	for _, name := range attrs {
		key := quill.Intern(name)
		checked[key] = true
		t.Run("Have_"+name, func(t *testing.T) {
			v, ok := obj.GetOwnAttr(key)
			if !ok {
				t.Fatal("no attribute", name)
			}
			if v == nil {
				t.Fatal("attribute", name, "is nil")
			}
		})
	}
	for _, key := range obj.OwnKeys() {
		key := key
		t.Run("Want_"+string(key), func(t *testing.T) {
			if !checked[key] {
				t.Fatal("unexpected attribute", string(key))
			}
		})
	}
}

// CheckSoleParent checks that an object's parent list is exactly the given
// object.
func CheckSoleParent(t *testing.T, obj, parent *quill.Object) {
	t.Helper()
	ps := obj.Parents()
	switch len(ps) {
	case 0:
		t.Fatal("no parents")
	case 1: // do nothing
	default:
		t.Error("incorrect number of parents: expected 1, have", len(ps))
	}
	if ps[0] != parent {
		t.Errorf("wrong parent: expected %p, have %p", parent, ps[0])
	}
}

// PassText returns a predicate on a call result checking for a Text payload
// equal to want.
func PassText(want string) func(*quill.Object, error) bool {
	return func(result *quill.Object, err error) bool {
		if err != nil {
			return false
		}
		s, err := TestingVM().TextValue(result)
		return err == nil && s == want
	}
}

// PassNumber returns a predicate on a call result checking for a Number
// payload equal to want.
func PassNumber(want float64) func(*quill.Object, error) bool {
	return func(result *quill.Object, err error) bool {
		if err != nil {
			return false
		}
		v, err := TestingVM().NumberValue(result)
		return err == nil && v == want
	}
}

// PassIdentical returns a predicate on a call result checking that the
// result is exactly the given object.
func PassIdentical(want *quill.Object) func(*quill.Object, error) bool {
	return func(result *quill.Object, err error) bool {
		return err == nil && result == want
	}
}

// PassFailure returns a predicate on a call result that is true iff the
// call failed.
func PassFailure() func(*quill.Object, error) bool {
	return func(result *quill.Object, err error) bool {
		return err != nil
	}
}
