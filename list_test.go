package quill_test

import (
	"testing"

	"github.com/quillang/quill"
	"github.com/quillang/quill/testutils"
)

func TestListGetAndLen(t *testing.T) {
	vm := testutils.TestingVM()
	l := vm.NewList(vm.NewNumber(1), vm.NewNumber(2), vm.NewNumber(3))
	r, err := vm.CallAttr(l, quill.Intern("len"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := vm.NumberValue(r); n != 3 {
		t.Errorf("len: got %v, want 3", n)
	}
	r, err = vm.CallAttr(l, quill.Intern("get"), quill.Args{vm.NewNumber(-1)})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := vm.NumberValue(r); n != 3 {
		t.Errorf("get(-1): got %v, want 3", n)
	}
	r, err = vm.CallAttr(l, quill.Intern("get"), quill.Args{vm.NewNumber(5)})
	if err != nil {
		t.Fatal(err)
	}
	if r != vm.Null {
		t.Errorf("get out of range: got %v, want Null", r)
	}
}

func TestListPush(t *testing.T) {
	vm := testutils.TestingVM()
	l := vm.NewList(vm.NewNumber(1))
	r, err := vm.CallAttr(l, quill.Intern("push"), quill.Args{vm.NewNumber(2), vm.NewNumber(3)})
	if err != nil {
		t.Fatal(err)
	}
	if r != l {
		t.Error("push did not return the receiver")
	}
	elems, err := vm.ListValue(l)
	if err != nil {
		t.Fatal(err)
	}
	if len(elems) != 3 {
		t.Errorf("length after push: got %d, want 3", len(elems))
	}
}

func TestListEquality(t *testing.T) {
	vm := testutils.TestingVM()
	a := vm.NewList(vm.NewNumber(1), vm.NewText("x"))
	b := vm.NewList(vm.NewNumber(1), vm.NewText("x"))
	c := vm.NewList(vm.NewNumber(1), vm.NewText("y"))
	eq, err := vm.CallAttr(a, quill.LitEqual, quill.Args{b})
	if err != nil {
		t.Fatal(err)
	}
	if eq != vm.True {
		t.Error("element-wise equal lists are not ==")
	}
	eq, err = vm.CallAttr(a, quill.LitEqual, quill.Args{c})
	if err != nil {
		t.Fatal(err)
	}
	if eq != vm.False {
		t.Error("differing lists are ==")
	}
	eq, err = vm.CallAttr(a, quill.LitEqual, quill.Args{vm.NewNumber(1)})
	if err != nil {
		t.Fatal(err)
	}
	if eq != vm.False {
		t.Error("list == non-list is not false")
	}
}

func TestListInspect(t *testing.T) {
	vm := testutils.TestingVM()
	l := vm.NewList(vm.NewNumber(1), vm.NewText("a"))
	r, err := vm.CallAttr(l, quill.LitInspect, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := vm.TextValue(r); s != `[1, "a"]` {
		t.Errorf("inspect: got %s", s)
	}
}

func TestListSnapshotIsolation(t *testing.T) {
	vm := testutils.TestingVM()
	l := vm.NewList(vm.NewNumber(1))
	elems, err := vm.ListValue(l)
	if err != nil {
		t.Fatal(err)
	}
	elems[0] = vm.Null
	again, err := vm.ListValue(l)
	if err != nil {
		t.Fatal(err)
	}
	if again[0] == vm.Null {
		t.Error("ListValue snapshot aliases the payload")
	}
}
