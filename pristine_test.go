package quill_test

import (
	"testing"

	"github.com/quillang/quill"
	"github.com/quillang/quill/testutils"
)

// pristineObject makes a bare object inheriting the attribute protocol.
func pristineObject(t *testing.T, vm *quill.VM) *quill.Object {
	t.Helper()
	root, err := vm.ClassFor("Pristine")
	if err != nil {
		t.Fatal(err)
	}
	return quill.NewObject([]*quill.Object{root}, nil)
}

func TestProtocolSetGetDel(t *testing.T) {
	vm := testutils.TestingVM()
	o := pristineObject(t, vm)
	key := vm.NewText("x")
	v, err := vm.CallAttr(o, quill.LitSetAttr, quill.Args{key, vm.NewNumber(5)})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := vm.NumberValue(v); n != 5 {
		t.Errorf("__set_attr__ result: got %v, want the assigned value", n)
	}
	cases := map[string]quill.Literal{
		"GetAttr": quill.LitGetAttr,
		"RawGet":  quill.LitRawGet,
	}
	for name, lit := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := vm.CallAttr(o, lit, quill.Args{key})
			if err != nil {
				t.Fatal(err)
			}
			if n, _ := vm.NumberValue(v); n != 5 {
				t.Errorf("got %v, want 5", n)
			}
		})
	}
	t.Run("HasAttr", func(t *testing.T) {
		v, err := vm.CallAttr(o, quill.LitHasAttr, quill.Args{key})
		if err != nil {
			t.Fatal(err)
		}
		if v != vm.True {
			t.Error("__has_attr__ missed an own attribute")
		}
		v, err = vm.CallAttr(o, quill.LitHasAttr, quill.Args{vm.NewText("inspect")})
		if err != nil {
			t.Fatal(err)
		}
		if v != vm.False {
			t.Error("__has_attr__ saw an inherited attribute")
		}
	})
	t.Run("DelAttr", func(t *testing.T) {
		v, err := vm.CallAttr(o, quill.LitDelAttr, quill.Args{key})
		if err != nil {
			t.Fatal(err)
		}
		if n, _ := vm.NumberValue(v); n != 5 {
			t.Errorf("__del_attr__ result: got %v, want the removed value", n)
		}
		if _, err := vm.CallAttr(o, quill.LitDelAttr, quill.Args{key}); err == nil {
			t.Error("deleting an absent attribute succeeded")
		}
	})
}

func TestProtocolSafeGet(t *testing.T) {
	vm := testutils.TestingVM()
	o := pristineObject(t, vm)
	v, err := vm.CallAttr(o, quill.LitSafeGet, quill.Args{vm.NewText("ghost")})
	if err != nil {
		t.Fatal(err)
	}
	if v != vm.Null {
		t.Errorf(".? on a missing attribute: got %v, want Null", v)
	}
	o.SetOwnAttr(quill.Intern("ghost"), vm.NewNumber(3))
	v, err = vm.CallAttr(o, quill.LitSafeGet, quill.Args{vm.NewText("ghost")})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := vm.NumberValue(v); n != 3 {
		t.Errorf(".? on a present attribute: got %v, want 3", n)
	}
}

func TestProtocolCallAttr(t *testing.T) {
	vm := testutils.TestingVM()
	n := vm.NewNumber(3)
	v, err := vm.CallAttr(n, quill.LitCallAttr, quill.Args{vm.NewText("+"), vm.NewNumber(4)})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := vm.NumberValue(v); got != 7 {
		t.Errorf("__call_attr__ dispatch: got %v, want 7", got)
	}
}

func TestProtocolKeys(t *testing.T) {
	vm := testutils.TestingVM()
	o := pristineObject(t, vm)
	o.SetOwnAttr(quill.Intern("b"), vm.Null)
	o.SetOwnAttr(quill.Intern("a"), vm.Null)
	v, err := vm.CallAttr(o, quill.LitKeys, nil)
	if err != nil {
		t.Fatal(err)
	}
	keys, err := vm.ListValue(v)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 {
		t.Fatalf("__keys__: got %d keys, want 2", len(keys))
	}
	for i, want := range []string{"a", "b"} {
		if s, _ := vm.TextValue(keys[i]); s != want {
			t.Errorf("__keys__ at %d: got %q, want %q", i, s, want)
		}
	}
	v, err = vm.CallAttr(o, quill.LitKeys, quill.Args{vm.True})
	if err != nil {
		t.Fatal(err)
	}
	keys, err = vm.ListValue(v)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) <= 2 {
		t.Error("__keys__ with parents did not include inherited keys")
	}
}

func TestProtocolInstanceExec(t *testing.T) {
	vm := quill.NewVM()
	root, err := vm.ClassFor("Pristine")
	if err != nil {
		t.Fatal(err)
	}
	o := quill.NewObject([]*quill.Object{root}, nil)
	body := vm.NewFn(func(vm *quill.VM, self *quill.Object, args quill.Args) (*quill.Object, error) {
		return vm.GetAttr(vm.Null, quill.LitThis)
	})
	v, err := vm.CallAttr(o, quill.LitInstanceExec, quill.Args{body})
	if err != nil {
		t.Fatal(err)
	}
	if v != o {
		t.Error("instance_exec via the protocol did not expose the target as this")
	}
	if vm.Binding.Depth() != 0 {
		t.Errorf("instance_exec leaked frames: depth %d", vm.Binding.Depth())
	}
}

func TestInspectDefault(t *testing.T) {
	vm := testutils.TestingVM()
	o := pristineObject(t, vm)
	v, err := vm.CallAttr(o, quill.LitInspect, nil)
	if err != nil {
		t.Fatal(err)
	}
	s, err := vm.TextValue(v)
	if err != nil {
		t.Fatal(err)
	}
	if s == "" {
		t.Error("default inspect is empty")
	}
	if s != vm.Inspect(o) {
		t.Errorf("VM.Inspect disagrees with the inspect method: %q vs %q", vm.Inspect(o), s)
	}
}
