package quill_test

import (
	"testing"

	"github.com/quillang/quill"
	"github.com/quillang/quill/testutils"
)

func TestNumberArithmetic(t *testing.T) {
	vm := testutils.TestingVM()
	cases := map[string]struct {
		op   string
		a, b float64
		want float64
	}{
		"Add":      {"+", 3, 4, 7},
		"Sub":      {"-", 3, 4, -1},
		"Mul":      {"*", 3, 4, 12},
		"Div":      {"/", 8, 4, 2},
		"DivFrac":  {"/", 1, 2, 0.5},
		"AddNeg":   {"+", -3, 4, 1},
		"MulZero":  {"*", 3, 0, 0},
		"SubEqual": {"-", 4, 4, 0},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			r, err := vm.CallAttr(vm.NewNumber(c.a), quill.Intern(c.op), quill.Args{vm.NewNumber(c.b)})
			if err != nil {
				t.Fatal(err)
			}
			if got, _ := vm.NumberValue(r); got != c.want {
				t.Errorf("%v %s %v: got %v, want %v", c.a, c.op, c.b, got, c.want)
			}
		})
	}
}

func TestNumberCoercesArgument(t *testing.T) {
	vm := testutils.TestingVM()
	// The right-hand side converts through its @num hook.
	r, err := vm.CallAttr(vm.NewNumber(3), quill.Intern("+"), quill.Args{vm.NewText("4")})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := vm.NumberValue(r); got != 7 {
		t.Errorf("3 + \"4\": got %v, want 7", got)
	}
	if _, err := vm.CallAttr(vm.NewNumber(3), quill.Intern("+"), quill.Args{vm.NewText("four")}); err == nil {
		t.Error("adding unparseable text succeeded")
	}
}

func TestNumberComparison(t *testing.T) {
	vm := testutils.TestingVM()
	lt, err := vm.CallAttr(vm.NewNumber(1), quill.Intern("<"), quill.Args{vm.NewNumber(2)})
	if err != nil {
		t.Fatal(err)
	}
	if lt != vm.True {
		t.Error("1 < 2 is not true")
	}
	gt, err := vm.CallAttr(vm.NewNumber(1), quill.Intern(">"), quill.Args{vm.NewNumber(2)})
	if err != nil {
		t.Fatal(err)
	}
	if gt != vm.False {
		t.Error("1 > 2 is not false")
	}
}

func TestNumberEquality(t *testing.T) {
	vm := testutils.TestingVM()
	eq, err := vm.CallAttr(vm.NewNumber(3), quill.LitEqual, quill.Args{vm.NewNumber(3)})
	if err != nil {
		t.Fatal(err)
	}
	if eq != vm.True {
		t.Error("3 == 3 is not true")
	}
	// Equality is strict: no coercion of the argument.
	eq, err = vm.CallAttr(vm.NewNumber(3), quill.LitEqual, quill.Args{vm.NewText("3")})
	if err != nil {
		t.Fatal(err)
	}
	if eq != vm.False {
		t.Error("3 == \"3\" is not false")
	}
	ne, err := vm.CallAttr(vm.NewNumber(3), quill.LitNotEqual, quill.Args{vm.NewNumber(4)})
	if err != nil {
		t.Fatal(err)
	}
	if ne != vm.True {
		t.Error("3 != 4 is not true")
	}
}

func TestNumberConversions(t *testing.T) {
	vm := testutils.TestingVM()
	cases := map[string]struct {
		v    float64
		text string
	}{
		"Integral": {12, "12"},
		"Fraction": {2.5, "2.5"},
		"Negative": {-3, "-3"},
		"Zero":     {0, "0"},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			r, err := vm.CallAttr(vm.NewNumber(c.v), quill.LitText, nil)
			if err != nil {
				t.Fatal(err)
			}
			if s, _ := vm.TextValue(r); s != c.text {
				t.Errorf("@text of %v: got %q, want %q", c.v, s, c.text)
			}
		})
	}
	b, err := vm.CallAttr(vm.NewNumber(0), quill.LitBool, nil)
	if err != nil {
		t.Fatal(err)
	}
	if b != vm.False {
		t.Error("@bool of 0 is not false")
	}
	b, err = vm.CallAttr(vm.NewNumber(0.5), quill.LitBool, nil)
	if err != nil {
		t.Fatal(err)
	}
	if b != vm.True {
		t.Error("@bool of 0.5 is not true")
	}
}

func TestNumberMethods(t *testing.T) {
	vm := testutils.TestingVM()
	r, err := vm.CallAttr(vm.NewNumber(-2.5), quill.Intern("abs"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := vm.NumberValue(r); n != 2.5 {
		t.Errorf("abs: got %v, want 2.5", n)
	}
	r, err = vm.CallAttr(vm.NewNumber(2.7), quill.Intern("floor"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := vm.NumberValue(r); n != 2 {
		t.Errorf("floor: got %v, want 2", n)
	}
}
