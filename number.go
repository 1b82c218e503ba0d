package quill

import (
	"errors"
	"math"
	"strconv"
)

func init() {
	RegisterClass("Number", ClassDef{
		Parents: []string{"Basic"},
		Populate: func(vm *VM, class *Object) error {
			class.SetOwnAttr(Intern("+"), vm.NewFn(numberAdd))
			class.SetOwnAttr(Intern("-"), vm.NewFn(numberSub))
			class.SetOwnAttr(Intern("*"), vm.NewFn(numberMul))
			class.SetOwnAttr(Intern("/"), vm.NewFn(numberDiv))
			class.SetOwnAttr(Intern("<"), vm.NewFn(numberLess))
			class.SetOwnAttr(Intern(">"), vm.NewFn(numberGreater))
			class.SetOwnAttr(Intern("abs"), vm.NewFn(numberAbs))
			class.SetOwnAttr(Intern("floor"), vm.NewFn(numberFloor))
			class.SetOwnAttr(LitEqual, vm.NewFn(numberEqual))
			class.SetOwnAttr(LitNum, vm.NewFn(numberNum))
			class.SetOwnAttr(LitBool, vm.NewFn(numberBool))
			class.SetOwnAttr(LitText, vm.NewFn(numberText))
			class.SetOwnAttr(LitInspect, vm.NewFn(numberText))
			return nil
		},
	})
}

// coerceNumber converts an argument to float64, going through the object's
// @num hook when it is not a Number already.
func (vm *VM) coerceNumber(o *Object) (float64, error) {
	v, err := vm.NumberValue(o)
	var dc *DowncastError
	if !errors.As(err, &dc) {
		return v, err
	}
	r, cerr := vm.CallAttr(o, LitNum, nil)
	if cerr != nil {
		return 0, err
	}
	return vm.NumberValue(r)
}

// numberOp factors the binary arithmetic methods: receiver payload on the
// left, coerced argument on the right.
func numberOp(op func(a, b float64) float64) Fn {
	return func(vm *VM, self *Object, args Args) (*Object, error) {
		a, b, err := numberPair(vm, args)
		if err != nil {
			return nil, err
		}
		return vm.NewNumber(op(a, b)), nil
	}
}

var (
	numberAdd = numberOp(func(a, b float64) float64 { return a + b })
	numberSub = numberOp(func(a, b float64) float64 { return a - b })
	numberMul = numberOp(func(a, b float64) float64 { return a * b })
	numberDiv = numberOp(func(a, b float64) float64 { return a / b })
)

func numberPair(vm *VM, args Args) (float64, float64, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return 0, 0, err
	}
	other, err := args.TryAt(1)
	if err != nil {
		return 0, 0, err
	}
	a, err := vm.NumberValue(this)
	if err != nil {
		return 0, 0, err
	}
	b, err := vm.coerceNumber(other)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func numberLess(vm *VM, self *Object, args Args) (*Object, error) {
	a, b, err := numberPair(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.Bool(a < b), nil
}

func numberGreater(vm *VM, self *Object, args Args) (*Object, error) {
	a, b, err := numberPair(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.Bool(a > b), nil
}

// numberEqual compares payloads strictly: a non-Number argument is unequal
// rather than coerced.
func numberEqual(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	other, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	a, err := vm.NumberValue(this)
	if err != nil {
		return nil, err
	}
	b, err := vm.NumberValue(other)
	if err != nil {
		return vm.False, nil
	}
	return vm.Bool(a == b), nil
}

func numberAbs(vm *VM, self *Object, args Args) (*Object, error) {
	return numberMap(vm, args, math.Abs)
}

func numberFloor(vm *VM, self *Object, args Args) (*Object, error) {
	return numberMap(vm, args, math.Floor)
}

func numberMap(vm *VM, args Args, f func(float64) float64) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	v, err := vm.NumberValue(this)
	if err != nil {
		return nil, err
	}
	return vm.NewNumber(f(v)), nil
}

func numberNum(vm *VM, self *Object, args Args) (*Object, error) {
	return args.TryAt(0)
}

func numberBool(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	v, err := vm.NumberValue(this)
	if err != nil {
		return nil, err
	}
	return vm.Bool(v != 0), nil
}

func numberText(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	v, err := vm.NumberValue(this)
	if err != nil {
		return nil, err
	}
	return vm.NewText(formatNumber(v)), nil
}

// formatNumber renders a Number the shortest way that round-trips, with
// integral values shown without a fraction.
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
