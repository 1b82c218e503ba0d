package quill

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func init() {
	RegisterClass("Text", ClassDef{
		Parents: []string{"Basic"},
		Populate: func(vm *VM, class *Object) error {
			class.SetOwnAttr(Intern("+"), vm.NewFn(textConcat))
			class.SetOwnAttr(Intern("len"), vm.NewFn(textLen))
			class.SetOwnAttr(Intern("get"), vm.NewFn(textGet))
			class.SetOwnAttr(Intern("upper"), vm.NewFn(textUpper))
			class.SetOwnAttr(Intern("lower"), vm.NewFn(textLower))
			class.SetOwnAttr(LitEqual, vm.NewFn(textEqual))
			class.SetOwnAttr(LitText, vm.NewFn(textText))
			class.SetOwnAttr(LitNum, vm.NewFn(textNum))
			class.SetOwnAttr(LitBool, vm.NewFn(textBool))
			class.SetOwnAttr(LitRegex, vm.NewFn(textRegex))
			class.SetOwnAttr(LitInspect, vm.NewFn(textInspect))
			return nil
		},
	})
}

// coerceText converts an argument to a string, going through the object's
// @text hook when it is not Text already.
func (vm *VM) coerceText(o *Object) (string, error) {
	v, err := vm.TextValue(o)
	var dc *DowncastError
	if !errors.As(err, &dc) {
		return v, err
	}
	r, cerr := vm.CallAttr(o, LitText, nil)
	if cerr != nil {
		return "", err
	}
	return vm.TextValue(r)
}

func textPair(vm *VM, args Args) (string, string, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return "", "", err
	}
	other, err := args.TryAt(1)
	if err != nil {
		return "", "", err
	}
	a, err := vm.TextValue(this)
	if err != nil {
		return "", "", err
	}
	b, err := vm.coerceText(other)
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

func textConcat(vm *VM, self *Object, args Args) (*Object, error) {
	a, b, err := textPair(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.NewText(a + b), nil
}

func textEqual(vm *VM, self *Object, args Args) (*Object, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return nil, err
	}
	other, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	a, err := vm.TextValue(this)
	if err != nil {
		return nil, err
	}
	b, err := vm.TextValue(other)
	if err != nil {
		return vm.False, nil
	}
	return vm.Bool(a == b), nil
}

// textLen counts characters, not bytes.
func textLen(vm *VM, self *Object, args Args) (*Object, error) {
	s, err := textArg(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.NewNumber(float64(utf8.RuneCountInString(s))), nil
}

// textGet returns the character at an index as a one-character Text. A
// negative index counts from the end; out of range yields Null.
func textGet(vm *VM, self *Object, args Args) (*Object, error) {
	s, err := textArg(vm, args)
	if err != nil {
		return nil, err
	}
	idx, err := args.TryAt(1)
	if err != nil {
		return nil, err
	}
	nf, err := vm.coerceNumber(idx)
	if err != nil {
		return nil, err
	}
	n := int(nf)
	runes := []rune(s)
	if n < 0 {
		n += len(runes)
	}
	if n < 0 || n >= len(runes) {
		return vm.Null, nil
	}
	return vm.NewText(string(runes[n])), nil
}

func textUpper(vm *VM, self *Object, args Args) (*Object, error) {
	s, err := textArg(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.NewText(cases.Upper(language.Und).String(s)), nil
}

func textLower(vm *VM, self *Object, args Args) (*Object, error) {
	s, err := textArg(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.NewText(cases.Lower(language.Und).String(s)), nil
}

func textText(vm *VM, self *Object, args Args) (*Object, error) {
	return args.TryAt(0)
}

func textNum(vm *VM, self *Object, args Args) (*Object, error) {
	s, err := textArg(vm, args)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %q to a number: %w", s, err)
	}
	return vm.NewNumber(v), nil
}

func textBool(vm *VM, self *Object, args Args) (*Object, error) {
	s, err := textArg(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.Bool(s != ""), nil
}

func textRegex(vm *VM, self *Object, args Args) (*Object, error) {
	s, err := textArg(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.NewRegex(s)
}

func textInspect(vm *VM, self *Object, args Args) (*Object, error) {
	s, err := textArg(vm, args)
	if err != nil {
		return nil, err
	}
	return vm.NewText(strconv.Quote(s)), nil
}

func textArg(vm *VM, args Args) (string, error) {
	this, err := args.TryAt(0)
	if err != nil {
		return "", err
	}
	return vm.TextValue(this)
}
