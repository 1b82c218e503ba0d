package quill

import "sync"

// A Literal is an interned attribute name. Literals compare equal exactly
// when their text is equal, and interning guarantees that equal literals
// share backing storage, so they are cheap to use as map keys.
type Literal string

// literals is the process-wide intern table. It never evicts.
var literals sync.Map // string to Literal

// Intern returns the canonical Literal for the given text.
func Intern(text string) Literal {
	if l, ok := literals.Load(text); ok {
		return l.(Literal)
	}
	l, _ := literals.LoadOrStore(text, Literal(text))
	return l.(Literal)
}

// Reserved attribute names and the standard method names of the attribute
// protocol. Every name the runtime itself consults is pre-interned here.
const (
	// LitID reads an object's immutable id.
	LitID Literal = "id"
	// LitParents reads or replaces an object's parent list.
	LitParents Literal = "parents"
	// LitThis resolves to the owner of the most recent stack frame. It is
	// not owned by any object.
	LitThis Literal = "this"
	// LitStack resolves to the current call stack, most recent frame first.
	// It is not owned by any object.
	LitStack Literal = "stack"
	// LitAttrMissing names the missing-attribute hook.
	LitAttrMissing Literal = "attr_missing"

	// LitCall is the invocation entry point of callable objects.
	LitCall Literal = "()"
	// LitCallNoScope is the optional no-scope invocation entry point,
	// preferred by instance_exec when present.
	LitCallNoScope Literal = "call_noscope"

	LitInspect  Literal = "inspect"
	LitName     Literal = "name"
	LitEqual    Literal = "=="
	LitNotEqual Literal = "!="

	// The attribute protocol as exposed to running programs.
	LitKeys         Literal = "__keys__"
	LitCallAttr     Literal = "__call_attr__"
	LitGetAttr      Literal = "__get_attr__"
	LitSetAttr      Literal = "__set_attr__"
	LitHasAttr      Literal = "__has_attr__"
	LitDelAttr      Literal = "__del_attr__"
	LitRawGet       Literal = "::"
	LitDotGet       Literal = "."
	LitSafeGet      Literal = ".?"
	LitDotSet       Literal = ".="
	LitInstanceExec Literal = "instance_exec"
	LitInstanceJump Literal = "instance_jump"

	// Conversion hooks.
	LitText  Literal = "@text"
	LitNum   Literal = "@num"
	LitBool  Literal = "@bool"
	LitRegex Literal = "@regex"

	// Attributes of a bound method wrapper.
	LitBoundOwner    Literal = "__bound_owner__"
	LitBoundCallable Literal = "__bound_callable__"
)

func init() {
	for _, l := range []Literal{
		LitID, LitParents, LitThis, LitStack, LitAttrMissing,
		LitCall, LitCallNoScope, LitInspect, LitName, LitEqual, LitNotEqual,
		LitKeys, LitCallAttr, LitGetAttr, LitSetAttr, LitHasAttr, LitDelAttr,
		LitRawGet, LitDotGet, LitSafeGet, LitDotSet,
		LitInstanceExec, LitInstanceJump,
		LitText, LitNum, LitBool, LitRegex,
		LitBoundOwner, LitBoundCallable,
	} {
		literals.Store(string(l), l)
	}
}
