package quill_test

import (
	"testing"

	"github.com/quillang/quill"
)

func TestIntern(t *testing.T) {
	cases := []string{"id", "parents", "()", "x", "@text", "::", ""}
	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			a := quill.Intern(text)
			b := quill.Intern(text)
			if a != b {
				t.Errorf("interning %q twice gave different literals", text)
			}
			if string(a) != text {
				t.Errorf("literal text %q does not match input %q", string(a), text)
			}
		})
	}
}

func TestInternDistinct(t *testing.T) {
	if quill.Intern("a") == quill.Intern("b") {
		t.Error("distinct texts interned to the same literal")
	}
}
