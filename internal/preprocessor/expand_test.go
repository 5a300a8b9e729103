package preprocessor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func envWith(macros ...*Macro) Env {
	e := NewEnvironment()
	for _, m := range macros {
		e.Define(m.Name, m)
	}
	return e
}

var expandTests = []struct {
	name  string
	text  string
	env   Env
	want  string
}{
	{
		name: "object-like macro, no match",
		text: "a + b",
		env:  envWith(&Macro{Name: "C", Body: "99"}),
		want: "a + b",
	},
	{
		name: "object-like macro, whole-word match only",
		text: "CAT concatenate CATALOG",
		env:  envWith(&Macro{Name: "CAT", Body: "meow"}),
		want: "meow concatenate CATALOG",
	},
	{
		name: "object-like macro expanding to another macro's name",
		text: "A",
		env:  envWith(&Macro{Name: "A", Body: "B"}, &Macro{Name: "B", Body: "3"}),
		want: "3",
	},
	{
		name: "function-like macro, zero arguments",
		text: "PI()",
		env:  envWith(&Macro{Name: "PI", Body: "3.14159", IsFunction: true, Params: []string{}}),
		want: "3.14159",
	},
	{
		name: "function-like macro, argument pre-expanded before substitution",
		text: "SQ(A)",
		env: envWith(
			&Macro{Name: "SQ", Body: "(n) * (n)", IsFunction: true, Params: []string{"n"}},
			&Macro{Name: "A", Body: "2"},
		),
		want: "(2) * (2)",
	},
	{
		name: "function-like macro, nested call in an argument",
		text: "ADD(ADD(1, 2), 3)",
		env:  envWith(&Macro{Name: "ADD", Body: "a + b", IsFunction: true, Params: []string{"a", "b"}}),
		want: "1 + 2 + 3",
	},
}

func TestExpand(t *testing.T) {
	for _, tt := range expandTests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.text, tt.env)
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpand_TooManyArguments(t *testing.T) {
	env := envWith(&Macro{Name: "F", Body: "a", IsFunction: true, Params: []string{"a"}})
	_, err := Expand("F(1, 2)", env)
	if err == nil || err.Error() != "'F': Too many arguments for macro" {
		t.Fatalf("Expand() error = %v, want arity error", err)
	}
}

func TestExpand_TooFewArguments(t *testing.T) {
	env := envWith(&Macro{Name: "F", Body: "a + b", IsFunction: true, Params: []string{"a", "b"}})
	_, err := Expand("F(1)", env)
	if err == nil || err.Error() != "'F': Not enough arguments for macro" {
		t.Fatalf("Expand() error = %v, want arity error", err)
	}
}

func TestExpand_SelfReferenceStopsAtOneLevel(t *testing.T) {
	env := envWith(&Macro{Name: "X", Body: "X + 1"})
	got, err := Expand("X", env)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if diff := cmp.Diff("X + 1", got); diff != "" {
		t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_TokenPaste(t *testing.T) {
	env := envWith(&Macro{Name: "GLUE", Body: "a ## b", IsFunction: true, Params: []string{"a", "b"}})
	got, err := Expand("GLUE(foo, bar)", env)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if diff := cmp.Diff("foobar", got); diff != "" {
		t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
	}
}
