package preprocessor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_ObjectLikeDefine(t *testing.T) {
	prog, err := Parse("#define X 1\nuse X")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(prog.Body) != 2 {
		t.Fatalf("Body has %d nodes, want 2: %#v", len(prog.Body), prog.Body)
	}
	def, ok := prog.Body[0].(*Define)
	if !ok {
		t.Fatalf("Body[0] = %T, want *Define", prog.Body[0])
	}
	if def.Name != "X" || def.Body != "1" {
		t.Errorf("Define = {%q, %q}, want {X, 1}", def.Name, def.Body)
	}
	text, ok := prog.Body[1].(*Text)
	if !ok {
		t.Fatalf("Body[1] = %T, want *Text", prog.Body[1])
	}
	if diff := cmp.Diff("use X", text.Text); diff != "" {
		t.Errorf("Text mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_FunctionLikeDefineRequiresNoSpaceBeforeParen(t *testing.T) {
	prog, err := Parse("#define A (x) \nA\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	def, ok := prog.Body[0].(*Define)
	if !ok {
		t.Fatalf("a space before '(' must parse as object-like; got %T", prog.Body[0])
	}
	if diff := cmp.Diff("(x)", def.Body); diff != "" {
		t.Errorf("Body mismatch (-want +got):\n%s", diff)
	}

	prog2, err := Parse("#define A(x) x + 1\nA(2)\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fn, ok := prog2.Body[0].(*DefineArguments)
	if !ok {
		t.Fatalf("no space before '(' must parse as function-like; got %T", prog2.Body[0])
	}
	if diff := cmp.Diff([]string{"x"}, fn.Params); diff != "" {
		t.Errorf("Params mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ConditionalWithElseIfAndElse(t *testing.T) {
	src := "#if 0\na\n#elif 1\nb\n#else\nc\n#endif\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("Body has %d nodes, want 1: %#v", len(prog.Body), prog.Body)
	}
	cond, ok := prog.Body[0].(*Conditional)
	if !ok {
		t.Fatalf("Body[0] = %T, want *Conditional", prog.Body[0])
	}
	ifPart, ok := cond.IfPart.(*If)
	if !ok {
		t.Fatalf("IfPart = %T, want *If", cond.IfPart)
	}
	if diff := cmp.Diff([]Node{&Text{Text: "a\n"}}, ifPart.Body); diff != "" {
		t.Errorf("If.Body mismatch (-want +got):\n%s", diff)
	}
	if len(cond.ElseIfParts) != 1 {
		t.Fatalf("got %d elif parts, want 1", len(cond.ElseIfParts))
	}
	if diff := cmp.Diff([]Node{&Text{Text: "b\n"}}, cond.ElseIfParts[0].Body); diff != "" {
		t.Errorf("ElseIf.Body mismatch (-want +got):\n%s", diff)
	}
	if cond.ElsePart == nil {
		t.Fatal("ElsePart is nil, want present")
	}
	if diff := cmp.Diff([]Node{&Text{Text: "c\n"}}, cond.ElsePart.Body); diff != "" {
		t.Errorf("Else.Body mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_UnterminatedConditionalErrors(t *testing.T) {
	_, err := Parse("#if 1\nno endif here")
	if err == nil {
		t.Fatal("Parse() expected an error for a missing #endif")
	}
}

func TestParse_NestedConditional(t *testing.T) {
	src := "#ifdef OUTER\n#ifdef INNER\nboth\n#endif\n#endif\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	outer := prog.Body[0].(*Conditional)
	outerIf := outer.IfPart.(*IfDef)
	if outerIf.Identifier != "OUTER" {
		t.Errorf("outer identifier = %q, want OUTER", outerIf.Identifier)
	}
	inner := outerIf.Body[0].(*Conditional)
	innerIf := inner.IfPart.(*IfDef)
	if innerIf.Identifier != "INNER" {
		t.Errorf("inner identifier = %q, want INNER", innerIf.Identifier)
	}
}
