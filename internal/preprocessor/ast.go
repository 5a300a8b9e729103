package preprocessor

// Node is any element of a preprocessed source tree: either raw text
// between directives, or a directive. Dispatch is by type switch in the
// walker, the same tagged-union shape andrewchambers-cc's cpp package and
// EngFlow's gazelle_cc parser use for their own directive/expression trees.
type Node interface {
	node()
}

// Program is the root of a parsed source file.
type Program struct {
	Body []Node
}

// Text is raw source between directives.
type Text struct {
	Text string
}

func (*Text) node() {}

// Define is an object-like macro definition: `#define NAME body`.
type Define struct {
	Name string
	Body string
}

func (*Define) node() {}

// DefineArguments is a function-like macro definition:
// `#define NAME(p1, p2, ...) body`.
type DefineArguments struct {
	Name   string
	Params []string
	Body   string
}

func (*DefineArguments) node() {}

// Undef is `#undef NAME`.
type Undef struct {
	Name string
}

func (*Undef) node() {}

// IfPart is the first branch of a Conditional: If, IfDef, or IfNDef.
type IfPart interface {
	ifPart()
}

// If is `#if expression`.
type If struct {
	Expression ExprNode
	Body       []Node
}

func (*If) ifPart() {}

// IfDef is `#ifdef identifier`.
type IfDef struct {
	Identifier string
	Body       []Node
}

func (*IfDef) ifPart() {}

// IfNDef is `#ifndef identifier`.
type IfNDef struct {
	Identifier string
	Body       []Node
}

func (*IfNDef) ifPart() {}

// ElseIf is one `#elif expression` branch.
type ElseIf struct {
	Expression ExprNode
	Body       []Node
}

// Else is the trailing `#else` branch, if present.
type Else struct {
	Body []Node
}

// Conditional is a full #if/#ifdef/#ifndef ... #elif* ... #else? #endif
// block. It is replaced in place by the selected branch's body (or
// removed) once the walker resolves it.
type Conditional struct {
	IfPart      IfPart
	ElseIfParts []*ElseIf
	ElsePart    *Else
}

func (*Conditional) node() {}

// ErrorDirective is `#error message`.
type ErrorDirective struct {
	Message string
}

func (*ErrorDirective) node() {}

// Pragma is `#pragma ...`.
type Pragma struct {
	Text string
}

func (*Pragma) node() {}

// Version is `#version ...`.
type Version struct {
	Text string
}

func (*Version) node() {}

// Extension is `#extension ...`.
type Extension struct {
	Text string
}

func (*Extension) node() {}

// Line is `#line ...`.
type Line struct {
	Text string
}

func (*Line) node() {}

// ExprNode is a node of a #if/#elif conditional expression.
type ExprNode interface {
	expr()
}

// IntConstant is a base-10 integer literal.
type IntConstant struct {
	Token string
}

func (*IntConstant) expr() {}

// Identifier is a bare name appearing in an expression. By the time the
// evaluator sees one, the walker has already replaced Name with its
// macro-expanded text (see ExpandExpressionIdentifiers).
type Identifier struct {
	Name string
}

func (*Identifier) expr() {}

// UnaryDefined is the `defined(X)` operator. Its operand is never
// macro-expanded: X names a macro, it does not refer to one.
type UnaryDefined struct {
	Identifier string
}

func (*UnaryDefined) expr() {}

// Group is a parenthesized sub-expression.
type Group struct {
	Expression ExprNode
}

func (*Group) expr() {}

// Unary is a prefix operator: +, -, !, or ~.
type Unary struct {
	Operator   string
	Expression ExprNode
}

func (*Unary) expr() {}

// Binary is an infix operator application.
type Binary struct {
	Left     ExprNode
	Operator string
	Right    ExprNode
}

func (*Binary) expr() {}
