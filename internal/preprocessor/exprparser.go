package preprocessor

import (
	"fmt"
	"strings"
)

type exprToken struct {
	kind string // "int", "ident", "op", "lparen", "rparen"
	text string
}

// lexExpr tokenizes a #if/#elif expression. It recognizes base-10
// integer literals, identifiers (including the defined keyword, which
// the parser special-cases), parentheses, and the standard C comparison,
// logical, and arithmetic operators. Non-base-10 integer literals are not
// recognized: a leading-zero literal such as 017 lexes as one decimal
// integer, and a hex literal such as 0x1F lexes as the integer 0 followed
// by the identifier x1F, which the parser then rejects.
func lexExpr(s string) ([]exprToken, error) {
	var toks []exprToken
	i := 0
	n := len(s)
	for i < n {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < n && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			toks = append(toks, exprToken{"int", s[i:j]})
			i = j
		case isIdentStart(c):
			j := i
			for j < n && isIdentPart(s[j]) {
				j++
			}
			toks = append(toks, exprToken{"ident", s[i:j]})
			i = j
		case c == '(':
			toks = append(toks, exprToken{"lparen", "("})
			i++
		case c == ')':
			toks = append(toks, exprToken{"rparen", ")"})
			i++
		default:
			op, width, err := lexOperator(s[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, exprToken{"op", op})
			i += width
		}
	}
	return toks, nil
}

func lexOperator(s string) (string, int, error) {
	two := map[string]bool{"&&": true, "||": true, "==": true, "!=": true, "<=": true, ">=": true, "<<": true, ">>": true}
	if len(s) >= 2 && two[s[:2]] {
		return s[:2], 2, nil
	}
	one := "!~+-*/%<>&|^"
	if strings.IndexByte(one, s[0]) >= 0 {
		return s[:1], 1, nil
	}
	return "", 0, fmt.Errorf("Preprocessing error: unexpected character %q in expression", s[0])
}

type exprParser struct {
	toks []exprToken
	pos  int
}

// ParseExpression parses the text of a #if/#elif directive into an
// expression tree, ready for ExpandExpressionIdentifiers and Evaluate.
func ParseExpression(s string) (ExprNode, error) {
	toks, err := lexExpr(s)
	if err != nil {
		return nil, err
	}
	p := &exprParser{toks: toks}
	if p.eof() {
		return nil, fmt.Errorf("Preprocessing error: empty expression")
	}
	node, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, fmt.Errorf("Preprocessing error: unexpected token %q in expression", p.peek().text)
	}
	return node, nil
}

func (p *exprParser) eof() bool { return p.pos >= len(p.toks) }

func (p *exprParser) peek() exprToken {
	if p.eof() {
		return exprToken{}
	}
	return p.toks[p.pos]
}

func (p *exprParser) next() exprToken {
	t := p.peek()
	p.pos++
	return t
}

// precedence follows standard C operator precedence, lowest (||) to
// highest (* / %); unary operators are handled separately in
// parseUnary, binding tighter than any binary operator.
var binaryPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6,
	"<": 7, "<=": 7, ">": 7, ">=": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

func (p *exprParser) parseExpr(minPrec int) (ExprNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if p.eof() || p.peek().kind != "op" {
			return left, nil
		}
		op := p.peek().text
		prec, ok := binaryPrecedence[op]
		if !ok || prec < minPrec {
			return left, nil
		}
		p.next()
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &Binary{Left: left, Operator: op, Right: right}
	}
}

func (p *exprParser) parseUnary() (ExprNode, error) {
	if p.eof() {
		return nil, fmt.Errorf("Preprocessing error: unexpected end of expression")
	}
	t := p.peek()
	if t.kind == "op" && (t.text == "!" || t.text == "-" || t.text == "+" || t.text == "~") {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: t.text, Expression: operand}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (ExprNode, error) {
	if p.eof() {
		return nil, fmt.Errorf("Preprocessing error: unexpected end of expression")
	}
	t := p.next()
	switch t.kind {
	case "int":
		return &IntConstant{Token: t.text}, nil
	case "ident":
		if t.text == "defined" {
			return p.parseDefined()
		}
		return &Identifier{Name: t.text}, nil
	case "lparen":
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if p.eof() || p.peek().kind != "rparen" {
			return nil, fmt.Errorf("Preprocessing error: expected ')' in expression")
		}
		p.next()
		return &Group{Expression: inner}, nil
	default:
		return nil, fmt.Errorf("Preprocessing error: unexpected token %q in expression", t.text)
	}
}

// parseDefined handles both defined(X) and defined X.
func (p *exprParser) parseDefined() (ExprNode, error) {
	parenthesized := !p.eof() && p.peek().kind == "lparen"
	if parenthesized {
		p.next()
	}
	if p.eof() || p.peek().kind != "ident" {
		return nil, fmt.Errorf("Preprocessing error: expected identifier after defined")
	}
	name := p.next().text
	if parenthesized {
		if p.eof() || p.peek().kind != "rparen" {
			return nil, fmt.Errorf("Preprocessing error: expected ')' after defined(%s", name)
		}
		p.next()
	}
	return &UnaryDefined{Identifier: name}, nil
}
