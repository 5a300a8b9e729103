package preprocessor

import (
	"fmt"
	"strings"
)

// Generate serializes a walked Program back to source text. Most nodes
// by this point are Text (the walker having already consumed and
// removed every directive it processed); any directive node reaching
// here was explicitly preserved by PreservePolicy and is re-rendered in
// a canonical form built from its fields (for example, parameters joined
// by ", " and expressions with single spaces around binary operators),
// not in its original spelling.
func Generate(p *Program) string {
	var b strings.Builder
	writeNodes(&b, p.Body)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		writeNode(b, n)
	}
}

func writeNode(b *strings.Builder, n Node) {
	switch node := n.(type) {
	case *Text:
		b.WriteString(node.Text)
	case *Define:
		fmt.Fprintf(b, "#define %s %s\n", node.Name, node.Body)
	case *DefineArguments:
		fmt.Fprintf(b, "#define %s(%s) %s\n", node.Name, strings.Join(node.Params, ", "), node.Body)
	case *Undef:
		fmt.Fprintf(b, "#undef %s\n", node.Name)
	case *ErrorDirective:
		fmt.Fprintf(b, "#error %s\n", node.Message)
	case *Pragma:
		fmt.Fprintf(b, "#pragma %s\n", node.Text)
	case *Version:
		fmt.Fprintf(b, "#version %s\n", node.Text)
	case *Extension:
		fmt.Fprintf(b, "#extension %s\n", node.Text)
	case *Line:
		fmt.Fprintf(b, "#line %s\n", node.Text)
	case *Conditional:
		writeConditional(b, node)
	}
}

func writeConditional(b *strings.Builder, c *Conditional) {
	switch p := c.IfPart.(type) {
	case *If:
		fmt.Fprintf(b, "#if %s\n", writeExpr(p.Expression))
		writeNodes(b, p.Body)
	case *IfDef:
		fmt.Fprintf(b, "#ifdef %s\n", p.Identifier)
		writeNodes(b, p.Body)
	case *IfNDef:
		fmt.Fprintf(b, "#ifndef %s\n", p.Identifier)
		writeNodes(b, p.Body)
	}
	for _, ei := range c.ElseIfParts {
		fmt.Fprintf(b, "#elif %s\n", writeExpr(ei.Expression))
		writeNodes(b, ei.Body)
	}
	if c.ElsePart != nil {
		b.WriteString("#else\n")
		writeNodes(b, c.ElsePart.Body)
	}
	b.WriteString("#endif\n")
}

func writeExpr(e ExprNode) string {
	switch n := e.(type) {
	case *IntConstant:
		return n.Token
	case *Identifier:
		return n.Name
	case *UnaryDefined:
		return fmt.Sprintf("defined(%s)", n.Identifier)
	case *Group:
		return fmt.Sprintf("(%s)", writeExpr(n.Expression))
	case *Unary:
		return fmt.Sprintf("%s%s", n.Operator, writeExpr(n.Expression))
	case *Binary:
		return fmt.Sprintf("%s %s %s", writeExpr(n.Left), n.Operator, writeExpr(n.Right))
	default:
		return ""
	}
}
