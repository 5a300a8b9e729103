package preprocessor

import (
	"fmt"
	"sort"
)

// Options configures a single PreprocessAST run.
type Options struct {
	Defines          map[string]string
	Preserve         PreservePolicy
	PreserveComments bool
	StopOnError      bool
	GrammarSource    string
}

// PreprocessAST walks p in place, applying directive effects against a
// macro environment seeded from opts.Defines, and returns the resulting
// tree. Defines is a Go map and so has no intrinsic order; entries are
// seeded in sorted key order so a given Defines value always produces
// the same environment.
func PreprocessAST(p *Program, opts Options) (*Program, error) {
	prog, _, err := PreprocessASTWithEnv(p, opts)
	return prog, err
}

// PreprocessASTWithEnv is PreprocessAST, additionally returning the
// final macro environment reached at end of file. The CLI's --dump-env
// flag uses this to report what a file ultimately defines.
func PreprocessASTWithEnv(p *Program, opts Options) (*Program, *Environment, error) {
	env := NewEnvironment()
	keys := make([]string, 0, len(opts.Defines))
	for k := range opts.Defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env.Define(k, &Macro{Body: opts.Defines[k]})
	}

	w := &walker{opts: opts, env: env}
	body, err := w.walkNodes(p.Body)
	if err != nil {
		return nil, nil, err
	}
	p.Body = body
	return p, env, nil
}

type walker struct {
	opts Options
	env  *Environment
}

// walkNodes visits each node of a body in order, expanding macro
// occurrences in Text nodes and applying each directive's effect,
// accumulating the nodes that survive into the output.
func (w *walker) walkNodes(nodes []Node) ([]Node, error) {
	var out []Node
	for _, n := range nodes {
		replaced, err := w.visit(n)
		if err != nil {
			return nil, err
		}
		out = append(out, replaced...)
	}
	return out, nil
}

func (w *walker) visit(n Node) ([]Node, error) {
	switch node := n.(type) {
	case *Text:
		expanded, err := Expand(node.Text, w.env)
		if err != nil {
			return nil, &PreprocessError{Kind: ErrMacroCall, Message: err.Error(), GrammarSource: w.opts.GrammarSource}
		}
		return []Node{&Text{Text: expanded}}, nil

	case *Define:
		w.env.Define(node.Name, &Macro{Body: node.Body})
		return w.preserve(node), nil

	case *DefineArguments:
		w.env.Define(node.Name, &Macro{Body: node.Body, Params: node.Params, IsFunction: true})
		return w.preserve(node), nil

	case *Undef:
		w.env.Undef(node.Name)
		return w.preserve(node), nil

	case *Conditional:
		if w.opts.Preserve.Conditional {
			return []Node{node}, nil
		}
		return w.visitConditional(node)

	case *ErrorDirective:
		if w.opts.StopOnError {
			return nil, &PreprocessError{
				Kind:          ErrUserDirective,
				Message:       node.Message,
				GrammarSource: w.opts.GrammarSource,
			}
		}
		return w.preserve(node), nil

	case *Pragma:
		return w.preserve(node), nil
	case *Version:
		return w.preserve(node), nil
	case *Extension:
		return w.preserve(node), nil
	case *Line:
		return w.preserve(node), nil

	default:
		return []Node{node}, nil
	}
}

// preserve returns node's output form: itself if its type is preserved
// by policy, nothing otherwise.
func (w *walker) preserve(node Node) []Node {
	if w.opts.Preserve.keep(node) {
		return []Node{node}
	}
	return nil
}

// visitConditional selects the first true part among If/IfDef/IfNDef
// and the #elif chain; failing all of those, #else's body is used if
// present. The selected body is walked under the current environment
// and its result replaces the whole conditional.
func (w *walker) visitConditional(c *Conditional) ([]Node, error) {
	taken, err := w.evalIfPart(c.IfPart)
	if err != nil {
		return nil, err
	}
	if taken {
		return w.walkNodes(ifPartBody(c.IfPart))
	}

	for _, ei := range c.ElseIfParts {
		v, err := w.evalExpr(ei.Expression)
		if err != nil {
			return nil, err
		}
		if truthy(v) {
			return w.walkNodes(ei.Body)
		}
	}

	if c.ElsePart != nil {
		return w.walkNodes(c.ElsePart.Body)
	}
	return nil, nil
}

func (w *walker) evalIfPart(part IfPart) (bool, error) {
	switch p := part.(type) {
	case *If:
		v, err := w.evalExpr(p.Expression)
		if err != nil {
			return false, err
		}
		return truthy(v), nil
	case *IfDef:
		return w.env.Has(p.Identifier), nil
	case *IfNDef:
		return !w.env.Has(p.Identifier), nil
	default:
		return false, fmt.Errorf("Preprocessing error: unknown if-part %T", part)
	}
}

func (w *walker) evalExpr(expr ExprNode) (Value, error) {
	expanded, err := ExpandExpressionIdentifiers(expr, w.env)
	if err != nil {
		return nil, &PreprocessError{Kind: ErrMacroCall, Message: err.Error(), GrammarSource: w.opts.GrammarSource}
	}
	v, err := Evaluate(expanded, w.env)
	if err != nil {
		return nil, &PreprocessError{Kind: ErrEvaluation, Message: err.Error(), GrammarSource: w.opts.GrammarSource}
	}
	return v, nil
}

func ifPartBody(part IfPart) []Node {
	switch p := part.(type) {
	case *If:
		return p.Body
	case *IfDef:
		return p.Body
	case *IfNDef:
		return p.Body
	default:
		return nil
	}
}
