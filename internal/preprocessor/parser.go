package preprocessor

import (
	"fmt"
	"strings"
)

// Parse turns unescaped, comment-stripped source into a Program, a
// minimal line-oriented scanner that exists so the macro expander and
// conditional evaluator have real AST input to run against.
//
// A standalone directive (#define, #undef, #error, #pragma, #version,
// #extension, #line) consumes its own line, trailing newline included,
// so removing it leaves no trace. A function-like #define's line is
// consumed only up to its own newline, which then opens the following
// Text node: a line break survives a dropped function-like definition
// but not a dropped object-like one. A conditional's #if/#ifdef/#ifndef,
// #elif, #else, and #endif header lines are each consumed including
// their own newline; only the body text between them survives.
func Parse(src string) (*Program, error) {
	nodes, _, stoppedOn, err := parseBody(src, 0, nil)
	if err != nil {
		return nil, err
	}
	if stoppedOn != "" {
		return nil, fmt.Errorf("unexpected #%s with no matching #if", stoppedOn)
	}
	return &Program{Body: nodes}, nil
}

var condStopSet = map[string]bool{"elif": true, "else": true, "endif": true}
var endifOnlySet = map[string]bool{"endif": true}

// readLine returns the line starting at start: its content (without a
// trailing newline), whether it had one, and the position right after
// that newline (or end of src if there wasn't one).
func readLine(src string, start int) (content string, hasNL bool, afterLine int) {
	idx := strings.IndexByte(src[start:], '\n')
	if idx < 0 {
		return src[start:], false, len(src)
	}
	return src[start : start+idx], true, start + idx + 1
}

func isDirectiveLine(content string) (trimmed string, ok bool) {
	trimmed = strings.TrimLeft(content, " \t")
	return trimmed, strings.HasPrefix(trimmed, "#")
}

func splitDirectiveKeyword(s string) (keyword, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}

// readDirectiveHeader reads the directive line starting at pos and
// returns its keyword, argument text, and the position right after the
// line's own newline.
func readDirectiveHeader(src string, pos int) (keyword, rest string, afterLine int) {
	content, _, after := readLine(src, pos)
	trimmed, _ := isDirectiveLine(content)
	kw, r := splitDirectiveKeyword(trimmed[1:])
	return kw, r, after
}

// parseBody scans a sequence of lines starting at pos, returning the
// nodes found and the position reached. If it encounters a directive
// line whose keyword is in stop, it returns immediately without
// consuming that line, reporting the keyword in stoppedOn; callers
// parsing a conditional use this to find their #elif/#else/#endif.
func parseBody(src string, pos int, stop map[string]bool) (nodes []Node, newPos int, stoppedOn string, err error) {
	textStart := pos
	for pos < len(src) {
		lineStart := pos
		content, _, afterLine := readLine(src, lineStart)
		trimmed, isDirective := isDirectiveLine(content)
		if !isDirective {
			pos = afterLine
			continue
		}

		keyword, rest := splitDirectiveKeyword(trimmed[1:])
		if stop[keyword] {
			if lineStart > textStart {
				nodes = append(nodes, &Text{Text: src[textStart:lineStart]})
			}
			return nodes, lineStart, keyword, nil
		}

		if lineStart > textStart {
			nodes = append(nodes, &Text{Text: src[textStart:lineStart]})
		}

		node, nextPos, perr := parseDirective(src, rest, afterLine, keyword)
		if perr != nil {
			return nil, 0, "", perr
		}
		nodes = append(nodes, node)
		pos = nextPos
		textStart = pos
	}
	if textStart < len(src) {
		nodes = append(nodes, &Text{Text: src[textStart:]})
	}
	return nodes, pos, "", nil
}

// parseDirective builds the node for the directive line whose keyword
// and argument text (rest) have already been split out. afterLine is
// the position just past the line's own newline (or end of src if it
// had none), used by every directive kind except function-like #define,
// which withholds its own trailing newline so it opens the Text that
// follows.
func parseDirective(src string, rest string, afterLine int, keyword string) (Node, int, error) {
	switch keyword {
	case "define":
		name, params, body, isFunction := parseDefineHeader(rest)
		if isFunction {
			contentEnd := afterLine
			if afterLine > 0 && afterLine <= len(src) && src[afterLine-1] == '\n' {
				contentEnd = afterLine - 1
			}
			return &DefineArguments{Name: name, Params: params, Body: body}, contentEnd, nil
		}
		return &Define{Name: name, Body: body}, afterLine, nil

	case "undef":
		return &Undef{Name: strings.TrimSpace(rest)}, afterLine, nil

	case "error":
		return &ErrorDirective{Message: rest}, afterLine, nil

	case "pragma":
		return &Pragma{Text: rest}, afterLine, nil

	case "version":
		return &Version{Text: rest}, afterLine, nil

	case "extension":
		return &Extension{Text: rest}, afterLine, nil

	case "line":
		return &Line{Text: rest}, afterLine, nil

	case "if":
		expr, err := ParseExpression(rest)
		if err != nil {
			return nil, 0, err
		}
		return parseConditional(src, afterLine, &If{Expression: expr})

	case "ifdef":
		return parseConditional(src, afterLine, &IfDef{Identifier: strings.TrimSpace(rest)})

	case "ifndef":
		return parseConditional(src, afterLine, &IfNDef{Identifier: strings.TrimSpace(rest)})

	default:
		return nil, 0, fmt.Errorf("unknown directive #%s", keyword)
	}
}

// parseConditional parses the body of ifPart (whose header line has
// already been consumed, bodyStart pointing just past it), then any
// #elif branches and a trailing #else, ending at a required #endif.
func parseConditional(src string, bodyStart int, ifPart IfPart) (Node, int, error) {
	body, pos, stoppedOn, err := parseBody(src, bodyStart, condStopSet)
	if err != nil {
		return nil, 0, err
	}
	setIfPartBody(ifPart, body)

	var elseIfs []*ElseIf
	for stoppedOn == "elif" {
		_, rest, after := readDirectiveHeader(src, pos)
		expr, err := ParseExpression(rest)
		if err != nil {
			return nil, 0, err
		}
		elifBody, nextPos, next, err := parseBody(src, after, condStopSet)
		if err != nil {
			return nil, 0, err
		}
		elseIfs = append(elseIfs, &ElseIf{Expression: expr, Body: elifBody})
		pos, stoppedOn = nextPos, next
	}

	var elsePart *Else
	if stoppedOn == "else" {
		_, _, after := readDirectiveHeader(src, pos)
		elseBody, nextPos, next, err := parseBody(src, after, endifOnlySet)
		if err != nil {
			return nil, 0, err
		}
		elsePart = &Else{Body: elseBody}
		pos, stoppedOn = nextPos, next
	}

	if stoppedOn != "endif" {
		return nil, 0, fmt.Errorf("unterminated conditional: missing #endif")
	}
	_, _, endPos := readDirectiveHeader(src, pos)
	return &Conditional{IfPart: ifPart, ElseIfParts: elseIfs, ElsePart: elsePart}, endPos, nil
}

func setIfPartBody(part IfPart, body []Node) {
	switch p := part.(type) {
	case *If:
		p.Body = body
	case *IfDef:
		p.Body = body
	case *IfNDef:
		p.Body = body
	}
}

// parseDefineHeader splits a #define line's argument text into the
// macro name, its parameter list (nil for object-like), its body, and
// whether it is function-like. Function-like requires the opening paren
// immediately after the name, with no intervening space.
func parseDefineHeader(rest string) (name string, params []string, body string, isFunction bool) {
	i := 0
	for i < len(rest) && isIdentPart(rest[i]) {
		i++
	}
	name = rest[:i]
	if i < len(rest) && rest[i] == '(' {
		j := strings.IndexByte(rest[i:], ')')
		if j < 0 {
			return name, splitParams(rest[i+1:]), "", true
		}
		params = splitParams(rest[i+1 : i+j])
		body = strings.TrimLeft(rest[i+j+1:], " \t")
		return name, params, body, true
	}
	body = strings.Trim(rest[i:], " \t")
	return name, nil, body, false
}

func splitParams(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
