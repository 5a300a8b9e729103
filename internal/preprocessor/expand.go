package preprocessor

import (
	"fmt"
	"regexp"
	"strings"
)

// isIdentStart and isIdentPart match shading-language identifier
// characters.
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

var wordBoundaryCache = make(map[string]*regexp.Regexp)

// wordBoundary returns a cached regexp matching name as a whole word.
// Preprocessing is single-threaded, so an unsynchronized cache is safe.
func wordBoundary(name string) *regexp.Regexp {
	if re, ok := wordBoundaryCache[name]; ok {
		return re
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	wordBoundaryCache[name] = re
	return re
}

var callCache = make(map[string]*regexp.Regexp)

// callStart returns a cached regexp matching name followed by optional
// whitespace and an opening paren, for locating function-like macro
// invocations.
func callStart(name string) *regexp.Regexp {
	if re, ok := callCache[name]; ok {
		return re
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
	callCache[name] = re
	return re
}

var pasteRe = regexp.MustCompile(`\s+##\s+`)

// pasteTokens collapses `\s+##\s+` to nothing, gluing the tokens either
// side of a `##` operator together.
func pasteTokens(s string) string {
	return pasteRe.ReplaceAllString(s, "")
}

// Expand expands every macro occurrence in text under env, in
// definition order, each macro's replacement fully applied to text
// before moving on to the next macro name.
func Expand(text string, env Env) (string, error) {
	for _, name := range env.Names() {
		m, ok := env.Get(name)
		if !ok {
			continue
		}
		var err error
		if m.IsFunction {
			text, err = expandFunctionMacro(text, name, m, env)
		} else {
			text, err = expandObjectMacro(text, name, m, env)
		}
		if err != nil {
			return "", err
		}
	}
	return text, nil
}

// expandObjectMacro replaces every whole-word occurrence of an
// object-like macro's name with its body, fully expanded first.
func expandObjectMacro(text, name string, m *Macro, env Env) (string, error) {
	re := wordBoundary(name)
	if !re.MatchString(text) {
		return text, nil
	}
	expandedBody, err := Expand(m.Body, env.Without(name))
	if err != nil {
		return "", err
	}
	substituted := re.ReplaceAllLiteralString(text, expandedBody)
	return pasteTokens(substituted), nil
}

// expandFunctionMacro scans text left to right, replacing each complete
// invocation of name(...) and resuming the scan just past the inserted
// expansion, so a macro whose own expansion re-invokes itself is never
// re-expanded.
func expandFunctionMacro(text, name string, m *Macro, env Env) (string, error) {
	re := callStart(name)
	var b strings.Builder
	pos := 0
	for pos < len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			b.WriteString(text[pos:])
			break
		}
		matchStart := pos + loc[0]
		argsStart := pos + loc[1]
		b.WriteString(text[pos:matchStart])

		args, consumed, ok := scanMacroArgs(text[argsStart:])
		if !ok {
			return "", fmt.Errorf("%s( unterminated macro invocation", name)
		}
		callEnd := argsStart + consumed

		formal := m.Params
		if len(args) > len(formal) {
			return "", fmt.Errorf("'%s': Too many arguments for macro", name)
		}
		if len(args) < len(formal) {
			return "", fmt.Errorf("'%s': Not enough arguments for macro", name)
		}

		expandedArgs := make([]string, len(args))
		for i, a := range args {
			ea, err := Expand(strings.TrimSpace(a), env)
			if err != nil {
				return "", err
			}
			expandedArgs[i] = ea
		}

		substituted := pasteTokens(substituteParams(m.Body, formal, expandedArgs))
		expanded, err := Expand(substituted, env.Without(name))
		if err != nil {
			return "", err
		}
		b.WriteString(expanded)
		pos = callEnd
	}
	return b.String(), nil
}

// scanMacroArgs walks s, which begins just past a macro call's opening
// paren, tracking paren depth to find top-level commas and the matching
// closing paren. consumed is the number of bytes of s through and
// including that closing paren.
func scanMacroArgs(s string) (args []string, consumed int, ok bool) {
	depth := 0
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
			cur.WriteByte('(')
		case ')':
			if depth == 0 {
				args = append(args, cur.String())
				return finalizeArgs(args), i + 1, true
			}
			depth--
			cur.WriteByte(')')
		case ',':
			if depth == 0 {
				args = append(args, cur.String())
				cur.Reset()
				continue
			}
			cur.WriteByte(',')
		default:
			cur.WriteByte(s[i])
		}
	}
	return nil, 0, false
}

// finalizeArgs applies the empty-invocation rule: M() has zero
// arguments, not one empty argument, while M(,) has two.
func finalizeArgs(args []string) []string {
	if len(args) == 1 && strings.TrimSpace(args[0]) == "" {
		return nil
	}
	return args
}

// substituteParams performs a single simultaneous pass over body,
// replacing every word-boundary occurrence of a formal parameter with
// its pre-expanded actual argument, so that an actual argument
// containing a parameter's name is never re-substituted.
func substituteParams(body string, formal []string, actual []string) string {
	if len(formal) == 0 {
		return body
	}
	argMap := make(map[string]string, len(formal))
	quoted := make([]string, len(formal))
	for i, p := range formal {
		if i < len(actual) {
			argMap[p] = actual[i]
		} else {
			argMap[p] = ""
		}
		quoted[i] = regexp.QuoteMeta(p)
	}
	re := regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
	return re.ReplaceAllStringFunc(body, func(match string) string {
		return argMap[match]
	})
}
