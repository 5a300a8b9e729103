package preprocessor

import "strings"

// PreprocessComments strips `//` and `/* */` comments from src. A
// single-line comment's terminating newline is preserved; a same-line
// block comment collapses to a single space; a multi-line block comment
// drops everything but the newlines it contains, so downstream line
// numbers stay stable. A block comment that is never closed runs to the
// end of src and contributes only the newlines it contains. Comments do
// not nest: the outer one wins.
func PreprocessComments(src string) string {
	var b strings.Builder
	n := len(src)
	for i := 0; i < n; {
		if src[i] == '/' && i+1 < n && src[i+1] == '/' {
			i += 2
			for i < n && src[i] != '\n' {
				i++
			}
			continue
		}
		if src[i] == '/' && i+1 < n && src[i+1] == '*' {
			start := i
			i += 2
			closed := false
			for i+1 < n {
				if src[i] == '*' && src[i+1] == '/' {
					i += 2
					closed = true
					break
				}
				i++
			}
			if !closed {
				i = n
			}
			segment := src[start:i]
			if strings.ContainsRune(segment, '\n') {
				for _, ch := range segment {
					if ch == '\n' {
						b.WriteByte('\n')
					}
				}
			} else if closed {
				b.WriteByte(' ')
			}
			continue
		}
		b.WriteByte(src[i])
		i++
	}
	return b.String()
}
