package preprocessor

import "regexp"

var escapedNewlineRe = regexp.MustCompile(`\\[\r\n]`)

// UnescapeSrc removes `\<newline>` line-continuation sequences before
// parsing.
func UnescapeSrc(src string) string {
	return escapedNewlineRe.ReplaceAllString(src, "")
}
