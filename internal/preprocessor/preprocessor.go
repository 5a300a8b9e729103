// Package preprocessor implements the macro and conditional-compilation
// stage of a shading-language preprocessor: comment stripping, line
// continuation, directive parsing, macro expansion, and conditional
// selection. It does not resolve #include; that, and everything past
// producing preprocessed source text, is left to the caller.
package preprocessor

import (
	"fmt"
)

// Preprocess runs the full pipeline: strip comments (unless
// opts.PreserveComments), unescape line continuations, parse to an AST,
// walk it against opts, and regenerate source text.
func Preprocess(src string, opts Options) (string, error) {
	if !opts.PreserveComments {
		src = PreprocessComments(src)
	}
	src = UnescapeSrc(src)

	prog, err := Parse(src)
	if err != nil {
		return "", &PreprocessError{Kind: ErrSyntax, Message: err.Error(), GrammarSource: opts.GrammarSource}
	}

	walked, err := PreprocessAST(prog, opts)
	if err != nil {
		return "", err
	}
	return Generate(walked), nil
}

// Result is the outcome of a Run call: the generated text plus the
// intermediate artifacts (the parsed AST and the final macro
// environment) the CLI's --debug-ast and --dump-env flags report.
type Result struct {
	Output string
	AST    *Program
	Env    *Environment
}

// Run is Preprocess, additionally retaining the parsed AST and the
// final environment for callers that need to inspect them.
func Run(src string, opts Options) (*Result, error) {
	if !opts.PreserveComments {
		src = PreprocessComments(src)
	}
	src = UnescapeSrc(src)

	prog, err := Parse(src)
	if err != nil {
		return nil, &PreprocessError{Kind: ErrSyntax, Message: err.Error(), GrammarSource: opts.GrammarSource}
	}

	walked, env, err := PreprocessASTWithEnv(prog, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Output: Generate(walked), AST: walked, Env: env}, nil
}

// Preprocessor is a reusable front end around Preprocess for callers
// (such as tests) that want to accumulate defines incrementally rather
// than building an Options.Defines map up front.
type Preprocessor struct {
	Options
}

// NewPreprocessor returns a Preprocessor with an empty Defines map and
// StopOnError set.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{Options: Options{
		Defines:     map[string]string{},
		StopOnError: true,
	}}
}

// Define records a command-line-style object-like definition, as if
// from a `-D NAME=VALUE` flag.
func (p *Preprocessor) Define(name, value string) {
	if p.Defines == nil {
		p.Defines = map[string]string{}
	}
	p.Defines[name] = value
}

// Process runs Preprocess with the Preprocessor's accumulated options.
func (p *Preprocessor) Process(src string) (string, error) {
	out, err := Preprocess(src, p.Options)
	if err != nil {
		return "", fmt.Errorf("preprocessor: %w", err)
	}
	return out, nil
}
