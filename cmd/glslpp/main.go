// Command glslpp runs the macro and conditional-compilation
// preprocessor over a shader source file and writes the result to
// stdout or a file.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/urfave/cli.v1"

	"github.com/shader-tools/glslpp/internal/preprocessor"
)

var (
	defineFlag = cli.StringSliceFlag{
		Name:  "define, D",
		Usage: "seed an object-like macro before preprocessing, as NAME or NAME=VALUE",
	}
	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "TOML configuration file",
	}
	outFlag = cli.StringFlag{
		Name:  "out, o",
		Usage: "output file (default: stdout)",
	}
	preserveCommentsFlag = cli.BoolFlag{
		Name:  "preserve-comments",
		Usage: "keep // and /* */ comments in the output",
	}
	noStopOnErrorFlag = cli.BoolFlag{
		Name:  "no-stop-on-error",
		Usage: "drop #error diagnostics instead of failing the run",
	}
	dumpEnvFlag = cli.BoolFlag{
		Name:  "dump-env",
		Usage: "print the final macro environment as a table to stderr",
	}
	debugASTFlag = cli.BoolFlag{
		Name:  "debug-ast",
		Usage: "dump the generated AST to stderr with go-spew",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colorized diagnostics",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "glslpp"
	app.Usage = "preprocess a C-like shading-language source file"
	app.Version = "0.1.0"
	app.ArgsUsage = "<source-file>"
	app.Flags = []cli.Flag{
		defineFlag,
		configFlag,
		outFlag,
		preserveCommentsFlag,
		noStopOnErrorFlag,
		dumpEnvFlag,
		debugASTFlag,
		noColorFlag,
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return cli.NewExitError("glslpp: missing <source-file>", 2)
	}
	path := ctx.Args().Get(0)

	diag := newDiagnostics(!ctx.Bool("no-color"))

	opts := preprocessor.Options{
		Defines:          map[string]string{},
		PreserveComments: ctx.Bool("preserve-comments"),
		StopOnError:      !ctx.Bool("no-stop-on-error"),
		GrammarSource:    path,
	}

	if cfgPath := ctx.String("config"); cfgPath != "" {
		if err := loadConfigFile(cfgPath, &opts); err != nil {
			return cli.NewExitError(diag.errorString(err.Error()), 1)
		}
	}

	for _, d := range ctx.StringSlice("define") {
		name, value := splitDefine(d)
		opts.Defines[name] = value
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return cli.NewExitError(diag.errorString(err.Error()), 1)
	}

	result, err := preprocessor.Run(string(src), opts)
	if err != nil {
		return cli.NewExitError(diag.errorString(err.Error()), 1)
	}

	if ctx.Bool("debug-ast") {
		spew.Fdump(diag.out, result.AST)
	}
	if ctx.Bool("dump-env") {
		writeEnvTable(diag.out, result.Env)
	}

	if out := ctx.String("out"); out != "" {
		return os.WriteFile(out, []byte(result.Output), 0o644)
	}
	_, err = os.Stdout.WriteString(result.Output)
	return err
}

// splitDefine parses a -D flag value of the form NAME or NAME=VALUE.
func splitDefine(s string) (name, value string) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
