package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// diagnostics formats error output, colorizing it when stderr is a real
// terminal (or, on Windows, an ANSI-translated one via go-colorable) and
// the caller hasn't asked for --no-color.
type diagnostics struct {
	enabled bool
	out     io.Writer
}

func newDiagnostics(wantColor bool) *diagnostics {
	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return &diagnostics{
		enabled: wantColor && isTerminal,
		out:     colorable.NewColorableStderr(),
	}
}

func (d *diagnostics) errorString(msg string) string {
	if !d.enabled {
		return "glslpp: " + msg
	}
	red := color.New(color.FgRed, color.Bold)
	return red.Sprint("glslpp: ") + msg
}
