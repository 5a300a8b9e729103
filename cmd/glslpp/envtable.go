package main

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/shader-tools/glslpp/internal/preprocessor"
)

// writeEnvTable renders the final macro environment as a table, one row
// per macro in definition order, for --dump-env.
func writeEnvTable(w io.Writer, env *preprocessor.Environment) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Kind", "Params", "Body"})
	for _, name := range env.Names() {
		m, ok := env.Get(name)
		if !ok {
			continue
		}
		kind := "object"
		params := ""
		if m.IsFunction {
			kind = "function"
			params = strings.Join(m.Params, ", ")
		}
		table.Append([]string{m.Name, kind, params, m.Body})
	}
	table.Render()
}
