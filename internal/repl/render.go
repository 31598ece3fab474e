package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kestreldb/kestrel/internal/engine"
	"github.com/kestreldb/kestrel/internal/executor"
	"github.com/kestreldb/kestrel/internal/value"
)

// RenderResult prints an execution result: acknowledgments as one
// line, row sets as a bordered table followed by a row count. An empty
// row set prints only "(0 rows)".
func RenderResult(w io.Writer, res *executor.Result) {
	if !res.IsRows() {
		if res.Message != "" {
			fmt.Fprintln(w, res.Message)
		}
		return
	}

	if len(res.Rows) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(res.Columns))
	for i, col := range res.Columns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, row := range res.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = renderValue(v)
		}
		t.AppendRow(out)
	}

	t.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(res.Rows))
}

// renderTables lists every table with its key, columns, and row count.
func renderTables(w io.Writer, db *engine.Database) {
	names := db.TableNames()
	if len(names) == 0 {
		fmt.Fprintln(w, "(no tables)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"table", "key", "columns", "rows"})

	for _, name := range names {
		tbl, _ := db.Table(name)
		cols := make([]string, 0, len(tbl.Columns()))
		for _, c := range tbl.Columns() {
			cols = append(cols, fmt.Sprintf("%s:%s", c.Name, c.Type))
		}
		t.AppendRow(table.Row{tbl.Name(), tbl.Key(), strings.Join(cols, ", "), tbl.Len()})
	}
	t.Render()
}

// renderValue shows strings bare; the canonical quoted form is for
// statements, not for table cells.
func renderValue(v value.Value) string {
	if v.Type() == value.TypeString {
		return v.Text()
	}
	return v.String()
}
