package executor

import (
	"sort"

	"github.com/kestreldb/kestrel/internal/engine"
	"github.com/kestreldb/kestrel/internal/parser/ast"
	"github.com/kestreldb/kestrel/internal/value"
)

// executeSelect runs the query pipeline: filter, stable order, limit,
// project. Candidates are visited in key insertion order.
func executeSelect(db *engine.Database, cmd *ast.Select, ctx *Context) (*Result, error) {
	t, ok := db.Table(cmd.Table)
	if !ok {
		return nil, engine.NewUnknownTable(cmd.Table)
	}

	// Resolve the projection up front so column errors surface even
	// when the table is empty.
	var projIdx []int
	var columns []string
	if cmd.Star {
		for i, col := range t.Columns() {
			projIdx = append(projIdx, i)
			columns = append(columns, col.Name)
		}
	} else {
		for _, name := range cmd.Columns {
			i, ok := t.ColumnIndex(name)
			if !ok {
				return nil, engine.NewUnknownColumn(cmd.Table, name)
			}
			projIdx = append(projIdx, i)
			columns = append(columns, name)
		}
	}

	records := t.Records()

	if cmd.Where != nil {
		kept := records[:0:0]
		for _, rec := range records {
			v, err := engine.Eval(t, rec, cmd.Where)
			if err != nil {
				return nil, err
			}
			if v.Type() != value.TypeBool {
				return nil, engine.NewTypeError("WHERE predicate must yield BOOLEAN, got " + v.Type().String())
			}
			if v.Bool() {
				kept = append(kept, rec)
			}
		}
		records = kept
	}

	if cmd.Order != nil {
		i, ok := t.ColumnIndex(cmd.Order.Column)
		if !ok {
			return nil, engine.NewUnknownColumn(cmd.Table, cmd.Order.Column)
		}
		desc := cmd.Order.Direction == ast.Desc
		sort.SliceStable(records, func(a, b int) bool {
			ord, _ := records[a][i].Compare(records[b][i])
			if desc {
				return ord > 0
			}
			return ord < 0
		})
	}

	if cmd.Limit != nil {
		n := *cmd.Limit
		if n < 0 {
			return nil, engine.NewInvalidLimit(n)
		}
		if int64(len(records)) > n {
			records = records[:n]
		}
	}

	rows := make([][]value.Value, 0, len(records))
	for _, rec := range records {
		row := make([]value.Value, len(projIdx))
		for ri, ci := range projIdx {
			row[ri] = rec[ci]
		}
		rows = append(rows, row)
	}

	if columns == nil {
		columns = []string{}
	}
	ctx.Logger.Info("query executed", "table", cmd.Table, "rows", len(rows))

	return &Result{Columns: columns, Rows: rows}, nil
}
