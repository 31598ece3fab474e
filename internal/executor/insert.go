package executor

import (
	"fmt"

	"github.com/kestreldb/kestrel/internal/engine"
	"github.com/kestreldb/kestrel/internal/parser/ast"
)

// executeInsert adds one record. Every declared column must be
// assigned exactly once and every value's tag must match the declared
// type; nothing is coerced. All checks run before the table changes.
func executeInsert(db *engine.Database, cmd *ast.Insert, ctx *Context) (*Result, error) {
	t, ok := db.Table(cmd.Table)
	if !ok {
		return nil, engine.NewUnknownTable(cmd.Table)
	}

	cols := t.Columns()
	rec := make(engine.Record, len(cols))
	assigned := make([]bool, len(cols))

	for _, a := range cmd.Assignments {
		i, ok := t.ColumnIndex(a.Column)
		if !ok {
			return nil, engine.NewUnknownColumn(cmd.Table, a.Column)
		}
		if assigned[i] {
			return nil, engine.NewDuplicateAssignment(cmd.Table, a.Column)
		}
		if a.Value.Type() != cols[i].Type {
			return nil, engine.NewTypeMismatch(cmd.Table, a.Column, a.Value.Type(), cols[i].Type)
		}
		assigned[i] = true
		rec[i] = a.Value
	}

	for i, done := range assigned {
		if !done {
			return nil, engine.NewMissingColumn(cmd.Table, cols[i].Name)
		}
	}

	key := rec[t.KeyIndex()].Int()
	if _, dup := t.Get(key); dup {
		return nil, engine.NewDuplicateKey(cmd.Table, rec[t.KeyIndex()])
	}

	t.Put(key, rec)
	ctx.Logger.Info("record inserted", "table", cmd.Table, "key", key)

	return &Result{Message: fmt.Sprintf("inserted 1 record into %s", cmd.Table)}, nil
}
