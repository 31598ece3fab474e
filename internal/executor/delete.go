package executor

import (
	"fmt"

	"github.com/kestreldb/kestrel/internal/engine"
	"github.com/kestreldb/kestrel/internal/parser/ast"
	"github.com/kestreldb/kestrel/internal/value"
)

// executeDelete removes the record stored under the primary key. Key
// columns are INT, so any non-INT key literal can never match.
func executeDelete(db *engine.Database, cmd *ast.Delete, ctx *Context) (*Result, error) {
	t, ok := db.Table(cmd.Table)
	if !ok {
		return nil, engine.NewUnknownTable(cmd.Table)
	}

	if cmd.Key.Type() != value.TypeInt {
		return nil, engine.NewKeyNotFound(cmd.Table, cmd.Key)
	}
	if !t.Remove(cmd.Key.Int()) {
		return nil, engine.NewKeyNotFound(cmd.Table, cmd.Key)
	}

	ctx.Logger.Info("record deleted", "table", cmd.Table, "key", cmd.Key.Int())

	return &Result{Message: fmt.Sprintf("deleted 1 record from %s", cmd.Table)}, nil
}
