package executor

import (
	"fmt"

	"github.com/kestreldb/kestrel/internal/engine"
	"github.com/kestreldb/kestrel/internal/parser/ast"
	"github.com/kestreldb/kestrel/internal/value"
)

// executeCreate registers an empty table. The key column must be
// declared in the schema and typed INT.
func executeCreate(db *engine.Database, cmd *ast.Create, ctx *Context) (*Result, error) {
	if _, exists := db.Table(cmd.Table); exists {
		return nil, engine.NewTableExists(cmd.Table)
	}

	columns := make([]engine.Column, 0, len(cmd.Columns))
	seen := make(map[string]struct{}, len(cmd.Columns))
	for _, def := range cmd.Columns {
		if _, dup := seen[def.Name]; dup {
			return nil, engine.NewDuplicateColumn(cmd.Table, def.Name)
		}
		seen[def.Name] = struct{}{}
		columns = append(columns, engine.Column{Name: def.Name, Type: def.Type})
	}

	keyType, declared := value.Type(0), false
	for _, col := range columns {
		if col.Name == cmd.Key {
			keyType, declared = col.Type, true
			break
		}
	}
	if !declared {
		return nil, engine.NewUnknownKeyColumn(cmd.Table, cmd.Key)
	}
	if keyType != value.TypeInt {
		return nil, engine.NewTypeMismatch(cmd.Table, cmd.Key, keyType, value.TypeInt)
	}

	db.AddTable(engine.NewTable(cmd.Table, cmd.Key, columns))
	ctx.Logger.Info("table created", "table", cmd.Table, "columns", len(columns))

	return &Result{Message: fmt.Sprintf("created table %s", cmd.Table)}, nil
}
