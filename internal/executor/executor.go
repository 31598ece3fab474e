package executor

import (
	"log/slog"

	"github.com/go-git/go-billy/v6"

	"github.com/kestreldb/kestrel/internal/engine"
	"github.com/kestreldb/kestrel/internal/history"
	"github.com/kestreldb/kestrel/internal/parser/ast"
	"github.com/kestreldb/kestrel/internal/value"
)

// Result is the outcome of one executed command. Exactly one shape is
// populated: Message for acknowledgments, Columns/Rows for SELECT, and
// ScriptPath when a READ_FROM asks the caller to replay a file.
type Result struct {
	Message    string
	Columns    []string
	Rows       [][]value.Value
	ScriptPath string
}

// IsRows reports whether the result carries a projected row set.
func (r *Result) IsRows() bool { return r.Columns != nil }

// Context supplies the capabilities commands need beyond the database:
// a filesystem for snapshots and scripts, and the session history for
// SAVE_AS.
type Context struct {
	FS      billy.Filesystem
	History *history.Log
	Logger  *slog.Logger
}

// NewContext wires a context; a nil logger is replaced with a silent
// one so library callers are never forced to configure logging.
func NewContext(fs billy.Filesystem, hist *history.Log, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Context{FS: fs, History: hist, Logger: logger}
}

// Execute runs one command against the database. On error the database
// is untouched: every handler validates fully before mutating.
func Execute(db *engine.Database, cmd ast.Command, ctx *Context) (*Result, error) {
	switch c := cmd.(type) {
	case *ast.Create:
		return executeCreate(db, c, ctx)
	case *ast.Insert:
		return executeInsert(db, c, ctx)
	case *ast.Delete:
		return executeDelete(db, c, ctx)
	case *ast.Select:
		return executeSelect(db, c, ctx)
	case *ast.DumpTo:
		return executeDumpTo(db, c, ctx)
	case *ast.LoadFrom:
		return executeLoadFrom(db, c, ctx)
	case *ast.SaveAs:
		return executeSaveAs(db, c, ctx)
	case *ast.ReadFrom:
		return executeReadFrom(db, c, ctx)
	default:
		return nil, engine.NewTypeError("unsupported command")
	}
}
