package executor

import (
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v6/util"

	"github.com/kestreldb/kestrel/internal/engine"
	"github.com/kestreldb/kestrel/internal/parser/ast"
	"github.com/kestreldb/kestrel/internal/snapshot"
)

// executeDumpTo writes a binary snapshot of the whole database.
func executeDumpTo(db *engine.Database, cmd *ast.DumpTo, ctx *Context) (*Result, error) {
	data := snapshot.Encode(db)
	if err := util.WriteFile(ctx.FS, cmd.Path, data, 0o644); err != nil {
		return nil, engine.NewIoError(cmd.Path, err)
	}

	ctx.Logger.Info("snapshot written", "path", cmd.Path, "bytes", len(data))

	return &Result{Message: fmt.Sprintf("dumped database to %q", cmd.Path)}, nil
}

// executeLoadFrom replaces the database from a snapshot. The swap only
// happens after the whole file decodes, so a bad file leaves the
// current state intact.
func executeLoadFrom(db *engine.Database, cmd *ast.LoadFrom, ctx *Context) (*Result, error) {
	data, err := util.ReadFile(ctx.FS, cmd.Path)
	if err != nil {
		return nil, engine.NewIoError(cmd.Path, err)
	}

	loaded, err := snapshot.Decode(cmd.Path, data)
	if err != nil {
		return nil, err
	}

	db.ReplaceWith(loaded)
	ctx.Logger.Info("snapshot loaded", "path", cmd.Path, "tables", len(db.Tables()))

	return &Result{Message: fmt.Sprintf("loaded database from %q", cmd.Path)}, nil
}

// executeSaveAs writes the session history, one accepted statement per
// line, verbatim.
func executeSaveAs(db *engine.Database, cmd *ast.SaveAs, ctx *Context) (*Result, error) {
	statements := ctx.History.Statements()
	var out strings.Builder
	for _, s := range statements {
		out.WriteString(s)
		out.WriteByte('\n')
	}

	if err := util.WriteFile(ctx.FS, cmd.Path, []byte(out.String()), 0o644); err != nil {
		return nil, engine.NewIoError(cmd.Path, err)
	}

	ctx.Logger.Info("history saved", "path", cmd.Path, "statements", len(statements))

	return &Result{Message: fmt.Sprintf("saved %d statements to %q", len(statements), cmd.Path)}, nil
}

// executeReadFrom defers script replay to the caller. The file is
// statted here so a missing path fails the command itself rather than
// the replay loop.
func executeReadFrom(db *engine.Database, cmd *ast.ReadFrom, ctx *Context) (*Result, error) {
	if _, err := ctx.FS.Stat(cmd.Path); err != nil {
		return nil, engine.NewIoError(cmd.Path, err)
	}
	return &Result{ScriptPath: cmd.Path}, nil
}
