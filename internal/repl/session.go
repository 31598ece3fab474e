package repl

import (
	"fmt"
	"log/slog"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/util"
	"github.com/google/uuid"

	"github.com/kestreldb/kestrel/internal/engine"
	"github.com/kestreldb/kestrel/internal/executor"
	"github.com/kestreldb/kestrel/internal/history"
	"github.com/kestreldb/kestrel/internal/parser"
)

// MaxScriptDepth caps READ_FROM nesting so scripts that include each
// other cannot recurse forever.
const MaxScriptDepth = 16

// Session owns one database plus everything a statement needs to run:
// the execution context, the accepted-statement history, and script
// replay.
type Session struct {
	ID      uuid.UUID
	DB      *engine.Database
	History *history.Log
	Ctx     *executor.Context
	Logger  *slog.Logger

	observers []Observer
}

func NewSession(fs billy.Filesystem, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	id := uuid.New()
	logger = logger.With("session", id.String())
	hist := history.New()
	s := &Session{
		ID:      id,
		DB:      engine.NewDatabase(),
		History: hist,
		Ctx:     executor.NewContext(fs, hist, logger),
		Logger:  logger,
	}
	s.AddObserver(NewLoggingObserver(logger))
	return s
}

// ExecuteStatement parses and runs one statement. Successful
// statements are recorded verbatim; a script replayed by READ_FROM
// records only the READ_FROM line, since replaying that line re-runs
// the script.
func (s *Session) ExecuteStatement(text string) (*executor.Result, error) {
	return s.execute(text, 0)
}

func (s *Session) execute(text string, depth int) (*executor.Result, error) {
	s.notify(Event{Type: EventParseStart, Statement: text})
	cmd, err := parser.Parse(text)
	s.notify(Event{Type: EventParseEnd, Statement: text, Err: err})
	if err != nil {
		return nil, err
	}

	s.notify(Event{Type: EventExecStart, Statement: text})
	res, err := executor.Execute(s.DB, cmd, s.Ctx)
	s.notify(Event{Type: EventExecEnd, Statement: text, Err: err})
	if err != nil {
		return nil, err
	}

	if res.ScriptPath != "" {
		count, err := s.runScript(res.ScriptPath, depth+1)
		if err != nil {
			return nil, err
		}
		res = &executor.Result{Message: fmt.Sprintf("executed %d statements from %q", count, res.ScriptPath)}
	}

	if depth == 0 {
		s.History.Record(text)
	}
	s.Logger.Debug("statement accepted", "statement", text)
	return res, nil
}

// runScript replays a statement file. The first failing statement
// aborts the replay; statements already executed stay applied.
func (s *Session) runScript(path string, depth int) (int, error) {
	if depth > MaxScriptDepth {
		return 0, engine.NewIoError(path, fmt.Errorf("scripts nested deeper than %d", MaxScriptDepth))
	}

	data, err := util.ReadFile(s.Ctx.FS, path)
	if err != nil {
		return 0, engine.NewIoError(path, err)
	}

	statements, rest := SplitStatements(string(data))
	if rest != "" {
		statements = append(statements, rest)
	}

	s.notify(Event{Type: EventScriptStart, Statement: path})
	for i, stmt := range statements {
		if _, err := s.execute(stmt, depth); err != nil {
			err = fmt.Errorf("statement %d of %q: %w", i+1, path, err)
			s.notify(Event{Type: EventScriptEnd, Statement: path, Err: err})
			return i, err
		}
	}
	s.notify(Event{Type: EventScriptEnd, Statement: path})

	s.Logger.Info("script replayed", "path", path, "statements", len(statements))
	return len(statements), nil
}
