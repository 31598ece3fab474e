package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/kestreldb/kestrel/internal/config"
)

// Run drives the interactive loop. Input accumulates until the
// splitter yields complete statements, so a statement may span any
// number of lines. Results go to stdout, errors to stderr.
func Run(session *Session, cfg *config.Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    newKeywordCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("initialize repl: %w", err)
	}
	defer rl.Close()

	fmt.Println("kestrel interactive shell")
	fmt.Println("Type 'exit' or '\\q' to quit. Statements end with ';'.")

	continuation := strings.Repeat(" ", max(len(cfg.Prompt)-5, 0)) + "...> "

	var buffer string
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer = ""
			rl.SetPrompt(cfg.Prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		trimmed := strings.TrimSpace(line)
		if buffer == "" {
			if trimmed == "" {
				continue
			}
			if trimmed == "exit" || trimmed == "\\q" {
				return nil
			}
			if trimmed == "\\tables" {
				renderTables(os.Stdout, session.DB)
				continue
			}
		}

		buffer += line + "\n"
		statements, rest := SplitStatements(buffer)
		buffer = rest

		if buffer != "" {
			rl.SetPrompt(continuation)
		} else {
			rl.SetPrompt(cfg.Prompt)
		}

		for _, stmt := range statements {
			res, err := session.ExecuteStatement(stmt)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			RenderResult(os.Stdout, res)
		}
	}
}

func newKeywordCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("CREATE"),
		readline.PcItem("INSERT"),
		readline.PcItem("DELETE"),
		readline.PcItem("SELECT"),
		readline.PcItem("DUMP_TO"),
		readline.PcItem("LOAD_FROM"),
		readline.PcItem("SAVE_AS"),
		readline.PcItem("READ_FROM"),
		readline.PcItem("exit"),
		readline.PcItem("\\q"),
		readline.PcItem("\\tables"),
	)
}
