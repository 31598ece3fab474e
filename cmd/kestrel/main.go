// Package main provides the kestrel command-line interface.
package main

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v6/osfs"
	"github.com/spf13/cobra"

	"github.com/kestreldb/kestrel/internal/config"
	"github.com/kestreldb/kestrel/internal/logging"
	"github.com/kestreldb/kestrel/internal/repl"
)

var Version = "0.1.0"

var (
	cfgFile    string
	scriptFile string
	quiet      bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "kestrel",
		Short:   "Kestrel - an in-memory relational engine",
		Long:    "Kestrel is an in-memory relational engine with a statement shell,\nbinary snapshots, and script replay.",
		Version: Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: os config dir)")
	rootCmd.Flags().StringVar(&scriptFile, "script", "", "replay a statement file and exit")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress log output below error")

	return rootCmd
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if quiet {
		level = logging.ParseLevel("error")
	}
	logger, closeFn := logging.Setup(level, cfg.SeqURL)
	defer closeFn()

	session := repl.NewSession(osfs.New(cfg.SnapshotDir), logger)

	if scriptFile != "" {
		return replayScript(session, scriptFile)
	}
	return repl.Run(session, cfg)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadDefault()
}

// replayScript runs every statement in path against a fresh session.
// The first failing statement stops the replay.
func replayScript(session *repl.Session, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	statements, rest := repl.SplitStatements(string(data))
	if rest != "" {
		statements = append(statements, rest)
	}

	for i, stmt := range statements {
		res, err := session.ExecuteStatement(stmt)
		if err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
		repl.RenderResult(os.Stdout, res)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
