package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the outer-layer settings. The query engine itself takes
// no configuration; everything here concerns the session around it.
type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"` // readline history, not SAVE_AS
	SnapshotDir string `yaml:"snapshot_dir"` // base dir for relative snapshot paths
	LogLevel    string `yaml:"log_level"`    // debug, info, warn, error
	SeqURL      string `yaml:"seq_url"`      // empty disables the Seq sink
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Prompt:      "kestrel> ",
		HistoryFile: "",
		SnapshotDir: ".",
		LogLevel:    "info",
	}
}

// ConfigDir returns the kestrel configuration directory path,
// typically ~/.config/kestrel/.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(base, "kestrel"), nil
}

// Load reads a Config from the YAML file at path. If the file does not
// exist, it returns DefaultConfig without error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads configuration from ConfigDir()/config.yaml.
func LoadDefault() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return Load(filepath.Join(dir, "config.yaml"))
}
