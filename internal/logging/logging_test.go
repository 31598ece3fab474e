package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSetupWithoutSeq(t *testing.T) {
	logger, cleanup := Setup(slog.LevelInfo, "")
	defer cleanup()

	if logger == nil {
		t.Fatal("Setup returned a nil logger")
	}
	ctx := context.Background()
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Fatal("debug should be disabled at info level")
	}
	if !logger.Enabled(ctx, slog.LevelWarn) {
		t.Fatal("warn should be enabled at info level")
	}
}
