// Package logger builds the CLI's diagnostic logger on log/slog.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logger configuration options.
type Config struct {
	Level slog.Level
	// JSON selects slog's JSON handler instead of the text handler.
	JSON bool
	// Writer defaults to os.Stderr so log lines never mix with results.
	Writer io.Writer
}

// DefaultConfig returns a Config that only reports warnings and errors.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelWarn,
		Writer: os.Stderr,
	}
}

// Setup creates a new *slog.Logger based on the provided configuration.
func Setup(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel converts a string log level to slog.Level. An empty string
// means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "", "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
}
