// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() for the default logger and a debug.log sink for the TUI.

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options selects the log destination, level and format
type Options struct {
	Output io.Writer // default: stderr
	Level  string    // debug, info, warn, error (default: info)
	Format string    // text, json (default: text)
}

// Init configures the default slog logger. Empty Level and Format fall back
// to LOG_LEVEL and LOG_FORMAT.
func Init(opts Options) *slog.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Level == "" {
		opts.Level = os.Getenv("LOG_LEVEL")
	}
	if opts.Format == "" {
		opts.Format = os.Getenv("LOG_FORMAT")
	}

	l := New(opts.Output, opts.Level, opts.Format)
	slog.SetDefault(l)
	return l
}

// New builds a logger without touching the default
func New(w io.Writer, level, format string) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// OpenDebugLog opens <dir>/debug.log for appending so the TUI can log
// without drawing over the terminal. An empty dir discards output.
func OpenDebugLog(dir string) (io.WriteCloser, error) {
	if dir == "" {
		return nopCloser{io.Discard}, nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
