package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a configured slog.Logger.
//
// level: log level name (debug, info, warn, error); unrecognized values
// fall back to info.
// format: "text" (human-readable) or "json" (structured)
//
// Output goes to stderr by default (stdout is reserved for generated
// pipeline output).
func New(level, format string) *slog.Logger {
	return NewWithWriter(level, format, os.Stderr)
}

// NewWithWriter creates a logger writing to the given writer.
func NewWithWriter(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
// Returns slog.LevelInfo for unrecognized values.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
