// Package logging builds the leveled slog.Logger used for operational output.
// Diagnostics meant for the user (validation problems) are not log records and
// are written by the caller directly to stdout.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelTrace sits below Debug and is used for per-series and per-panel detail.
const LevelTrace = slog.LevelDebug - 4

// Levels lists the accepted level names in increasing verbosity.
var Levels = []string{"info", "debug", "trace"}

// ParseLevel maps "info", "debug" or "trace" (any case) to a slog.Level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record. Used by library callers
// and tests that do not care about operational output.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
