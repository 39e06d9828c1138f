package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the log handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New creates a configured application logger.
// It writes to Stderr so frame output and piped JSON stay clean on Stdout.
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level, format Format) *slog.Logger {
	return NewWriter(os.Stderr, level, format)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
	return l, nil
}

// ParseFormat validates a config format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("logging: unknown format %q", s)
	}
}
