package edgelight

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for edgelight and its sub-packages.
// By default edgelight produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used by edgelight:
//   - [slog.LevelDebug]: run transitions, swatch extraction failures
//   - [slog.LevelInfo]: notifications accepted by the dispatcher
//   - [slog.LevelWarn]: surface render errors
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by edgelight.
// Sub-packages call this to share the same logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
