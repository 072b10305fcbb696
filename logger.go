package overlay

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/overlay/grid"
	"github.com/gogpu/overlay/prefs"
)

// nopHandler is a slog.Handler that silently discards all log records.
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

// SetLogger configures the logger for overlay and its sub-packages (grid,
// prefs). By default nothing is logged. Pass nil to restore the silent
// default.
//
// Log levels used by overlay:
//   - [slog.LevelDebug]: frame diagnostics (damage rectangles, repicks)
//   - [slog.LevelWarn]: caller mistakes that degrade to a no-op (reordering
//     a root item, an out-of-range handle size, a missing bitmap)
//   - [slog.LevelError]: I/O failures in prefs
//
// Example:
//
//	overlay.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	grid.SetLogger(l)
	prefs.SetLogger(l)
}

// Logger returns the current logger used by overlay.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
