package renderq

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/renderq/gpu"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for renderq and its gpu package.
// By default, renderq produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used by renderq:
//   - [slog.LevelDebug]: per-queue command counts, resource sizes
//   - [slog.LevelInfo]: device lifecycle (adapter opened)
//   - [slog.LevelWarn]: a load replaced a resource that was still loaded
//   - [slog.LevelError]: a queue failed and the processor stopped
//
// Example:
//
//	renderq.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gpu.SetLogger(l)
}

// Logger returns the current logger used by renderq.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
