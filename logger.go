package dof

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/dof/effect"
)

// nopHandler drops every record. Enabled reports false, so disabled
// log calls never build their attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs l as the logger of dof and of the effect nodes it
// creates. dof is silent until SetLogger is called; nil makes it silent
// again. SetLogger may be called from any goroutine.
//
// Levels:
//   - [slog.LevelDebug]: distance and blur per frame, camera fallback
//   - [slog.LevelInfo]: processor and device lifecycle
//   - [slog.LevelWarn]: missing lens kernel, failed parameter uploads
//
// Example:
//
//	dof.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
	effect.SetLogger(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
