// Package logging holds the atomically swappable slog logger shared by the
// uipass sub-packages. The root package propagates uipass.SetLogger here.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var nop = slog.New(nopHandler{})

// Nop returns a logger that discards everything.
func Nop() *slog.Logger { return nop }

// Handle stores a logger for one package. The zero value logs nothing.
type Handle struct {
	ptr atomic.Pointer[slog.Logger]
}

// Logger returns the stored logger, or the nop logger if none was set.
func (h *Handle) Logger() *slog.Logger {
	if l := h.ptr.Load(); l != nil {
		return l
	}
	return nop
}

// Set stores l. A nil logger restores silent behavior.
func (h *Handle) Set(l *slog.Logger) {
	if l == nil {
		l = nop
	}
	h.ptr.Store(l)
}
