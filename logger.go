// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uipass

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/uipass/backend/wgpu"
	"github.com/gogpu/uipass/extract"
	"github.com/gogpu/uipass/node"
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
// SetLogger can be called concurrently with logging from the render world.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for uipass and all its sub-packages.
// By default, uipass produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by uipass:
//   - [slog.LevelDebug]: per-frame diagnostics (skipped presents, extraction)
//   - [slog.LevelInfo]: lifecycle events (pipeline created, plugin built)
//   - [slog.LevelWarn]: non-fatal issues (present failures, shader fallback)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	extract.SetLogger(l)
	node.SetLogger(l)
	wgpu.SetLogger(l)
}

// Logger returns the current logger used by uipass.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
