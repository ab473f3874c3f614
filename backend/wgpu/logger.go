package wgpu

import (
	"log/slog"

	"github.com/gogpu/uipass/internal/logging"
)

var logger logging.Handle

// SetLogger sets the package logger. Called from uipass.SetLogger.
func SetLogger(l *slog.Logger) { logger.Set(l) }
