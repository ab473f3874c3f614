package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestHandleZeroValueIsSilent(t *testing.T) {
	var h Handle
	l := h.Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("zero Handle logger enabled for %v", level)
		}
	}
}

func TestHandleSet(t *testing.T) {
	var h Handle
	var buf bytes.Buffer
	h.Set(slog.New(slog.NewTextHandler(&buf, nil)))

	h.Logger().Info("frame presented", "frame", 3)
	if !strings.Contains(buf.String(), "frame presented") {
		t.Errorf("log output = %q, want it to contain the message", buf.String())
	}

	h.Set(nil)
	if h.Logger() != Nop() {
		t.Error("Set(nil) should restore the nop logger")
	}
}
