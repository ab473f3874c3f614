// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package extract moves GUI state across the extraction barrier from the
// application world into the render world.
//
// Once per frame the Extractor copies the application world's Viewport
// resource verbatim and consumes the RedrawFlag, storing both in a fresh
// Snapshot resource in the render world. The render world only ever sees
// the plain Snapshot; the atomic flag stays on the application side.
package extract

import (
	"log/slog"

	"github.com/gogpu/uipass/framegraph"
	"github.com/gogpu/uipass/internal/logging"
	"github.com/gogpu/uipass/viewport"
)

var logger logging.Handle

// SetLogger sets the package logger. Called from uipass.SetLogger.
func SetLogger(l *slog.Logger) { logger.Set(l) }

// Snapshot is the render world's per-frame copy of GUI state.
// It is read-only during graph execution and replaced every frame.
type Snapshot struct {
	// Frame is the extraction sequence number, starting at 1.
	Frame uint64

	// Viewport is the application world's viewport at extraction time.
	Viewport viewport.Viewport

	// HasViewport is false when the application world had not published a
	// viewport yet.
	HasViewport bool

	// Redraw is the consumed RedrawFlag value.
	Redraw bool
}

// Extractor runs at the extraction barrier.
//
// Extractor is NOT safe for concurrent use; the host runs extraction on a
// single goroutine while both worlds are paused.
type Extractor struct {
	frame uint64
}

// Frame returns the number of extractions performed.
func (x *Extractor) Frame() uint64 {
	return x.frame
}

// Extract copies the viewport and consumes the redraw flag from app into a
// new Snapshot resource in render. The viewport is also inserted into the
// render world as its own resource.
//
// A missing *RedrawFlag resource extracts as false; a missing Viewport
// leaves HasViewport unset and removes the render world's copy.
func (x *Extractor) Extract(app, render *framegraph.World) Snapshot {
	x.frame++
	snap := Snapshot{Frame: x.frame}

	if vp, ok := framegraph.Resource[viewport.Viewport](app); ok {
		snap.Viewport = vp
		snap.HasViewport = true
		framegraph.InsertResource(render, vp)
	} else {
		framegraph.RemoveResource[viewport.Viewport](render)
		logger.Logger().Debug("extract: no viewport published", "frame", x.frame)
	}

	if flag, ok := framegraph.Resource[*RedrawFlag](app); ok && flag != nil {
		snap.Redraw = flag.Swap()
	}

	framegraph.InsertResource(render, snap)
	return snap
}
