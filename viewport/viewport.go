// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package viewport computes the GUI display viewport from window state.
//
// A Viewport pairs the window's physical pixel size with the scale factor
// (device-independent pixel ratio) the GUI lays out at. The scale factor
// comes from the window unless Settings carries an explicit override.
package viewport

import (
	"fmt"

	"github.com/gogpu/uipass/framegraph"
)

// Viewport is the display area the GUI renders into.
type Viewport struct {
	// PhysicalWidth and PhysicalHeight are in device pixels.
	PhysicalWidth  uint32
	PhysicalHeight uint32

	// ScaleFactor is the device-independent pixel ratio.
	ScaleFactor float64
}

// WithPhysicalSize creates a viewport from a physical size and scale factor.
func WithPhysicalSize(width, height uint32, scale float64) Viewport {
	return Viewport{
		PhysicalWidth:  width,
		PhysicalHeight: height,
		ScaleFactor:    scale,
	}
}

// LogicalSize returns the size in logical (scaled) pixels.
func (v Viewport) LogicalSize() (width, height float64) {
	if v.ScaleFactor <= 0 {
		return float64(v.PhysicalWidth), float64(v.PhysicalHeight)
	}
	return float64(v.PhysicalWidth) / v.ScaleFactor, float64(v.PhysicalHeight) / v.ScaleFactor
}

// IsEmpty reports whether the viewport has no drawable area.
func (v Viewport) IsEmpty() bool {
	return v.PhysicalWidth == 0 || v.PhysicalHeight == 0
}

// Projection returns a column-major orthographic matrix mapping logical
// pixel coordinates (origin top-left, y down) to clip space.
func (v Viewport) Projection() [16]float32 {
	w, h := v.LogicalSize()
	if w == 0 || h == 0 {
		return [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	}
	sx := float32(2 / w)
	sy := float32(-2 / h)
	return [16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d@%g", v.PhysicalWidth, v.PhysicalHeight, v.ScaleFactor)
}

// Window is the window state the resolver reads each tick.
type Window interface {
	PhysicalWidth() uint32
	PhysicalHeight() uint32
	ScaleFactor() float64
}

// Resolve computes the viewport for w. The scale factor is the override in
// s when present, otherwise the window's own. w must not be nil.
func Resolve(w Window, s Settings) Viewport {
	scale := w.ScaleFactor()
	if s.ScaleFactor != nil {
		scale = *s.ScaleFactor
	}
	return WithPhysicalSize(w.PhysicalWidth(), w.PhysicalHeight(), scale)
}

// Resolver is the application-world system that publishes the Viewport
// resource once per tick.
type Resolver struct{}

// Run resolves the viewport from the world's single primary window and
// inserts it as a resource, replacing the previous tick's value.
//
// The host guarantees exactly one window entity; Run panics otherwise.
// A missing Settings resource means no override.
func (Resolver) Run(w *framegraph.World) Viewport {
	var (
		win   Window
		count int
	)
	framegraph.Each(w, func(_ framegraph.Entity, cand Window) {
		win = cand
		count++
	})
	if count != 1 {
		panic(fmt.Sprintf("viewport: expected exactly one primary window, found %d", count))
	}
	settings, _ := framegraph.Resource[Settings](w)
	vp := Resolve(win, settings)
	framegraph.InsertResource(w, vp)
	return vp
}

// StaticWindow is a fixed-size Window, useful for headless hosts and tests.
type StaticWindow struct {
	Width, Height uint32
	Scale         float64
}

// PhysicalWidth implements Window.
func (s StaticWindow) PhysicalWidth() uint32 { return s.Width }

// PhysicalHeight implements Window.
func (s StaticWindow) PhysicalHeight() uint32 { return s.Height }

// ScaleFactor implements Window.
func (s StaticWindow) ScaleFactor() float64 { return s.Scale }
