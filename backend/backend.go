// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/uipass/extract"
	"github.com/gogpu/uipass/viewport"
	"github.com/gogpu/wgpu/hal"
)

// Common backend errors.
var (
	// ErrPresenterNotRegistered is returned when a requested presenter is
	// not registered.
	ErrPresenterNotRegistered = errors.New("backend: presenter not registered")

	// ErrNilPresenter is returned when a renderer is built without a presenter.
	ErrNilPresenter = errors.New("backend: nil presenter")
)

// Presenter encodes a frame of GUI primitives into a host command encoder.
//
// Present records a render pass targeting view. A nil clearColor loads the
// existing contents of view; otherwise the view is cleared to *clearColor first.
// Primitives are in logical pixels and are scaled by vp.ScaleFactor.
// overlay lines are drawn above the primitives. Present does not submit
// the encoder.
type Presenter interface {
	Present(
		device hal.Device,
		queue hal.Queue,
		encoder hal.CommandEncoder,
		clearColor *gputypes.Color,
		view hal.TextureView,
		prims []Primitive,
		vp viewport.Viewport,
		overlay []string,
	) error
}

// Destroyer is implemented by presenters that hold GPU resources.
type Destroyer interface {
	Destroy()
}

// FrameReleaser is implemented by presenters that keep per-pass GPU
// resources alive until the encoder they were recorded into is submitted.
// The caller invokes ReleaseFrame after submission or discard.
type FrameReleaser interface {
	ReleaseFrame()
}

// Renderer is the GUI renderer. It is either *Accelerated or *Software.
type Renderer interface {
	// Batch returns the primitives of the most recently recorded frame.
	Batch() *Batch

	isRenderer()
}

// Accelerated is the GPU renderer variant.
type Accelerated struct {
	presenter Presenter
	batch     Batch
}

// NewAccelerated creates an accelerated renderer presenting through p.
func NewAccelerated(p Presenter) (*Accelerated, error) {
	if p == nil {
		return nil, ErrNilPresenter
	}
	return &Accelerated{presenter: p}, nil
}

// Presenter returns the presenter.
func (a *Accelerated) Presenter() Presenter { return a.presenter }

// Batch implements Renderer.
func (a *Accelerated) Batch() *Batch { return &a.batch }

// WithPrimitives calls fn with the presenter and the current primitives.
// The slice must not be retained after fn returns.
func (a *Accelerated) WithPrimitives(fn func(Presenter, []Primitive)) {
	fn(a.presenter, a.batch.Primitives())
}

// Destroy releases the presenter's resources, if it holds any.
func (a *Accelerated) Destroy() {
	if d, ok := a.presenter.(Destroyer); ok {
		d.Destroy()
	}
}

func (*Accelerated) isRenderer() {}

// Handle is the renderer and overlay shared between the GUI producer and
// the render node. All access goes through With.
type Handle struct {
	mu       sync.Mutex
	renderer Renderer
	overlay  Overlay
}

// NewHandle creates a handle owning r.
func NewHandle(r Renderer) *Handle {
	return &Handle{renderer: r}
}

// With runs fn while holding the handle's lock. The lock is released when
// fn returns or panics. fn must not call back into the same handle.
func (h *Handle) With(fn func(Renderer, *Overlay)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.renderer, &h.overlay)
}

// Replace swaps in r and returns the previous renderer.
func (h *Handle) Replace(r Renderer) Renderer {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.renderer
	h.renderer = r
	return prev
}

// Record resets the renderer's batch, lets fn record a new frame into it
// and marks flag so the next extraction triggers a redraw.
func Record(h *Handle, flag *extract.RedrawFlag, fn func(*Batch)) {
	h.With(func(r Renderer, _ *Overlay) {
		if r == nil {
			return
		}
		b := r.Batch()
		b.Reset()
		fn(b)
	})
	flag.Set()
}
