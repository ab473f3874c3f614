// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend holds the GUI renderer shared between the application
// world, which records primitives into it, and the render world, which
// presents them.
//
// # Renderer Variants
//
// A Renderer is one of:
//
//   - *Accelerated: wraps a Presenter that encodes draws into a host
//     command encoder targeting the view's texture.
//   - *Software: rasterizes on the CPU into an *image.RGBA.
//
// Only the accelerated variant participates in the render pass. Callers
// that find a Software renderer skip the frame.
//
// # Shared Access
//
// Handle guards the renderer and the debug overlay with a single mutex.
// Access is always scoped:
//
//	h.With(func(r backend.Renderer, o *backend.Overlay) {
//		if acc, ok := r.(*backend.Accelerated); ok {
//			acc.WithPrimitives(func(p backend.Presenter, prims []backend.Primitive) {
//				// encode
//			})
//		}
//	})
//
// The GUI side records a full frame with Record, which also marks the
// redraw flag:
//
//	backend.Record(h, flag, func(b *backend.Batch) {
//		b.FillRect(backend.Rect{X: 10, Y: 10, W: 100, H: 30}, backend.Opaque(0.2, 0.4, 0.8))
//	})
//
// # Presenter Registration
//
// Presenters are registered by name, typically from init() functions:
//
//	import _ "github.com/gogpu/uipass/backend/wgpu"
//
//	p, err := backend.NewPresenter(backend.PresenterWGPU)
package backend
