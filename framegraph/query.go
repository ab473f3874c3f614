// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ExtractedView marks a render-world entity as a view (camera) that the
// graph dispatches view nodes for.
type ExtractedView struct {
	// Name is an optional debug label.
	Name string
}

// ViewTarget is the color target a view renders into for the current frame.
// It is produced by the host's window texture acquisition step.
type ViewTarget struct {
	// View is the acquired surface (or offscreen) texture view.
	View hal.TextureView

	// Format is the pixel format of View.
	Format gputypes.TextureFormat

	// Width and Height are the target dimensions in physical pixels.
	Width  uint32
	Height uint32
}

// MainTextureView returns the texture view to draw into.
func (t ViewTarget) MainTextureView() hal.TextureView {
	return t.View
}

// QueryState caches the set of view entities carrying a component of type T.
//
// The cache is refreshed by Update only when the world's structural
// generation has changed since the last refresh, so per-view lookups during
// Run stay cheap. Component values themselves are always read live.
type QueryState[T any] struct {
	generation uint64
	primed     bool
	matches    map[Entity]struct{}
}

// NewQueryState creates a query state primed against w.
func NewQueryState[T any](w *World) *QueryState[T] {
	q := &QueryState[T]{}
	q.Update(w)
	return q
}

// Update refreshes the cached entity set if the world changed structurally.
// It reports whether a refresh happened.
func (q *QueryState[T]) Update(w *World) bool {
	if q.primed && q.generation == w.Generation() {
		return false
	}
	q.matches = make(map[Entity]struct{})
	Each(w, func(e Entity, _ T) {
		if Has[ExtractedView](w, e) {
			q.matches[e] = struct{}{}
		}
	})
	q.generation = w.Generation()
	q.primed = true
	return true
}

// Get returns the component of type T for view entity e. It fails when e is
// not in the cached match set or the component has been removed since.
func (q *QueryState[T]) Get(w *World, e Entity) (T, bool) {
	if _, ok := q.matches[e]; !ok {
		var zero T
		return zero, false
	}
	return Get[T](w, e)
}

// Len returns the number of cached matches.
func (q *QueryState[T]) Len() int {
	return len(q.matches)
}
