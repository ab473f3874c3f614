// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package framegraph models the host engine surface that uipass plugs into.
//
// A host runs two worlds: the application world, updated every tick, and the
// render world, an isolated per-frame copy used only for GPU submission. The
// extraction barrier copies selected application state into the render world
// once per frame; the Graph then runs its nodes once per view.
//
// The package provides just enough of that surface to drive uipass:
//
//   - World: type-keyed resources plus entities with generic components
//   - QueryState: a view query cached per structural generation
//   - RenderContext: HAL device/queue and a lazily created command encoder
//   - Graph and Node: ordered per-view node dispatch
//
// Engines with their own render graph implement Node dispatch themselves
// and only need to satisfy the same two capabilities: a lazily refreshed
// query cache (Update) and per-view execution with access to the frame's
// command encoder (Run).
package framegraph
