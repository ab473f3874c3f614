// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package extract

import "sync/atomic"

// RedrawFlag is the process-wide "GUI recorded new primitives" dirty bit.
//
// The GUI (producer) calls Set after drawing; the extractor (consumer) calls
// Swap once per frame. Swap atomically clears the flag and returns its prior
// value, so each Set is observed by exactly one extraction even when a Set
// races with the extraction barrier.
//
// The zero value is a cleared flag. RedrawFlag must not be copied after
// first use; share it by pointer.
type RedrawFlag struct {
	v atomic.Bool
}

// NewRedrawFlag creates a cleared flag.
func NewRedrawFlag() *RedrawFlag {
	return &RedrawFlag{}
}

// Set marks the GUI as changed.
func (f *RedrawFlag) Set() {
	f.v.Store(true)
}

// Swap clears the flag and reports whether it was set.
func (f *RedrawFlag) Swap() bool {
	return f.v.Swap(false)
}

// Load reports the flag without consuming it.
func (f *RedrawFlag) Load() bool {
	return f.v.Load()
}
