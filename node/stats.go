package node

import (
	"fmt"
	"sync/atomic"
)

// Stats counts node outcomes. All counters are safe to read while the
// graph runs.
type Stats struct {
	presents       atomic.Uint64
	noTarget       atomic.Uint64
	noRedraw       atomic.Uint64
	noViewport     atomic.Uint64
	notAccelerated atomic.Uint64
	failed         atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	// Presents is the number of successful presents.
	Presents uint64

	// SkippedNoTarget counts runs for views without a target texture.
	SkippedNoTarget uint64

	// SkippedNoRedraw counts runs where no redraw was extracted.
	SkippedNoRedraw uint64

	// SkippedNoViewport counts redraws extracted without a published
	// viewport.
	SkippedNoViewport uint64

	// SkippedNotAccelerated counts runs where the renderer was missing or
	// not the accelerated variant.
	SkippedNotAccelerated uint64

	// Failed counts presents that returned an error.
	Failed uint64
}

// Load returns the current counter values.
func (s *Stats) Load() StatsSnapshot {
	return StatsSnapshot{
		Presents:              s.presents.Load(),
		SkippedNoTarget:       s.noTarget.Load(),
		SkippedNoRedraw:       s.noRedraw.Load(),
		SkippedNoViewport:     s.noViewport.Load(),
		SkippedNotAccelerated: s.notAccelerated.Load(),
		Failed:                s.failed.Load(),
	}
}

// Skipped returns the total number of skipped runs.
func (s StatsSnapshot) Skipped() uint64 {
	return s.SkippedNoTarget + s.SkippedNoRedraw + s.SkippedNoViewport + s.SkippedNotAccelerated
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf("presents=%d skipped=%d (no target %d, no redraw %d, no viewport %d, not accelerated %d) failed=%d",
		s.Presents, s.Skipped(), s.SkippedNoTarget, s.SkippedNoRedraw, s.SkippedNoViewport, s.SkippedNotAccelerated, s.Failed)
}
