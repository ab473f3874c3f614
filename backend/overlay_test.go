// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import "testing"

func TestOverlayLines(t *testing.T) {
	var nilOverlay *Overlay
	if nilOverlay.Lines() != nil {
		t.Error("nil overlay should have no lines")
	}

	o := &Overlay{Text: []string{"a"}}
	if o.Lines() != nil {
		t.Error("disabled overlay should have no lines")
	}
	o.Enabled = true
	if got := o.Lines(); len(got) != 1 {
		t.Errorf("Lines() = %v", got)
	}
}

func TestTextQuads(t *testing.T) {
	if TextQuads(nil, OverlayColor) != nil {
		t.Error("TextQuads(nil) should be nil")
	}
	if q := TextQuads([]string{"   "}, OverlayColor); len(q) != 0 {
		t.Errorf("blank line produced %d quads", len(q))
	}

	one := TextQuads([]string{"H"}, OverlayColor)
	if len(one) == 0 {
		t.Fatal("glyph H produced no quads")
	}
	for _, q := range one {
		if q.Bounds.H != 1 || q.Bounds.W < 1 {
			t.Fatalf("quad %+v is not a one-pixel-high run", q.Bounds)
		}
		if q.Bounds.X < overlayMargin || q.Bounds.Y < overlayMargin {
			t.Fatalf("quad %+v lies inside the margin", q.Bounds)
		}
		if q.Color != OverlayColor {
			t.Fatalf("quad color = %v", q.Color)
		}
	}

	two := TextQuads([]string{"H", "H"}, OverlayColor)
	if len(two) != 2*len(one) {
		t.Errorf("two lines produced %d quads, want %d", len(two), 2*len(one))
	}
	var maxY float32
	for _, q := range two {
		maxY = max(maxY, q.Bounds.Y)
	}
	var firstMaxY float32
	for _, q := range one {
		firstMaxY = max(firstMaxY, q.Bounds.Y)
	}
	if maxY <= firstMaxY {
		t.Error("second line should be laid out below the first")
	}
}

func TestTextQuadsCachesLines(t *testing.T) {
	lineRuns.Clear()
	first := TextQuads([]string{"cached"}, OverlayColor)
	again := TextQuads([]string{"cached"}, Opaque(1, 1, 1))
	if len(first) != len(again) {
		t.Fatalf("cached layout produced %d quads, want %d", len(again), len(first))
	}
	if hits, misses := lineRuns.Stats(); hits != 1 || misses != 1 {
		t.Errorf("line cache hits=%d misses=%d, want 1 and 1", hits, misses)
	}
	if again[0].Color != Opaque(1, 1, 1) || again[0].Bounds != first[0].Bounds {
		t.Error("cached runs should take the requested color at the same position")
	}
}
