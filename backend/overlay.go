// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"image"

	"github.com/gogpu/uipass/internal/cache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay is the debug overlay drawn on top of the GUI.
type Overlay struct {
	// Enabled turns the overlay on.
	Enabled bool

	// Text is the overlay content, one entry per line.
	Text []string
}

// Lines returns the lines to present, or nil when the overlay is disabled.
func (o *Overlay) Lines() []string {
	if o == nil || !o.Enabled || len(o.Text) == 0 {
		return nil
	}
	return o.Text
}

// SetText replaces the overlay content.
func (o *Overlay) SetText(lines ...string) {
	o.Text = append(o.Text[:0], lines...)
}

// Overlay text layout.
const (
	overlayMargin = 4
	overlayPixel  = 1
)

// OverlayColor is the premultiplied color of overlay glyphs.
var OverlayColor = [4]float32{1, 1, 0, 1}

// overlayFace is the fixed-size bitmap face for overlay text.
var overlayFace font.Face = basicfont.Face7x13

// lineRuns caches the glyph runs of recently drawn overlay lines, laid out
// as the first line. Overlay text usually repeats frame to frame.
var lineRuns = cache.New[string, []Rect](128)

// TextQuads converts lines to quads, one per horizontal run of covered glyph
// pixels, laid out from the top-left corner in logical pixels.
func TextQuads(lines []string, color [4]float32) []Primitive {
	if len(lines) == 0 {
		return nil
	}
	lineHeight := float32(overlayFace.Metrics().Height.Ceil())

	var quads []Primitive
	for i, line := range lines {
		runs := lineRuns.GetOrCreate(line, func() []Rect { return layoutLine(line) })
		dy := float32(i) * lineHeight
		for _, r := range runs {
			r.Y += dy
			quads = append(quads, Quad{Bounds: r, Color: color})
		}
	}
	return quads
}

// layoutLine rasterizes one line at the first line position.
func layoutLine(line string) []Rect {
	dot := fixed.P(overlayMargin, overlayMargin+overlayFace.Metrics().Ascent.Ceil())
	var runs []Rect
	for _, r := range line {
		dr, mask, maskp, advance, ok := overlayFace.Glyph(dot, r)
		if ok {
			runs = appendGlyphRuns(runs, dr, mask, maskp)
		}
		dot.X += advance
	}
	return runs
}

// appendGlyphRuns emits one rect per horizontal run of mask coverage.
func appendGlyphRuns(runs []Rect, dr image.Rectangle, mask image.Image, maskp image.Point) []Rect {
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		runStart := -1
		for x := dr.Min.X; x <= dr.Max.X; x++ {
			covered := false
			if x < dr.Max.X {
				_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				covered = a >= 0x8000
			}
			switch {
			case covered && runStart < 0:
				runStart = x
			case !covered && runStart >= 0:
				runs = append(runs, Rect{
					X: float32(runStart * overlayPixel),
					Y: float32(y * overlayPixel),
					W: float32((x - runStart) * overlayPixel),
					H: overlayPixel,
				})
				runStart = -1
			}
		}
	}
	return runs
}
