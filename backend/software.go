// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/uipass/viewport"
	"golang.org/x/image/draw"
)

// Software is the CPU renderer variant. It rasterizes the recorded batch
// into an RGBA image sized to the viewport and takes no part in the GPU
// render pass.
type Software struct {
	batch Batch
	img   *image.RGBA
}

// NewSoftware creates a software renderer.
func NewSoftware() *Software {
	return &Software{}
}

// Batch implements Renderer.
func (s *Software) Batch() *Batch { return &s.batch }

// Image returns the most recently rendered image, or nil.
func (s *Software) Image() *image.RGBA { return s.img }

// Render rasterizes the batch and overlay lines at the viewport's physical
// size. The image is reused across calls while the size is unchanged.
func (s *Software) Render(vp viewport.Viewport, overlay []string) *image.RGBA {
	bounds := image.Rect(0, 0, int(vp.PhysicalWidth), int(vp.PhysicalHeight))
	if s.img == nil || s.img.Bounds() != bounds {
		s.img = image.NewRGBA(bounds)
	} else {
		draw.Draw(s.img, bounds, image.Transparent, image.Point{}, draw.Src)
	}
	if bounds.Empty() {
		return s.img
	}

	scale := float32(vp.ScaleFactor)
	if scale <= 0 {
		scale = 1
	}
	s.fill(s.batch.Primitives(), scale)
	s.fill(TextQuads(overlay, OverlayColor), scale)
	return s.img
}

func (s *Software) fill(prims []Primitive, scale float32) {
	for _, p := range prims {
		r, ok := p.Visible()
		if !ok {
			continue
		}
		r = r.Scale(scale)
		pr := image.Rect(
			round(r.X), round(r.Y),
			round(r.X+r.W), round(r.Y+r.H),
		).Intersect(s.img.Bounds())
		if pr.Empty() {
			continue
		}
		draw.Draw(s.img, pr, image.NewUniform(premulColor(p.Color)), image.Point{}, draw.Over)
	}
}

func (*Software) isRenderer() {}

func round(v float32) int {
	return int(math.Round(float64(v)))
}

// premulColor converts a premultiplied float color to color.RGBA64, which
// is also alpha-premultiplied.
func premulColor(c [4]float32) color.RGBA64 {
	a := clamp01(c[3])
	ch := func(v float32) uint16 {
		return uint16(min(clamp01(v), a) * 0xffff)
	}
	return color.RGBA64{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: uint16(a * 0xffff)}
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}
