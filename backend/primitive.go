// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, W, H float32
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Scale returns r with every coordinate multiplied by s.
func (r Rect) Scale(s float32) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, W: r.W * s, H: r.H * s}
}

// Quad is a solid rectangle fill.
type Quad struct {
	// Bounds is the fill area in logical pixels.
	Bounds Rect

	// Color is the premultiplied RGBA fill color.
	Color [4]float32

	// Clip restricts the fill when non-empty.
	Clip Rect
}

// Visible returns the clipped fill area and whether anything remains.
func (q Quad) Visible() (Rect, bool) {
	r := q.Bounds
	if !q.Clip.Empty() {
		r = r.Intersect(q.Clip)
	}
	return r, !r.Empty() && q.Color[3] > 0
}

// Primitive is the unit the GUI records into a Batch.
type Primitive = Quad

// Opaque returns a fully opaque color.
func Opaque(r, g, b float32) [4]float32 {
	return [4]float32{r, g, b, 1}
}

// Premultiply converts a straight-alpha color to premultiplied form.
func Premultiply(r, g, b, a float32) [4]float32 {
	return [4]float32{r * a, g * a, b * a, a}
}

// Batch accumulates the primitives of one GUI frame.
//
// A clip pushed with PushClip applies to every primitive added until the
// matching PopClip. Nested clips intersect.
type Batch struct {
	prims []Primitive
	clips []Rect
}

// Add appends p, intersecting its clip with the active clip.
func (b *Batch) Add(p Primitive) {
	if c, ok := b.clip(); ok {
		if c.Empty() {
			return
		}
		if p.Clip.Empty() {
			p.Clip = c
		} else {
			p.Clip = p.Clip.Intersect(c)
			if p.Clip.Empty() {
				return
			}
		}
	}
	b.prims = append(b.prims, p)
}

// FillRect appends a solid fill of r.
func (b *Batch) FillRect(r Rect, color [4]float32) {
	b.Add(Quad{Bounds: r, Color: color})
}

// PushClip restricts subsequent primitives to r.
func (b *Batch) PushClip(r Rect) {
	if c, ok := b.clip(); ok {
		r = r.Intersect(c)
	}
	b.clips = append(b.clips, r)
}

// PopClip removes the innermost clip. Unbalanced pops are ignored.
func (b *Batch) PopClip() {
	if n := len(b.clips); n > 0 {
		b.clips = b.clips[:n-1]
	}
}

func (b *Batch) clip() (Rect, bool) {
	if len(b.clips) == 0 {
		return Rect{}, false
	}
	return b.clips[len(b.clips)-1], true
}

// Primitives returns the recorded primitives. The slice is owned by the
// batch and valid until the next Reset.
func (b *Batch) Primitives() []Primitive {
	return b.prims
}

// Len returns the number of recorded primitives.
func (b *Batch) Len() int {
	return len(b.prims)
}

// Reset clears the batch for a new frame, keeping its storage.
func (b *Batch) Reset() {
	b.prims = b.prims[:0]
	b.clips = b.clips[:0]
}
