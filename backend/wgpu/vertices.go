package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/uipass/backend"
)

// quadVertexStride is the byte stride per vertex in the quad pipeline.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
//
// Total = 24 bytes per vertex.
const quadVertexStride = 24

// quadVertices is the vertex count per quad (two triangles).
const quadVertices = 6

// uniformSize is the projection matrix size in bytes.
const uniformSize = 64

// quadVertexLayout returns the vertex buffer layout for the quad pipeline.
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}

// buildQuadVertices expands the visible part of each primitive into two
// triangles, writing into staging (grown if needed). Clipping happens here
// so the pipeline needs no scissor state. Returns the staging buffer, the
// vertex data, and the vertex count.
func buildQuadVertices(prims []backend.Primitive, staging []byte) ([]byte, []byte, uint32) {
	visible := 0
	for _, p := range prims {
		if _, ok := p.Visible(); ok {
			visible++
		}
	}
	if visible == 0 {
		return staging, nil, 0
	}

	needed := visible * quadVertices * quadVertexStride
	if cap(staging) < needed {
		staging = make([]byte, needed)
	} else {
		staging = staging[:needed]
	}

	offset := 0
	for _, p := range prims {
		r, ok := p.Visible()
		if !ok {
			continue
		}
		x0, y0 := r.X, r.Y
		x1, y1 := r.X+r.W, r.Y+r.H

		for _, v := range [quadVertices][2]float32{
			{x0, y0}, {x1, y0}, {x0, y1},
			{x1, y0}, {x1, y1}, {x0, y1},
		} {
			writeQuadVertex(staging[offset:], v[0], v[1], p.Color)
			offset += quadVertexStride
		}
	}
	return staging, staging[:offset], uint32(visible * quadVertices) //nolint:gosec // quad count fits uint32
}

// writeQuadVertex writes a single vertex into the buffer.
func writeQuadVertex(buf []byte, px, py float32, color [4]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(px))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(py))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(color[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(color[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(color[2]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(color[3]))
}

// makeUniform encodes the column-major projection matrix.
func makeUniform(m [16]float32) []byte {
	buf := make([]byte, uniformSize)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
