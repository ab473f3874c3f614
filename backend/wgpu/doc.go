// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu implements backend.Presenter on the gogpu/wgpu HAL.
//
// The presenter draws GUI quads and overlay text with a single render
// pipeline. Geometry is expanded on the CPU, uploaded each frame, and
// recorded into the host's command encoder as one render pass over the
// view texture:
//
//	p := wgpu.New(wgpu.WithFormat(gputypes.TextureFormatBGRA8Unorm))
//	defer p.Destroy()
//
//	err := p.Present(device, queue, encoder, nil, view, prims, vp, overlay)
//
// The pipeline is created lazily on the first present and rebuilt when the
// device changes. The shader is compiled to SPIR-V with naga; when that
// fails the device receives the WGSL source.
//
// Per-frame buffers stay alive until the next Present or Destroy, so the
// host can submit the encoder after Present returns.
//
// Importing the package registers the presenter under backend.PresenterWGPU.
//
// # Thread Safety
//
// Presenter is safe for concurrent use. Presents are serialized.
package wgpu

import "github.com/gogpu/uipass/backend"

func init() {
	backend.Register(backend.PresenterWGPU, func() backend.Presenter {
		return New()
	})
}
