// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// plainProvider implements gpucontext.DeviceProvider without HAL access.
type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device   { return nil }
func (plainProvider) Queue() gpucontext.Queue     { return nil }
func (plainProvider) Adapter() gpucontext.Adapter { return nil }
func (plainProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}
func (plainProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// halProviderStub also exposes HalDevice and HalQueue.
type halProviderStub struct {
	plainProvider
	device hal.Device
	queue  hal.Queue
}

func (p halProviderStub) HalDevice() any { return p.device }
func (p halProviderStub) HalQueue() any  { return p.queue }
func (halProviderStub) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}
