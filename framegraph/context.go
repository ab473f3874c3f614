// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Render context errors.
var (
	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("framegraph: nil DeviceProvider")

	// ErrNoHalAccess is returned when the provider does not expose HAL
	// device and queue handles.
	ErrNoHalAccess = errors.New("framegraph: provider does not expose hal.Device and hal.Queue")

	// ErrNoDevice is returned when an encoder is requested from a context
	// without a device.
	ErrNoDevice = errors.New("framegraph: no GPU device")
)

// halProvider is implemented by device providers that expose HAL handles.
// This matches the gogpu App provider: HalDevice returns hal.Device and
// HalQueue returns hal.Queue.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// RenderContext holds the GPU handles and the per-frame command encoder
// shared by every node in one graph run.
//
// The command encoder is created lazily on the first CommandEncoder call,
// so frames where no node records GPU work never create or submit one.
//
// RenderContext is NOT safe for concurrent use; the graph runs its nodes
// sequentially on the render goroutine.
type RenderContext struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	encoder     hal.CommandEncoder
	submitted   uint64
	afterSubmit []func()
}

// NewRenderContext creates a render context from a host device provider.
// The provider must also expose HalDevice() and HalQueue().
func NewRenderContext(provider gpucontext.DeviceProvider) (*RenderContext, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHalAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHalAccess, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNoHalAccess, hp.HalQueue())
	}
	return NewRenderContextHAL(device, queue, provider.SurfaceFormat()), nil
}

// NewRenderContextHAL creates a render context from raw HAL handles.
// An undefined format defaults to BGRA8Unorm.
func NewRenderContextHAL(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *RenderContext {
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return &RenderContext{
		device: device,
		queue:  queue,
		format: format,
	}
}

// Device returns the HAL device.
func (rc *RenderContext) Device() hal.Device { return rc.device }

// Queue returns the HAL queue.
func (rc *RenderContext) Queue() hal.Queue { return rc.queue }

// SurfaceFormat returns the host surface format.
func (rc *RenderContext) SurfaceFormat() gputypes.TextureFormat { return rc.format }

// HasEncoder reports whether a command encoder is recording for this frame.
func (rc *RenderContext) HasEncoder() bool { return rc.encoder != nil }

// Submitted returns how many command buffers Finish has submitted.
func (rc *RenderContext) Submitted() uint64 { return rc.submitted }

// CommandEncoder returns the frame's command encoder, creating it and
// beginning encoding on first use.
func (rc *RenderContext) CommandEncoder() (hal.CommandEncoder, error) {
	if rc.encoder != nil {
		return rc.encoder, nil
	}
	if rc.device == nil {
		return nil, ErrNoDevice
	}
	encoder, err := rc.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "framegraph_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("framegraph_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	rc.encoder = encoder
	return encoder, nil
}

// AfterSubmit registers fn to run once the frame's command buffer has been
// submitted and completed, or the encoder was discarded. Resources a node
// referenced from the encoder must stay alive until then. Hooks run in
// registration order, once.
func (rc *RenderContext) AfterSubmit(fn func()) {
	if fn != nil {
		rc.afterSubmit = append(rc.afterSubmit, fn)
	}
}

// Finish ends encoding and submits the frame's command buffer, waiting for
// the GPU so the surface can be presented afterwards. It is a no-op when no
// node requested an encoder this frame. AfterSubmit hooks run on every path
// once an encoder existed.
func (rc *RenderContext) Finish() error {
	if rc.encoder == nil {
		return nil
	}
	encoder := rc.encoder
	rc.encoder = nil
	defer rc.runAfterSubmit()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer rc.device.FreeCommandBuffer(cmdBuf)

	if _, err := rc.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := rc.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	rc.submitted++
	return nil
}

// Discard abandons the frame's encoder without submitting it.
func (rc *RenderContext) Discard() {
	if rc.encoder == nil {
		return
	}
	rc.encoder.DiscardEncoding()
	rc.encoder = nil
	rc.runAfterSubmit()
}

func (rc *RenderContext) runAfterSubmit() {
	hooks := rc.afterSubmit
	rc.afterSubmit = nil
	for _, fn := range hooks {
		fn()
	}
}
