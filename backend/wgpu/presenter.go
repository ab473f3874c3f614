// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/uipass/backend"
	"github.com/gogpu/uipass/internal/shader"
	"github.com/gogpu/uipass/viewport"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/quad.wgsl
var quadShaderSource string

// Present errors.
var (
	// ErrNilDevice is returned when Present is called without a device or queue.
	ErrNilDevice = errors.New("wgpu: nil device or queue")

	// ErrNilEncoder is returned when Present is called without an encoder.
	ErrNilEncoder = errors.New("wgpu: nil command encoder")

	// ErrNilView is returned when Present is called without a target view.
	ErrNilView = errors.New("wgpu: nil target view")
)

// Presenter renders GUI primitives with a HAL render pipeline.
type Presenter struct {
	mu sync.Mutex

	format       gputypes.TextureFormat
	overlayColor [4]float32

	// device owns the pipeline objects below.
	device hal.Device

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	// pending holds the buffers referenced by passes recorded into
	// pendingEnc. They stay alive until that encoder is submitted
	// (ReleaseFrame) or a present arrives on a different encoder.
	pending    []*frameResources
	pendingEnc hal.CommandEncoder
	staging    []byte

	frames uint64
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithFormat sets the color target format of the pipeline. It must match
// the format of the views passed to Present.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(p *Presenter) {
		if f != gputypes.TextureFormatUndefined {
			p.format = f
		}
	}
}

// WithOverlayColor sets the premultiplied overlay text color.
func WithOverlayColor(c [4]float32) Option {
	return func(p *Presenter) {
		p.overlayColor = c
	}
}

// New creates a presenter. GPU objects are created on the first Present.
func New(opts ...Option) *Presenter {
	p := &Presenter{
		format:       gputypes.TextureFormatBGRA8Unorm,
		overlayColor: backend.OverlayColor,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Format returns the color target format.
func (p *Presenter) Format() gputypes.TextureFormat {
	return p.format
}

// Frames returns the number of render passes encoded.
func (p *Presenter) Frames() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

// Present implements backend.Presenter.
func (p *Presenter) Present(
	device hal.Device,
	queue hal.Queue,
	encoder hal.CommandEncoder,
	clearColor *gputypes.Color,
	view hal.TextureView,
	prims []backend.Primitive,
	vp viewport.Viewport,
	overlay []string,
) error {
	switch {
	case device == nil || queue == nil:
		return ErrNilDevice
	case encoder == nil:
		return ErrNilEncoder
	case view == nil:
		return ErrNilView
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensurePipeline(device); err != nil {
		return err
	}
	if encoder != p.pendingEnc {
		p.releaseFrame()
	}

	quads := prims
	if len(overlay) > 0 {
		quads = append(append([]backend.Primitive(nil), prims...), backend.TextQuads(overlay, p.overlayColor)...)
	}
	var vertexData []byte
	var vertCount uint32
	p.staging, vertexData, vertCount = buildQuadVertices(quads, p.staging)

	if vertCount == 0 && clearColor == nil {
		logger.Logger().Debug("wgpu: nothing to present", "viewport", vp.String())
		return nil
	}

	var res *frameResources
	if vertCount > 0 {
		var err error
		res, err = p.buildFrame(queue, vertexData, vertCount, vp)
		if err != nil {
			return err
		}
		p.pending = append(p.pending, res)
		p.pendingEnc = encoder
	}

	p.encodePass(encoder, view, clearColor, res)
	p.frames++
	return nil
}

// encodePass records one render pass over view.
func (p *Presenter) encodePass(encoder hal.CommandEncoder, view hal.TextureView, clearColor *gputypes.Color, res *frameResources) {
	attachment := hal.RenderPassColorAttachment{
		View:    view,
		LoadOp:  gputypes.LoadOpLoad,
		StoreOp: gputypes.StoreOpStore,
	}
	if clearColor != nil {
		attachment.LoadOp = gputypes.LoadOpClear
		attachment.ClearValue = *clearColor
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "uipass_render_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{attachment},
	})
	if res != nil {
		rp.SetPipeline(p.pipeline)
		rp.SetBindGroup(0, res.bindGroup, nil)
		rp.SetVertexBuffer(0, res.vertBuf, 0)
		rp.Draw(res.vertCount, 1, 0, 0)
	}
	rp.End()
}

// ensurePipeline creates the shader, layouts and render pipeline for
// device, rebuilding them if the device changed.
func (p *Presenter) ensurePipeline(device hal.Device) error {
	if p.pipeline != nil && p.device == device {
		return nil
	}
	if p.device != nil && p.device != device {
		logger.Logger().Info("wgpu: device changed, rebuilding pipeline")
		p.releaseFrame()
		p.destroyPipeline()
	}
	p.device = device
	if err := p.createPipeline(); err != nil {
		p.destroyPipeline()
		p.device = nil
		return err
	}
	return nil
}

// createPipeline compiles the quad shader and creates the render pipeline
// with premultiplied alpha blending.
func (p *Presenter) createPipeline() error { //nolint:funlen // GPU pipeline descriptors are a single cohesive unit
	mod, err := shader.NewModule(p.device, "uipass_quad_shader", quadShaderSource)
	if err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}
	if mod.CompileErr != nil {
		logger.Logger().Warn("wgpu: naga compile failed, using WGSL source", "err", mod.CompileErr)
	}
	p.shader = mod.ShaderModule

	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "uipass_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "uipass_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "uipass_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline: %w", err)
	}
	p.pipeline = pipeline

	logger.Logger().Debug("wgpu: pipeline created", "format", p.format, "spirv", mod.SPIRV)
	return nil
}

// buildFrame uploads the vertex and uniform buffers for one frame.
func (p *Presenter) buildFrame(queue hal.Queue, vertexData []byte, vertCount uint32, vp viewport.Viewport) (*frameResources, error) {
	vertBuf, err := p.createAndUploadBuffer(queue, "uipass_verts", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}

	uniformBuf, err := p.createAndUploadBuffer(queue, "uipass_uniform", makeUniform(vp.Projection()),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		p.device.DestroyBuffer(vertBuf)
		return nil, err
	}

	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "uipass_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		p.device.DestroyBuffer(uniformBuf)
		p.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("wgpu: create bind group: %w", err)
	}

	return &frameResources{
		vertBuf:    vertBuf,
		uniformBuf: uniformBuf,
		bindGroup:  bindGroup,
		vertCount:  vertCount,
	}, nil
}

func (p *Presenter) createAndUploadBuffer(queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	if err := queue.WriteBuffer(buf, 0, data); err != nil {
		p.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("wgpu: upload %s: %w", label, err)
	}
	return buf, nil
}

// ReleaseFrame destroys the buffers of every pass recorded since the last
// release. Call it once the encoder passed to Present has been submitted and
// completed, or discarded. It implements backend.FrameReleaser.
func (p *Presenter) ReleaseFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseFrame()
}

// Pending returns how many frames' buffers are awaiting release.
func (p *Presenter) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *Presenter) releaseFrame() {
	if p.device != nil {
		for _, res := range p.pending {
			res.destroy(p.device)
		}
	}
	p.pending = nil
	p.pendingEnc = nil
}

// Destroy releases all GPU resources held by the presenter. Safe to call
// multiple times. The presenter may be used again afterwards.
func (p *Presenter) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseFrame()
	p.destroyPipeline()
	p.device = nil
}

// destroyPipeline releases all pipeline resources in reverse creation order.
func (p *Presenter) destroyPipeline() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// frameResources holds per-frame GPU resources.
type frameResources struct {
	vertBuf    hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	vertCount  uint32
}

func (r *frameResources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
	}
}

var (
	_ backend.Presenter     = (*Presenter)(nil)
	_ backend.FrameReleaser = (*Presenter)(nil)
)
