// Package headless opens a noop HAL device for hosts without a window.
package headless

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// ErrNoAdapter is returned when the noop instance exposes no adapter.
var ErrNoAdapter = errors.New("headless: no adapter")

// GPU is an opened noop device and the textures created on it.
type GPU struct {
	Device hal.Device
	Queue  hal.Queue

	instance hal.Instance
	textures []hal.Texture
	views    []hal.TextureView
}

// Open creates a noop instance and opens its first adapter.
func Open() (*GPU, error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("headless: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("headless: open adapter: %w", err)
	}
	return &GPU{Device: openDev.Device, Queue: openDev.Queue, instance: instance}, nil
}

// NewTarget creates a BGRA8 render-attachment texture on g's device and
// returns a view of it. Both are released by Close.
func (g *GPU) NewTarget(width, height uint32) (hal.TextureView, error) {
	tex, view, err := NewTarget(g.Device, width, height)
	if err != nil {
		return nil, err
	}
	g.textures = append(g.textures, tex)
	g.views = append(g.views, view)
	return view, nil
}

// NewTarget creates a BGRA8 render-attachment texture and a view of it, as
// a window texture acquisition step would. The caller owns both.
func NewTarget(device hal.Device, width, height uint32) (hal.Texture, hal.TextureView, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: "headless_target",
		Size: hal.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("headless: create target texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "headless_target_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("headless: create target view: %w", err)
	}
	return tex, view, nil
}

// Close destroys the targets, the device and the instance.
func (g *GPU) Close() {
	for _, v := range g.views {
		g.Device.DestroyTextureView(v)
	}
	for _, t := range g.textures {
		g.Device.DestroyTexture(t)
	}
	g.views, g.textures = nil, nil
	g.Device.Destroy()
	g.instance.Destroy()
}
