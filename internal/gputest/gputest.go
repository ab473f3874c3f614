// Package gputest provides noop HAL devices and render targets for tests.
package gputest

import (
	"sync"
	"testing"

	"github.com/gogpu/uipass/internal/headless"
	"github.com/gogpu/wgpu/hal"
)

// NewDevice creates a noop device and queue. Resources are released by
// t.Cleanup.
func NewDevice(t testing.TB) (hal.Device, hal.Queue) {
	t.Helper()
	g, err := headless.Open()
	if err != nil {
		t.Fatalf("open noop device: %v", err)
	}
	t.Cleanup(g.Close)
	return g.Device, g.Queue
}

// NewTargetView creates a BGRA8 render-attachment texture and returns a view
// of it. Resources are released by t.Cleanup.
func NewTargetView(t testing.TB, device hal.Device, width, height uint32) hal.TextureView {
	t.Helper()
	tex, view, err := headless.NewTarget(device, width, height)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
	})
	return view
}

// CountingDevice wraps a hal.Device and tracks buffer lifetimes.
type CountingDevice struct {
	hal.Device

	mu        sync.Mutex
	live      map[hal.Buffer]struct{}
	created   int
	destroyed int
}

// NewCountingDevice creates a noop device wrapped in a CountingDevice.
func NewCountingDevice(t testing.TB) (*CountingDevice, hal.Queue) {
	t.Helper()
	device, queue := NewDevice(t)
	return &CountingDevice{Device: device, live: make(map[hal.Buffer]struct{})}, queue
}

// CreateBuffer implements hal.Device.
func (d *CountingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	buf, err := d.Device.CreateBuffer(desc)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.live[buf] = struct{}{}
	d.created++
	d.mu.Unlock()
	return buf, nil
}

// DestroyBuffer implements hal.Device.
func (d *CountingDevice) DestroyBuffer(buf hal.Buffer) {
	d.mu.Lock()
	if _, ok := d.live[buf]; ok {
		delete(d.live, buf)
		d.destroyed++
	}
	d.mu.Unlock()
	d.Device.DestroyBuffer(buf)
}

// Buffers returns how many buffers were created and destroyed.
func (d *CountingDevice) Buffers() (created, destroyed int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created, d.destroyed
}

// Live reports whether buf was created and not yet destroyed.
func (d *CountingDevice) Live(buf hal.Buffer) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.live[buf]
	return ok
}
