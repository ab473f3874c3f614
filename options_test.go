// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uipass

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/uipass/backend"
	"github.com/gogpu/uipass/backend/wgpu"
	"github.com/gogpu/uipass/extract"
	"github.com/gogpu/uipass/framegraph"
	"github.com/gogpu/uipass/internal/gputest"
	"github.com/gogpu/uipass/node"
	"github.com/gogpu/uipass/viewport"
	"github.com/gogpu/wgpu/hal"
)

// fakePresenter records the viewport and overlay of each Present call.
type fakePresenter struct {
	viewports []viewport.Viewport
	overlays  [][]string
	prims     []int
	destroyed bool
}

func (p *fakePresenter) Present(_ hal.Device, _ hal.Queue, _ hal.CommandEncoder,
	_ *gputypes.Color, _ hal.TextureView, prims []backend.Primitive,
	vp viewport.Viewport, overlay []string,
) error {
	p.viewports = append(p.viewports, vp)
	p.overlays = append(p.overlays, overlay)
	p.prims = append(p.prims, len(prims))
	return nil
}

func (p *fakePresenter) Destroy() { p.destroyed = true }

func TestNewDefaultPresenter(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer p.Close()

	p.Handle().With(func(r backend.Renderer, o *backend.Overlay) {
		acc, ok := r.(*backend.Accelerated)
		if !ok {
			t.Fatalf("renderer = %T, want *backend.Accelerated", r)
		}
		if _, ok := acc.Presenter().(*wgpu.Presenter); !ok {
			t.Errorf("presenter = %T, want *wgpu.Presenter", acc.Presenter())
		}
		if o.Lines() != nil {
			t.Error("overlay should be disabled by default")
		}
	})
}

func TestNewOptions(t *testing.T) {
	fp := &fakePresenter{}
	p, err := New(WithPresenter(fp), WithOverlay("a", "b"), WithScaleFactor(1.25))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.settings.ScaleFactor == nil || *p.settings.ScaleFactor != 1.25 {
		t.Errorf("settings = %+v, want scale override 1.25", p.settings)
	}
	p.Handle().With(func(r backend.Renderer, o *backend.Overlay) {
		if acc := r.(*backend.Accelerated); acc.Presenter() != fp {
			t.Error("WithPresenter was not used")
		}
		if got := o.Lines(); !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Errorf("overlay lines = %v", got)
		}
	})

	p.Close()
	if !fp.destroyed {
		t.Error("Close should destroy the presenter")
	}
}

func TestNewWithRenderer(t *testing.T) {
	sw := backend.NewSoftware()
	p, err := New(WithRenderer(sw), WithPresenter(&fakePresenter{}))
	if err != nil {
		t.Fatal(err)
	}
	p.Handle().With(func(r backend.Renderer, _ *backend.Overlay) {
		if r != sw {
			t.Errorf("renderer = %T, want the software renderer", r)
		}
	})
}

func TestNewRejectsInvalidScale(t *testing.T) {
	if _, err := New(WithScaleFactor(0)); !errors.Is(err, viewport.ErrInvalidScaleFactor) {
		t.Errorf("New(scale 0) error = %v, want ErrInvalidScaleFactor", err)
	}
}

func TestBuild(t *testing.T) {
	p, err := New(WithPresenter(&fakePresenter{}))
	if err != nil {
		t.Fatal(err)
	}
	app, render, g := framegraph.NewWorld(), framegraph.NewWorld(), framegraph.NewGraph()
	acquire := framegraph.NodeFunc(func(*framegraph.GraphContext, *framegraph.RenderContext, *framegraph.World) error {
		return nil
	})
	if err := g.AddNode(framegraph.WindowAcquire, acquire); err != nil {
		t.Fatal(err)
	}

	if _, err := p.Update(); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("Update() before Build error = %v, want ErrNotBuilt", err)
	}
	if err := p.Build(app, render, g); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := p.Build(app, render, g); !errors.Is(err, ErrAlreadyBuilt) {
		t.Errorf("second Build() error = %v, want ErrAlreadyBuilt", err)
	}

	if f, ok := framegraph.Resource[*extract.RedrawFlag](app); !ok || f != p.RedrawFlag() {
		t.Error("redraw flag should be an application world resource")
	}
	if h, ok := framegraph.Resource[*backend.Handle](render); !ok || h != p.Handle() {
		t.Error("renderer handle should be a render world resource")
	}
	order, err := g.Order()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{framegraph.WindowAcquire, node.PassName}; !reflect.DeepEqual(order, want) {
		t.Errorf("graph order = %v, want %v", order, want)
	}
}

// newTestApp builds an app with one 320x240 view on a noop device.
func newTestApp(t *testing.T, opts ...Option) (*App, *Plugin, *framegraph.RenderContext) {
	t.Helper()
	p, err := New(opts...)
	if err != nil {
		t.Fatal(err)
	}
	app, err := NewApp(p, viewport.StaticWindow{Width: 320, Height: 240, Scale: 1})
	if err != nil {
		t.Fatal(err)
	}
	device, queue := gputest.NewDevice(t)
	app.AttachView(framegraph.ViewTarget{
		View:   gputest.NewTargetView(t, device, 320, 240),
		Format: gputypes.TextureFormatBGRA8Unorm,
		Width:  320,
		Height: 240,
	})
	return app, p, framegraph.NewRenderContextHAL(device, queue, gputypes.TextureFormatBGRA8Unorm)
}

func TestAppFrames(t *testing.T) {
	fp := &fakePresenter{}
	app, p, rc := newTestApp(t, WithPresenter(fp), WithScaleFactor(2), WithOverlay("hud"))

	p.Record(func(b *backend.Batch) {
		b.FillRect(backend.Rect{W: 50, H: 20}, backend.Opaque(1, 1, 1))
	})
	if err := app.Frame(rc); err != nil {
		t.Fatalf("Frame() #1 error = %v", err)
	}
	if err := app.Frame(rc); err != nil {
		t.Fatalf("Frame() #2 error = %v", err)
	}

	if len(fp.viewports) != 1 {
		t.Fatalf("presents = %d, want 1 for a single recorded frame", len(fp.viewports))
	}
	if want := viewport.WithPhysicalSize(320, 240, 2); fp.viewports[0] != want {
		t.Errorf("viewport = %v, want %v", fp.viewports[0], want)
	}
	if fp.prims[0] != 1 || !reflect.DeepEqual(fp.overlays[0], []string{"hud"}) {
		t.Errorf("present got %d prims, overlay %v", fp.prims[0], fp.overlays[0])
	}
	if rc.Submitted() != 1 {
		t.Errorf("Submitted() = %d, want 1 (idle frames submit nothing)", rc.Submitted())
	}
	if s := p.Stats(); s.Presents != 1 || s.SkippedNoRedraw != 1 {
		t.Errorf("stats = %v", s)
	}
}

func TestAppResize(t *testing.T) {
	fp := &fakePresenter{}
	app, p, rc := newTestApp(t, WithPresenter(fp))

	p.Record(func(*backend.Batch) {})
	if err := app.Frame(rc); err != nil {
		t.Fatal(err)
	}
	app.SetWindow(viewport.StaticWindow{Width: 640, Height: 480, Scale: 1.5})
	p.SetOverlay()
	p.Record(func(*backend.Batch) {})
	if err := app.Frame(rc); err != nil {
		t.Fatal(err)
	}

	want := []viewport.Viewport{
		viewport.WithPhysicalSize(320, 240, 1),
		viewport.WithPhysicalSize(640, 480, 1.5),
	}
	if !reflect.DeepEqual(fp.viewports, want) {
		t.Errorf("viewports = %v, want %v", fp.viewports, want)
	}
}

func TestAppSoftwareRendererSkipsPass(t *testing.T) {
	app, p, rc := newTestApp(t, WithRenderer(backend.NewSoftware()))
	p.Record(func(b *backend.Batch) {
		b.FillRect(backend.Rect{W: 1, H: 1}, backend.Opaque(1, 0, 0))
	})
	if err := app.Frame(rc); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if s := p.Stats(); s.SkippedNotAccelerated != 1 || s.Presents != 0 {
		t.Errorf("stats = %v", s)
	}
	if rc.Submitted() != 0 {
		t.Error("no commands should be submitted for the software renderer")
	}
}

func TestAppRenderDiscardsOnNodeError(t *testing.T) {
	fp := &fakePresenter{}
	app, p, _ := newTestApp(t, WithPresenter(fp))
	rc := framegraph.NewRenderContextHAL(nil, nil, gputypes.TextureFormatBGRA8Unorm)

	p.Record(func(*backend.Batch) {})
	err := app.Frame(rc)
	if !errors.Is(err, node.ErrNoDevice) {
		t.Fatalf("Frame() error = %v, want node.ErrNoDevice", err)
	}
	if rc.HasEncoder() {
		t.Error("encoder should be discarded after a failed frame")
	}
}
