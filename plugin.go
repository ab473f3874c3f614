// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uipass

import (
	"errors"
	"fmt"

	"github.com/gogpu/uipass/backend"
	"github.com/gogpu/uipass/extract"
	"github.com/gogpu/uipass/framegraph"
	"github.com/gogpu/uipass/node"
	"github.com/gogpu/uipass/viewport"
)

// Plugin errors.
var (
	// ErrAlreadyBuilt is returned when Build is called twice.
	ErrAlreadyBuilt = errors.New("uipass: plugin already built")

	// ErrNotBuilt is returned when a frame is driven before Build.
	ErrNotBuilt = errors.New("uipass: plugin not built")
)

// Plugin wires the GUI pass into a host: it owns the redraw flag, the
// shared renderer handle, the extractor, the viewport resolver and the
// render graph node.
type Plugin struct {
	flag      *extract.RedrawFlag
	handle    *backend.Handle
	extractor extract.Extractor
	resolver  viewport.Resolver
	node      *node.Node
	settings  viewport.Settings

	app, render *framegraph.World
}

// New creates a plugin.
func New(opts ...Option) (*Plugin, error) {
	var o pluginOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.settings.Validate(); err != nil {
		return nil, err
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}

	r := o.renderer
	if r == nil {
		p := o.presenter
		if p == nil {
			var err error
			if p, err = backend.DefaultPresenter(); err != nil {
				return nil, fmt.Errorf("uipass: %w", err)
			}
		}
		acc, err := backend.NewAccelerated(p)
		if err != nil {
			return nil, fmt.Errorf("uipass: %w", err)
		}
		r = acc
	}

	h := backend.NewHandle(r)
	if len(o.overlay) > 0 {
		h.With(func(_ backend.Renderer, ov *backend.Overlay) {
			ov.Enabled = true
			ov.SetText(o.overlay...)
		})
	}

	return &Plugin{
		flag:     extract.NewRedrawFlag(),
		handle:   h,
		node:     node.New(),
		settings: o.settings,
	}, nil
}

// Build inserts the plugin's resources into both worlds and registers the
// render node. When the graph has a framegraph.WindowAcquire node, the GUI
// pass is ordered after it.
func (p *Plugin) Build(app, render *framegraph.World, graph *framegraph.Graph) error {
	if p.app != nil {
		return ErrAlreadyBuilt
	}
	framegraph.InsertResource(app, p.flag)
	framegraph.InsertResource(app, p.settings)
	framegraph.InsertResource(render, p.handle)

	if err := graph.AddNode(node.PassName, p.node); err != nil {
		return fmt.Errorf("uipass: %w", err)
	}
	if _, ok := graph.Node(framegraph.WindowAcquire); ok {
		if err := graph.AddEdge(framegraph.WindowAcquire, node.PassName); err != nil {
			return fmt.Errorf("uipass: %w", err)
		}
	}

	p.app, p.render = app, render
	Logger().Info("uipass: plugin built", "scale_override", p.settings.ScaleFactor != nil)
	return nil
}

// RedrawFlag returns the flag the GUI sets when its output changed.
func (p *Plugin) RedrawFlag() *extract.RedrawFlag { return p.flag }

// Handle returns the shared renderer handle.
func (p *Plugin) Handle() *backend.Handle { return p.handle }

// Node returns the render graph node.
func (p *Plugin) Node() *node.Node { return p.node }

// Stats returns the node's counters.
func (p *Plugin) Stats() node.StatsSnapshot { return p.node.Stats().Load() }

// Record records a new GUI frame and requests a redraw.
func (p *Plugin) Record(fn func(*backend.Batch)) {
	backend.Record(p.handle, p.flag, fn)
}

// SetOverlay replaces the overlay text. No lines disables the overlay.
func (p *Plugin) SetOverlay(lines ...string) {
	p.handle.With(func(_ backend.Renderer, o *backend.Overlay) {
		o.Enabled = len(lines) > 0
		o.SetText(lines...)
	})
}

// Update runs the viewport resolver on the application world.
func (p *Plugin) Update() (viewport.Viewport, error) {
	if p.app == nil {
		return viewport.Viewport{}, ErrNotBuilt
	}
	return p.resolver.Run(p.app), nil
}

// Extract copies GUI state into the render world.
func (p *Plugin) Extract() (extract.Snapshot, error) {
	if p.app == nil {
		return extract.Snapshot{}, ErrNotBuilt
	}
	return p.extractor.Extract(p.app, p.render), nil
}

// Close releases the renderer's GPU resources.
func (p *Plugin) Close() {
	p.handle.With(func(r backend.Renderer, _ *backend.Overlay) {
		if acc, ok := r.(*backend.Accelerated); ok {
			acc.Destroy()
		}
	})
}
