// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uipass

import (
	"fmt"

	"github.com/gogpu/uipass/extract"
	"github.com/gogpu/uipass/framegraph"
	"github.com/gogpu/uipass/viewport"
)

// App is a minimal host that drives one plugin through the frame phases.
type App struct {
	plugin *Plugin

	// World is the application world; RenderWorld is the render world.
	World       *framegraph.World
	RenderWorld *framegraph.World
	Graph       *framegraph.Graph

	window framegraph.Entity
}

// NewApp creates both worlds and a graph, spawns win as the primary window
// and builds p into them.
func NewApp(p *Plugin, win viewport.Window) (*App, error) {
	a := &App{
		plugin:      p,
		World:       framegraph.NewWorld(),
		RenderWorld: framegraph.NewWorld(),
		Graph:       framegraph.NewGraph(),
	}
	a.window = a.World.Spawn()
	framegraph.Insert(a.World, a.window, win)

	if err := p.Build(a.World, a.RenderWorld, a.Graph); err != nil {
		return nil, err
	}
	return a, nil
}

// SetWindow replaces the primary window state, for example after a resize.
func (a *App) SetWindow(win viewport.Window) {
	framegraph.Insert(a.World, a.window, win)
}

// AttachView spawns a render-world view entity drawing into target.
func (a *App) AttachView(target framegraph.ViewTarget) framegraph.Entity {
	e := a.RenderWorld.Spawn()
	framegraph.Insert(a.RenderWorld, e, framegraph.ExtractedView{})
	framegraph.Insert(a.RenderWorld, e, target)
	return e
}

// Update runs the application-world systems.
func (a *App) Update() viewport.Viewport {
	vp, _ := a.plugin.Update()
	return vp
}

// Extract crosses the extraction barrier.
func (a *App) Extract() extract.Snapshot {
	snap, _ := a.plugin.Extract()
	return snap
}

// Render runs the graph and submits the frame's commands. On a node
// failure the frame's encoder is discarded.
func (a *App) Render(rc *framegraph.RenderContext) error {
	if err := a.Graph.Run(a.RenderWorld, rc); err != nil {
		rc.Discard()
		return err
	}
	if err := rc.Finish(); err != nil {
		return fmt.Errorf("uipass: submit frame: %w", err)
	}
	return nil
}

// Frame runs Update, Extract and Render in order.
func (a *App) Frame(rc *framegraph.RenderContext) error {
	a.Update()
	a.Extract()
	return a.Render(rc)
}
