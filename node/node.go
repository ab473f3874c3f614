// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package node provides the render graph node that draws the GUI into each
// view's target texture.
//
// The node runs once per view per frame, after the host has acquired the
// window texture. It presents only when the extracted Snapshot carries a
// redraw and the shared renderer is the accelerated variant; every other
// case is a silent skip counted in Stats.
package node

import (
	"errors"
	"log/slog"

	"github.com/gogpu/uipass/backend"
	"github.com/gogpu/uipass/extract"
	"github.com/gogpu/uipass/framegraph"
	"github.com/gogpu/uipass/internal/logging"
)

// PassName is the name the node is registered under in the render graph.
const PassName = "uipass"

// ErrNoDevice is returned by Run when a present is due but the render
// context has no device or queue.
var ErrNoDevice = errors.New("node: render device or queue missing")

var logger logging.Handle

// SetLogger sets the package logger. Called from uipass.SetLogger.
func SetLogger(l *slog.Logger) { logger.Set(l) }

// Node is the GUI render pass node.
//
// The render world must carry the *backend.Handle resource for presents to
// happen. The extract.Snapshot resource is replaced by the extractor each
// frame.
type Node struct {
	query *framegraph.QueryState[framegraph.ViewTarget]
	stats Stats
}

// New creates the node.
func New() *Node {
	return &Node{}
}

// Stats returns the node's counters.
func (n *Node) Stats() *Stats {
	return &n.stats
}

// Update refreshes the cached view-target query.
func (n *Node) Update(w *framegraph.World) {
	if n.query == nil {
		n.query = framegraph.NewQueryState[framegraph.ViewTarget](w)
		return
	}
	n.query.Update(w)
}

// Run presents the GUI into the current view's target.
//
// Present failures are logged and swallowed so one bad frame does not abort
// the graph. The only error returned is ErrNoDevice.
func (n *Node) Run(gc *framegraph.GraphContext, rc *framegraph.RenderContext, w *framegraph.World) error {
	if n.query == nil {
		n.Update(w)
	}

	target, ok := n.query.Get(w, gc.ViewEntity())
	if !ok || target.MainTextureView() == nil {
		n.stats.noTarget.Add(1)
		return nil
	}

	snap, ok := framegraph.Resource[extract.Snapshot](w)
	if !ok || !snap.Redraw {
		n.stats.noRedraw.Add(1)
		return nil
	}
	if !snap.HasViewport {
		n.stats.noViewport.Add(1)
		logger.Logger().Debug("uipass: redraw without viewport", "frame", snap.Frame)
		return nil
	}

	handle, ok := framegraph.Resource[*backend.Handle](w)
	if !ok || handle == nil {
		n.stats.notAccelerated.Add(1)
		return nil
	}

	var err error
	handle.With(func(r backend.Renderer, overlay *backend.Overlay) {
		acc, ok := r.(*backend.Accelerated)
		if !ok {
			n.stats.notAccelerated.Add(1)
			return
		}
		err = n.present(rc, target, snap, acc, overlay)
	})
	return err
}

func (n *Node) present(
	rc *framegraph.RenderContext,
	target framegraph.ViewTarget,
	snap extract.Snapshot,
	acc *backend.Accelerated,
	overlay *backend.Overlay,
) error {
	if rc == nil || rc.Device() == nil || rc.Queue() == nil {
		return ErrNoDevice
	}
	encoder, err := rc.CommandEncoder()
	if err != nil {
		n.stats.failed.Add(1)
		logger.Logger().Warn("uipass: command encoder unavailable", "frame", snap.Frame, "err", err)
		return nil
	}

	acc.WithPrimitives(func(p backend.Presenter, prims []backend.Primitive) {
		if r, ok := p.(backend.FrameReleaser); ok {
			rc.AfterSubmit(r.ReleaseFrame)
		}
		err = p.Present(
			rc.Device(),
			rc.Queue(),
			encoder,
			nil,
			target.MainTextureView(),
			prims,
			snap.Viewport,
			overlay.Lines(),
		)
	})
	if err != nil {
		n.stats.failed.Add(1)
		logger.Logger().Warn("uipass: present failed",
			"frame", snap.Frame, "viewport", snap.Viewport.String(), "err", err)
		return nil
	}
	n.stats.presents.Add(1)
	logger.Logger().Debug("uipass: presented", "frame", snap.Frame, "viewport", snap.Viewport.String())
	return nil
}

var _ framegraph.Node = (*Node)(nil)
