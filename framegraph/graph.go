// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"errors"
	"fmt"
)

// Well-known node names for ordering edges.
const (
	// WindowAcquire is the host step that acquires the surface texture and
	// fills each view's ViewTarget.
	WindowAcquire = "window_acquire"
)

// Graph errors.
var (
	// ErrDuplicateNode is returned when a node name is registered twice.
	ErrDuplicateNode = errors.New("framegraph: duplicate node")

	// ErrUnknownNode is returned when an edge references an unregistered node.
	ErrUnknownNode = errors.New("framegraph: unknown node")

	// ErrCycle is returned when ordering edges form a cycle.
	ErrCycle = errors.New("framegraph: ordering cycle")
)

// Node is a unit of render work. The graph calls Update once per frame,
// before any Run, with exclusive world access so the node can refresh
// cached queries. Run is then called once per view with read access.
type Node interface {
	Update(w *World)
	Run(gc *GraphContext, rc *RenderContext, w *World) error
}

// NodeFunc adapts a function to a Node with no per-frame update.
type NodeFunc func(gc *GraphContext, rc *RenderContext, w *World) error

// Update implements Node.
func (NodeFunc) Update(*World) {}

// Run implements Node.
func (f NodeFunc) Run(gc *GraphContext, rc *RenderContext, w *World) error {
	return f(gc, rc, w)
}

// GraphContext describes the current dispatch.
type GraphContext struct {
	view Entity
	node string
}

// NewGraphContext creates a context for running a node against view.
// Hosts that drive nodes themselves use this; Graph.Run builds its own.
func NewGraphContext(view Entity, node string) *GraphContext {
	return &GraphContext{view: view, node: node}
}

// ViewEntity returns the view the node is being run for.
func (gc *GraphContext) ViewEntity() Entity { return gc.view }

// NodeName returns the running node's registered name.
func (gc *GraphContext) NodeName() string { return gc.node }

// NodeRunError reports a node failure for one view.
type NodeRunError struct {
	Node string
	View Entity
	Err  error
}

func (e *NodeRunError) Error() string {
	return fmt.Sprintf("framegraph: node %q failed for view %d: %v", e.Node, e.View, e.Err)
}

func (e *NodeRunError) Unwrap() error { return e.Err }

// Graph is an ordered set of named nodes executed once per view per frame.
type Graph struct {
	nodes map[string]Node
	names []string
	edges map[string][]string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]Node),
		edges: make(map[string][]string),
	}
}

// AddNode registers n under name.
func (g *Graph) AddNode(name string, n Node) error {
	if _, ok := g.nodes[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, name)
	}
	g.nodes[name] = n
	g.names = append(g.names, name)
	return nil
}

// AddEdge orders before ahead of after.
func (g *Graph) AddEdge(before, after string) error {
	for _, name := range []string{before, after} {
		if _, ok := g.nodes[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownNode, name)
		}
	}
	g.edges[before] = append(g.edges[before], after)
	return nil
}

// Node returns the node registered under name.
func (g *Graph) Node(name string) (Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Order returns node names in execution order. Nodes without an ordering
// constraint between them keep registration order.
func (g *Graph) Order() ([]string, error) {
	indegree := make(map[string]int, len(g.names))
	for _, name := range g.names {
		indegree[name] += 0
		for _, to := range g.edges[name] {
			indegree[to]++
		}
	}

	order := make([]string, 0, len(g.names))
	done := make(map[string]bool, len(g.names))
	for len(order) < len(g.names) {
		progressed := false
		for _, name := range g.names {
			if done[name] || indegree[name] != 0 {
				continue
			}
			done[name] = true
			order = append(order, name)
			for _, to := range g.edges[name] {
				indegree[to]--
			}
			progressed = true
			break
		}
		if !progressed {
			return nil, ErrCycle
		}
	}
	return order, nil
}

// Views returns the render world's view entities in ascending order.
func Views(w *World) []Entity {
	var views []Entity
	Each(w, func(e Entity, _ ExtractedView) {
		views = append(views, e)
	})
	return views
}

// Run executes one frame: every node's Update once, then every node once
// per view in graph order. The first failure stops the frame and is
// returned as a *NodeRunError.
func (g *Graph) Run(w *World, rc *RenderContext) error {
	order, err := g.Order()
	if err != nil {
		return err
	}
	for _, name := range order {
		g.nodes[name].Update(w)
	}
	for _, view := range Views(w) {
		for _, name := range order {
			gc := &GraphContext{view: view, node: name}
			if err := g.nodes[name].Run(gc, rc, w); err != nil {
				return &NodeRunError{Node: name, View: view, Err: err}
			}
		}
	}
	return nil
}
