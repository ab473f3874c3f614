// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/uipass/internal/gputest"
)

// recordingNode records its Update and Run calls into a shared log.
type recordingNode struct {
	name    string
	log     *[]string
	updates int
	err     error
}

func (n *recordingNode) Update(*World) { n.updates++ }

func (n *recordingNode) Run(gc *GraphContext, _ *RenderContext, _ *World) error {
	*n.log = append(*n.log, n.name+"@"+string(rune('0'+gc.ViewEntity())))
	return n.err
}

func TestGraphOrder(t *testing.T) {
	g := NewGraph()
	var log []string
	for _, name := range []string{"ui", "main", WindowAcquire} {
		if err := g.AddNode(name, &recordingNode{name: name, log: &log}); err != nil {
			t.Fatalf("AddNode(%q): %v", name, err)
		}
	}
	if err := g.AddEdge(WindowAcquire, "main"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge("main", "ui"); err != nil {
		t.Fatal(err)
	}

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	want := []string{WindowAcquire, "main", "ui"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("Order() = %v, want %v", order, want)
	}
}

func TestGraphErrors(t *testing.T) {
	g := NewGraph()
	n := NodeFunc(func(*GraphContext, *RenderContext, *World) error { return nil })

	if err := g.AddNode("a", n); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode("a", n); !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("duplicate AddNode error = %v, want ErrDuplicateNode", err)
	}
	if err := g.AddEdge("a", "missing"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("AddEdge to unknown node error = %v, want ErrUnknownNode", err)
	}

	_ = g.AddNode("b", n)
	_ = g.AddEdge("a", "b")
	_ = g.AddEdge("b", "a")
	if _, err := g.Order(); !errors.Is(err, ErrCycle) {
		t.Errorf("Order() with cycle error = %v, want ErrCycle", err)
	}
	if err := g.Run(NewWorld(), nil); !errors.Is(err, ErrCycle) {
		t.Errorf("Run() with cycle error = %v, want ErrCycle", err)
	}
}

func TestGraphRunPerView(t *testing.T) {
	w := NewWorld()
	v1 := w.Spawn()
	Insert(w, v1, ExtractedView{})
	w.Spawn() // not a view
	v2 := w.Spawn()
	Insert(w, v2, ExtractedView{})

	var log []string
	first := &recordingNode{name: "first", log: &log}
	second := &recordingNode{name: "second", log: &log}
	g := NewGraph()
	_ = g.AddNode("second", second)
	_ = g.AddNode("first", first)
	_ = g.AddEdge("first", "second")

	if err := g.Run(w, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if first.updates != 1 || second.updates != 1 {
		t.Errorf("updates = %d, %d; want 1 each per frame", first.updates, second.updates)
	}
	want := []string{"first@1", "second@1", "first@3", "second@3"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("run log = %v, want %v", log, want)
	}
}

func TestGraphRunWrapsNodeError(t *testing.T) {
	w := NewWorld()
	v := w.Spawn()
	Insert(w, v, ExtractedView{})

	boom := errors.New("boom")
	var log []string
	g := NewGraph()
	_ = g.AddNode("bad", &recordingNode{name: "bad", log: &log, err: boom})

	err := g.Run(w, nil)
	var nre *NodeRunError
	if !errors.As(err, &nre) {
		t.Fatalf("Run() error = %v, want *NodeRunError", err)
	}
	if nre.Node != "bad" || nre.View != v {
		t.Errorf("NodeRunError = %+v", nre)
	}
	if !errors.Is(err, boom) {
		t.Error("NodeRunError should unwrap to the node's error")
	}
}

func TestRenderContextLazyEncoder(t *testing.T) {
	device, queue := gputest.NewDevice(t)
	rc := NewRenderContextHAL(device, queue, gputypes.TextureFormatUndefined)

	if rc.SurfaceFormat() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("SurfaceFormat() = %v, want BGRA8Unorm default", rc.SurfaceFormat())
	}

	// Nothing requested: Finish is a no-op.
	if err := rc.Finish(); err != nil {
		t.Fatalf("Finish() without encoder error = %v", err)
	}
	if rc.Submitted() != 0 {
		t.Errorf("Submitted() = %d, want 0", rc.Submitted())
	}

	enc, err := rc.CommandEncoder()
	if err != nil {
		t.Fatalf("CommandEncoder() error = %v", err)
	}
	again, _ := rc.CommandEncoder()
	if enc != again {
		t.Error("CommandEncoder() should return the same encoder within a frame")
	}
	if !rc.HasEncoder() {
		t.Error("HasEncoder() = false after CommandEncoder()")
	}

	if err := rc.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if rc.HasEncoder() || rc.Submitted() != 1 {
		t.Errorf("after Finish: HasEncoder=%v Submitted=%d", rc.HasEncoder(), rc.Submitted())
	}
}

func TestRenderContextNoDevice(t *testing.T) {
	rc := NewRenderContextHAL(nil, nil, gputypes.TextureFormatRGBA8Unorm)
	if _, err := rc.CommandEncoder(); !errors.Is(err, ErrNoDevice) {
		t.Errorf("CommandEncoder() error = %v, want ErrNoDevice", err)
	}
}

func TestNewRenderContextProviders(t *testing.T) {
	if _, err := NewRenderContext(nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("NewRenderContext(nil) error = %v, want ErrNilProvider", err)
	}
	if _, err := NewRenderContext(plainProvider{}); !errors.Is(err, ErrNoHalAccess) {
		t.Errorf("NewRenderContext(plain) error = %v, want ErrNoHalAccess", err)
	}

	device, queue := gputest.NewDevice(t)
	rc, err := NewRenderContext(halProviderStub{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewRenderContext(hal) error = %v", err)
	}
	if rc.Device() != device || rc.Queue() != queue {
		t.Error("render context should carry the provider's HAL handles")
	}
	if rc.SurfaceFormat() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("SurfaceFormat() = %v, want provider format", rc.SurfaceFormat())
	}
}

func TestRenderContextAfterSubmit(t *testing.T) {
	device, queue := gputest.NewDevice(t)
	rc := NewRenderContextHAL(device, queue, gputypes.TextureFormatBGRA8Unorm)

	var log []string
	if _, err := rc.CommandEncoder(); err != nil {
		t.Fatal(err)
	}
	rc.AfterSubmit(func() { log = append(log, "a") })
	rc.AfterSubmit(nil)
	rc.AfterSubmit(func() { log = append(log, "b") })
	if len(log) != 0 {
		t.Fatal("hooks ran before Finish")
	}
	if err := rc.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if !reflect.DeepEqual(log, []string{"a", "b"}) {
		t.Errorf("hooks after Finish = %v, want [a b]", log)
	}
	if err := rc.Finish(); err != nil || len(log) != 2 {
		t.Errorf("second Finish ran hooks again: %v, err %v", log, err)
	}

	if _, err := rc.CommandEncoder(); err != nil {
		t.Fatal(err)
	}
	rc.AfterSubmit(func() { log = append(log, "discarded") })
	rc.Discard()
	if len(log) != 3 || log[2] != "discarded" {
		t.Errorf("hooks after Discard = %v", log)
	}
	if rc.Submitted() != 1 {
		t.Errorf("Submitted() = %d, want 1", rc.Submitted())
	}
}
