// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"fmt"
	"reflect"
	"slices"
)

// Entity identifies an entity within a single World.
type Entity uint32

// World is a minimal entity/resource store.
//
// Resources are singletons keyed by their Go type. Components are attached
// to entities and also keyed by type; an interface type may be used as a key
// by instantiating the generic helpers with it explicitly.
//
// Every structural change (spawn, despawn, first insertion of a component on
// an entity) bumps Generation, which lets cached queries refresh lazily.
//
// World is NOT safe for concurrent use. The application world and the render
// world are separate instances that only meet at the extraction barrier.
type World struct {
	resources  map[reflect.Type]any
	components map[reflect.Type]map[Entity]any
	alive      map[Entity]struct{}
	next       Entity
	generation uint64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		resources:  make(map[reflect.Type]any),
		components: make(map[reflect.Type]map[Entity]any),
		alive:      make(map[Entity]struct{}),
		next:       1,
	}
}

// Generation returns the structural generation counter.
func (w *World) Generation() uint64 {
	return w.generation
}

// Spawn creates a new entity with no components.
func (w *World) Spawn() Entity {
	e := w.next
	w.next++
	w.alive[e] = struct{}{}
	w.generation++
	return e
}

// Despawn removes the entity and all of its components.
// Despawning an unknown entity is a no-op.
func (w *World) Despawn(e Entity) {
	if _, ok := w.alive[e]; !ok {
		return
	}
	delete(w.alive, e)
	for _, store := range w.components {
		delete(store, e)
	}
	w.generation++
}

// Alive reports whether e exists in the world.
func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Entities returns all live entities in ascending order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.alive))
	for e := range w.alive {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// Clear removes all entities and resources. The generation keeps counting
// so caches built against the old contents are invalidated.
func (w *World) Clear() {
	clear(w.resources)
	clear(w.components)
	clear(w.alive)
	w.generation++
}

// InsertResource stores v as the world's resource of type T, replacing any
// previous value.
func InsertResource[T any](w *World, v T) {
	w.resources[reflect.TypeFor[T]()] = v
}

// Resource returns the world's resource of type T.
func Resource[T any](w *World) (T, bool) {
	v, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// MustResource is like Resource but panics when the resource is missing.
// Use only for resources the host guarantees to exist.
func MustResource[T any](w *World) T {
	v, ok := Resource[T](w)
	if !ok {
		panic(fmt.Sprintf("framegraph: missing resource %s", reflect.TypeFor[T]()))
	}
	return v
}

// RemoveResource deletes and returns the world's resource of type T.
func RemoveResource[T any](w *World) (T, bool) {
	v, ok := Resource[T](w)
	if ok {
		delete(w.resources, reflect.TypeFor[T]())
	}
	return v, ok
}

// Insert attaches component c of type T to entity e, replacing any previous
// component of the same type. Inserting on a dead entity panics.
func Insert[T any](w *World, e Entity, c T) {
	if !w.Alive(e) {
		panic(fmt.Sprintf("framegraph: insert %s on dead entity %d", reflect.TypeFor[T](), e))
	}
	t := reflect.TypeFor[T]()
	store, ok := w.components[t]
	if !ok {
		store = make(map[Entity]any)
		w.components[t] = store
	}
	if _, exists := store[e]; !exists {
		w.generation++
	}
	store[e] = c
}

// Remove detaches the component of type T from e.
func Remove[T any](w *World, e Entity) {
	store, ok := w.components[reflect.TypeFor[T]()]
	if !ok {
		return
	}
	if _, exists := store[e]; exists {
		delete(store, e)
		w.generation++
	}
}

// Get returns the component of type T attached to e.
func Get[T any](w *World, e Entity) (T, bool) {
	var zero T
	store, ok := w.components[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	c, ok := store[e]
	if !ok {
		return zero, false
	}
	return c.(T), true
}

// Has reports whether e carries a component of type T.
func Has[T any](w *World, e Entity) bool {
	_, ok := Get[T](w, e)
	return ok
}

// Each calls fn for every entity carrying a component of type T, in
// ascending entity order.
func Each[T any](w *World, fn func(Entity, T)) {
	store, ok := w.components[reflect.TypeFor[T]()]
	if !ok {
		return
	}
	ents := make([]Entity, 0, len(store))
	for e := range store {
		ents = append(ents, e)
	}
	slices.Sort(ents)
	for _, e := range ents {
		fn(e, store[e].(T))
	}
}
