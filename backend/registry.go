// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"sort"
	"sync"
)

// PresenterWGPU is the name of the gogpu/wgpu HAL presenter.
const PresenterWGPU = "wgpu"

// PresenterFactory creates a new presenter instance.
type PresenterFactory func() Presenter

// registry holds registered presenters.
var (
	registryMu sync.RWMutex
	presenters = make(map[string]PresenterFactory)
)

// Register registers a presenter factory with the given name.
// This is typically called from init() functions in presenter packages.
// If a presenter with the same name is already registered, it is replaced.
func Register(name string, factory PresenterFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	presenters[name] = factory
}

// Unregister removes a presenter from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(presenters, name)
}

// Available returns the registered presenter names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(presenters))
	for name := range presenters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a presenter with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := presenters[name]
	return ok
}

// NewPresenter returns a new presenter instance by name.
func NewPresenter(name string) (Presenter, error) {
	registryMu.RLock()
	factory, ok := presenters[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPresenterNotRegistered, name)
	}
	p := factory()
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrNilPresenter, name)
	}
	return p, nil
}

// DefaultPresenter returns the wgpu presenter when registered, otherwise
// the first registered presenter by name.
func DefaultPresenter() (Presenter, error) {
	if IsRegistered(PresenterWGPU) {
		return NewPresenter(PresenterWGPU)
	}
	names := Available()
	if len(names) == 0 {
		return nil, ErrPresenterNotRegistered
	}
	return NewPresenter(names[0])
}
