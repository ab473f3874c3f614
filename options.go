// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uipass

import (
	"log/slog"

	"github.com/gogpu/uipass/backend"
	"github.com/gogpu/uipass/viewport"
)

// Option configures a Plugin during creation.
//
// Example:
//
//	// Default: wgpu presenter, window scale factor, no overlay
//	p, err := uipass.New()
//
//	// Fixed scale factor with a debug overlay
//	p, err := uipass.New(uipass.WithScaleFactor(2), uipass.WithOverlay("debug"))
type Option func(*pluginOptions)

// pluginOptions holds optional configuration for Plugin creation.
type pluginOptions struct {
	settings  viewport.Settings
	overlay   []string
	logger    *slog.Logger
	presenter backend.Presenter
	renderer  backend.Renderer
}

// WithScaleFactor overrides the window scale factor for GUI layout.
func WithScaleFactor(f float64) Option {
	return func(o *pluginOptions) {
		o.settings = viewport.WithScaleFactor(f)
	}
}

// WithSettings sets the viewport settings, typically loaded with
// viewport.LoadSettings.
func WithSettings(s viewport.Settings) Option {
	return func(o *pluginOptions) {
		o.settings = s
	}
}

// WithOverlay enables the debug overlay with the given lines.
func WithOverlay(lines ...string) Option {
	return func(o *pluginOptions) {
		o.overlay = append([]string{}, lines...)
	}
}

// WithLogger installs l as the package logger when the plugin is created.
// See SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *pluginOptions) {
		o.logger = l
	}
}

// WithPresenter sets the presenter of the accelerated renderer.
// Without it the default registered presenter is used.
func WithPresenter(p backend.Presenter) Option {
	return func(o *pluginOptions) {
		o.presenter = p
	}
}

// WithRenderer sets the renderer directly, for example a backend.Software
// renderer for headless hosts. It takes precedence over WithPresenter.
func WithRenderer(r backend.Renderer) Option {
	return func(o *pluginOptions) {
		o.renderer = r
	}
}
