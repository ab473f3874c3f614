// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package uipass integrates an immediate-mode GUI into a two-world frame
// graph renderer.
//
// # Overview
//
// The host runs two worlds. The application world holds the window and GUI
// state; the render world holds per-frame copies and GPU targets. Each frame:
//
//  1. Update: the viewport resolver publishes the Viewport resource from the
//     primary window and the optional scale factor override.
//  2. Extract: the viewport is copied into the render world and the redraw
//     flag is consumed into a Snapshot.
//  3. Render: the graph runs. The uipass node, ordered after window
//     texture acquisition, presents the GUI into each view's target when a
//     redraw was requested.
//
// # Quick Start
//
//	p, err := uipass.New(uipass.WithScaleFactor(1.5))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	app, err := uipass.NewApp(p, viewport.StaticWindow{Width: 1280, Height: 720, Scale: 1})
//	if err != nil {
//		log.Fatal(err)
//	}
//	app.AttachView(framegraph.ViewTarget{View: view, Format: format})
//
//	p.Record(func(b *backend.Batch) {
//		b.FillRect(backend.Rect{X: 8, Y: 8, W: 200, H: 32}, backend.Opaque(0.1, 0.1, 0.1))
//	})
//	if err := app.Frame(rc); err != nil {
//		log.Print(err)
//	}
//
// # Logging
//
// uipass is silent by default. Use SetLogger or WithLogger to route its
// diagnostics to a slog.Logger.
package uipass

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
