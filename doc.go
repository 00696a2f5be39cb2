// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package px compiles declarative pixel-art asset definitions into
// rasterized pixel buffers and packed sprite sheets.
//
// # Overview
//
// px is a pure Go asset-pipeline core. It consumes already-parsed definition
// documents (palettes, brushes, stamps, shaders, shapes, prefabs, maps,
// targets), binds them together through a dependency-aware registry, and
// renders them to RGBA pixel buffers. Text parsing, file discovery, the CLI
// and on-disk encoders are external collaborators that talk to this core
// through narrow value types (Document in, Result out).
//
// # Quick Start
//
//	import (
//		"github.com/pxforge/px"
//		"github.com/pxforge/px/registry"
//		"github.com/pxforge/px/render"
//	)
//
//	b := registry.NewBuilder()
//	b.AddPalette(palette)
//	b.AddStamp(stamp)
//	b.AddShape(shape)
//
//	reg, err := b.Build()
//	if err != nil {
//		// a reference cycle; err names the full path
//	}
//
//	pipe := render.NewPipeline(reg)
//	build, err := pipe.Run(context.Background())
//	if err != nil {
//		// canceled, or the registry could not be scheduled
//	}
//	sprite, ok := build.Result("shape-name")
//
// # Architecture
//
// The library is organized into:
//   - Public API: RGBA, Pixmap, the asset value types, Document, Diag
//   - registry: the immutable asset store, dependency graph, build order
//   - render: glyph resolution, shape rendering, compositing, sheet packing
//   - cache: content-hash render cache
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Determinism
//
// Rendering is CPU-only and deterministic: the same registry always produces
// byte-identical pixel buffers. Parallel rendering fans out over dependency
// levels but never changes the bytes written for any single asset.
package px

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
