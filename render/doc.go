// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns registered asset definitions into pixel buffers.
//
// The Pipeline is the entry point: it walks the registry's dependency
// levels bottom-up, rasterizing shapes first, then the prefabs and maps
// composed from them. Assets within one level are independent and render
// concurrently on a worker pool; a barrier between levels guarantees
// children exist before their parents compose them.
//
// Rendering never fails an entire build over a bad reference. Missing
// stamps, brushes, colors, and child assets degrade to a magenta
// placeholder and a diagnostic, so one typo does not blank an asset pack.
//
// Post-processing lives here too: shader effects, integer scaling, and
// sprite-sheet packing are applied per target by RenderTarget.
package render
