// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/pxforge/px"

// Result is one rendered asset.
type Result struct {
	// Name is the source asset's name.
	Name string

	// Tags are carried over from the source asset.
	Tags []string

	// Pixmap is the rendered buffer.
	Pixmap *px.Pixmap

	// Meta is instance metadata, present for maps only.
	Meta *px.MapMeta
}

// Size returns the buffer dimensions.
func (r *Result) Size() (w, h int) {
	if r.Pixmap == nil {
		return 0, 0
	}
	return r.Pixmap.Width(), r.Pixmap.Height()
}
