// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

import "strings"

// Document is the structured record an external parser produces for one
// definition: a string-keyed header, the raw body lines, and an optional
// symbol legend. The core is agnostic to the textual syntax that produced
// it; this type is the whole input contract.
type Document struct {
	// Header holds the key/value front matter ("name", "glyph", ...).
	Header map[string]string

	// Body holds the raw body lines (a grid, or settings).
	Body []string

	// Legend holds raw symbol bindings, when the document declares any.
	Legend map[rune]string

	// Source is the document's origin ("sprites/wall.shape.md:12"),
	// carried into diagnostics when present.
	Source string
}

// Name returns the document's declared name, or "".
func (d *Document) Name() string {
	return strings.TrimSpace(d.Header["name"])
}

// HeaderOr returns a header value or the given default.
func (d *Document) HeaderOr(key, def string) string {
	if v, ok := d.Header[key]; ok {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return def
}

// Tags splits the "tags" header on whitespace, stripping '#' prefixes.
func (d *Document) Tags() []string {
	var tags []string
	for _, f := range strings.Fields(d.Header["tags"]) {
		if t := strings.TrimPrefix(f, "#"); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Grid converts the body lines into a rectangular rune grid, padding short
// rows with spaces so every row has equal width.
func (d *Document) Grid() [][]rune {
	width := 0
	for _, line := range d.Body {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	grid := make([][]rune, 0, len(d.Body))
	for _, line := range d.Body {
		row := []rune(line)
		for len(row) < width {
			row = append(row, ' ')
		}
		grid = append(grid, row)
	}
	return grid
}
