// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

// LegendRole says how a legend entry's referenced asset is used.
type LegendRole uint8

const (
	// LegendStamp places a stamp by name.
	LegendStamp LegendRole = iota
	// LegendBrush places a brush's pattern once, with color bindings.
	LegendBrush
	// LegendFill tiles a brush across the whole cell, with color bindings.
	LegendFill
)

// LegendEntry describes what a shape-grid symbol maps to. The variants are
// a closed set: a stamp reference, a brush placed once, or a brush used as
// a tiled fill. Bindings are color references ("$edge", "#ff00ff") keyed by
// brush token; they are unused for stamp entries.
type LegendEntry struct {
	Role     LegendRole
	Ref      string
	Bindings map[rune]string
}

// StampEntry creates a legend entry referencing a stamp.
func StampEntry(name string) LegendEntry {
	return LegendEntry{Role: LegendStamp, Ref: name}
}

// BrushEntry creates a legend entry placing a brush once.
func BrushEntry(name string, bindings map[rune]string) LegendEntry {
	return LegendEntry{Role: LegendBrush, Ref: name, Bindings: bindings}
}

// FillEntry creates a legend entry tiling a brush across the cell.
func FillEntry(name string, bindings map[rune]string) LegendEntry {
	return LegendEntry{Role: LegendFill, Ref: name, Bindings: bindings}
}

// Shape is an ASCII composition: a rectangular character grid plus a
// legend resolving symbols to stamps and brushes.
type Shape struct {
	// Name is the shape's unique identifier.
	Name string

	// Tags carry free-form metadata ("wall", "solid").
	Tags []string

	// Source is the defining document's location, when known.
	// Carried into diagnostics.
	Source string

	grid   [][]rune
	legend map[rune]LegendEntry
}

// NewShape creates a shape. legend may be nil.
func NewShape(name string, tags []string, grid [][]rune, legend map[rune]LegendEntry) *Shape {
	if legend == nil {
		legend = make(map[rune]LegendEntry)
	}
	return &Shape{Name: name, Tags: tags, grid: grid, legend: legend}
}

// Width returns the grid width in cells.
func (s *Shape) Width() int {
	if len(s.grid) == 0 {
		return 0
	}
	return len(s.grid[0])
}

// Height returns the grid height in cells.
func (s *Shape) Height() int {
	return len(s.grid)
}

// IsEmpty reports whether the grid has no cells.
func (s *Shape) IsEmpty() bool {
	return s.Height() == 0 || s.Width() == 0
}

// Get returns the symbol at (x, y), or 0 when out of bounds.
func (s *Shape) Get(x, y int) rune {
	if y < 0 || y >= len(s.grid) {
		return 0
	}
	row := s.grid[y]
	if x < 0 || x >= len(row) {
		return 0
	}
	return row[x]
}

// Legend returns the legend entry for a symbol.
func (s *Shape) Legend(sym rune) (LegendEntry, bool) {
	e, ok := s.legend[sym]
	return e, ok
}

// LegendEntries returns the full legend map. Callers must not mutate it.
func (s *Shape) LegendEntries() map[rune]LegendEntry {
	return s.legend
}

// Cells iterates the grid in row-major order.
func (s *Shape) Cells(fn func(x, y int, sym rune)) {
	for y, row := range s.grid {
		for x, sym := range row {
			fn(x, y, sym)
		}
	}
}
