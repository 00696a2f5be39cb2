// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

// EmptyRef is the reserved legend value in prefab and map legends.
// It always yields a transparent cell and never an asset lookup, even when
// an asset literally named "empty" exists in the registry.
const EmptyRef = "empty"

// composition is the shared structure of prefabs and maps: a placement
// grid plus a legend mapping symbols to asset names.
type composition struct {
	grid   [][]rune
	legend map[rune]string
}

// Width returns the grid width in cells.
func (c *composition) Width() int {
	if len(c.grid) == 0 {
		return 0
	}
	return len(c.grid[0])
}

// Height returns the grid height in cells.
func (c *composition) Height() int {
	return len(c.grid)
}

// IsEmpty reports whether the grid has no cells.
func (c *composition) IsEmpty() bool {
	return c.Height() == 0 || c.Width() == 0
}

// Get returns the symbol at (x, y), or 0 when out of bounds.
func (c *composition) Get(x, y int) rune {
	if y < 0 || y >= len(c.grid) {
		return 0
	}
	row := c.grid[y]
	if x < 0 || x >= len(row) {
		return 0
	}
	return row[x]
}

// Legend returns the referenced asset name for a symbol.
func (c *composition) Legend(sym rune) (string, bool) {
	name, ok := c.legend[sym]
	return name, ok
}

// Cells iterates the grid in row-major order.
func (c *composition) Cells(fn func(x, y int, sym rune)) {
	for y, row := range c.grid {
		for x, sym := range row {
			fn(x, y, sym)
		}
	}
}

// ReferencedNames returns the distinct asset names the legend references,
// in first-use grid order. The reserved EmptyRef is excluded.
func (c *composition) ReferencedNames() []string {
	seen := make(map[string]bool)
	var names []string
	c.Cells(func(_, _ int, sym rune) {
		name, ok := c.legend[sym]
		if !ok || name == EmptyRef || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	})
	return names
}

// Prefab is a reusable composition of shapes and other prefabs placed on a
// uniform cell grid. Nesting must be acyclic; the registry enforces that.
type Prefab struct {
	// Name is the prefab's unique identifier.
	Name string

	// Tags carry free-form metadata.
	Tags []string

	// Source is the defining document's location, when known.
	Source string

	composition
}

// NewPrefab creates a prefab. legend may be nil.
func NewPrefab(name string, tags []string, grid [][]rune, legend map[rune]string) *Prefab {
	if legend == nil {
		legend = make(map[rune]string)
	}
	return &Prefab{
		Name:        name,
		Tags:        tags,
		composition: composition{grid: grid, legend: legend},
	}
}
