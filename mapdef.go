// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

// Map is a level layout. Structurally it is a prefab-shaped composition;
// semantically it is a whole level, and its render output carries instance
// metadata for downstream collision and tile lookup.
type Map struct {
	// Name is the map's unique identifier.
	Name string

	// Tags carry free-form metadata.
	Tags []string

	// Source is the defining document's location, when known.
	Source string

	composition
}

// NewMap creates a map. legend may be nil.
func NewMap(name string, tags []string, grid [][]rune, legend map[rune]string) *Map {
	if legend == nil {
		legend = make(map[rune]string)
	}
	return &Map{
		Name:        name,
		Tags:        tags,
		composition: composition{grid: grid, legend: legend},
	}
}

// Instance records every pixel-space position where one referenced asset
// was placed in a composition.
type Instance struct {
	// Name is the referenced asset's name.
	Name string

	// Tags are the referenced asset's tags, when known.
	Tags []string

	// Positions are top-left pixel coordinates in placement order.
	Positions [][2]int
}

// MapMeta is the structured sidecar for a rendered map, suitable for JSON
// export by an outer layer.
type MapMeta struct {
	// Name is the map name.
	Name string `json:"name"`

	// Size is the canvas size in pixels [w, h].
	Size [2]int `json:"size"`

	// Grid is the layout size in cells [w, h].
	Grid [2]int `json:"grid"`

	// CellSize is the uniform cell size in pixels [w, h].
	CellSize [2]int `json:"cell_size"`

	// Instances lists placements per referenced name, sorted by name.
	Instances []Instance `json:"instances"`
}
