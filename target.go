// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

import (
	"fmt"
	"strconv"
	"strings"
)

// SheetMode says whether and how sprites are packed into a sheet.
type SheetMode uint8

const (
	// SheetNone outputs individual sprites, no packing.
	SheetNone SheetMode = iota
	// SheetAuto packs sprites into an automatically sized atlas.
	SheetAuto
	// SheetFixed packs into a fixed grid of tiles.
	SheetFixed
)

// SheetConfig is the parsed sheet setting: a mode plus the fixed grid
// dimensions when Mode is SheetFixed.
type SheetConfig struct {
	Mode   SheetMode
	Width  int
	Height int
}

// ParseSheetConfig parses "none", "auto", or "WxH" (e.g. "8x4").
func ParseSheetConfig(s string) (SheetConfig, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "none", "false", "":
		return SheetConfig{Mode: SheetNone}, nil
	case "auto", "true":
		return SheetConfig{Mode: SheetAuto}, nil
	}
	parts := strings.Split(v, "x")
	if len(parts) == 2 {
		w, werr := strconv.Atoi(strings.TrimSpace(parts[0]))
		h, herr := strconv.Atoi(strings.TrimSpace(parts[1]))
		if werr == nil && herr == nil && w > 0 && h > 0 {
			return SheetConfig{Mode: SheetFixed, Width: w, Height: h}, nil
		}
	}
	return SheetConfig{}, fmt.Errorf("px: invalid sheet config %q (expected none, auto, or WxH)", s)
}

// PaletteMode says how colors are stored in output.
type PaletteMode uint8

const (
	// PaletteRGBA stores full RGBA values.
	PaletteRGBA PaletteMode = iota
	// PaletteIndexed constrains output to an indexed palette.
	PaletteIndexed
)

// Target is an output configuration profile. The core consumes fully
// merged values; the precedence chain (CLI > target > per-asset header >
// default) is resolved by the caller before these reach the render path.
type Target struct {
	// Name is the target's unique identifier.
	Name string

	// Format is the output format tag ("png", "p8", "aseprite").
	// Encoders live outside this core; the tag is carried through.
	Format string

	// Scale is the integer output scale factor; values below 1 read as 1.
	Scale int

	// Sheet is the packing mode.
	Sheet SheetConfig

	// Padding is the inter-sprite padding in pixels when packing.
	Padding int

	// Palette selects full-color or index-constrained output.
	Palette PaletteMode

	// TileSize is the cell size for fixed-grid formats, 0 when unused.
	TileSize int

	// Shader optionally names the shader used when rendering for this
	// target.
	Shader string
}

// NewTarget creates a target with compiled-in defaults.
func NewTarget(name, format string) *Target {
	return &Target{Name: name, Format: format, Scale: 1}
}

// EffectiveScale returns the scale factor, never below 1.
func (t *Target) EffectiveScale() int {
	if t.Scale < 1 {
		return 1
	}
	return t.Scale
}
