// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

import "sort"

// Brush is a tiling pattern with positional color tokens. Tokens are
// letters (A, B, C, ...) with no intrinsic color; callers bind them to
// colors at the point of use, so one pattern serves many color schemes.
type Brush struct {
	// Name is the brush's unique identifier.
	Name string

	pattern [][]rune
}

// NewBrush creates a brush from a pattern grid (row-major).
func NewBrush(name string, pattern [][]rune) *Brush {
	return &Brush{Name: name, pattern: pattern}
}

// SingleBrush creates a 1x1 brush with one token.
func SingleBrush(name string, token rune) *Brush {
	return NewBrush(name, [][]rune{{token}})
}

// Width returns the pattern width.
func (b *Brush) Width() int {
	if len(b.pattern) == 0 {
		return 0
	}
	return len(b.pattern[0])
}

// Height returns the pattern height.
func (b *Brush) Height() int {
	return len(b.pattern)
}

// IsEmpty reports whether the brush has no pattern.
func (b *Brush) IsEmpty() bool {
	return b.Height() == 0 || b.Width() == 0
}

// Get returns the token at (x, y), wrapping modulo the pattern size so the
// same call pattern serves both single placement and tiling.
func (b *Brush) Get(x, y int) (rune, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	x %= b.Width()
	y %= b.Height()
	if x < 0 {
		x += b.Width()
	}
	if y < 0 {
		y += b.Height()
	}
	return b.pattern[y][x], true
}

// Tokens returns the distinct tokens used by the pattern, sorted.
func (b *Brush) Tokens() []rune {
	seen := make(map[rune]bool)
	for _, row := range b.pattern {
		for _, t := range row {
			seen[t] = true
		}
	}
	tokens := make([]rune, 0, len(seen))
	for t := range seen {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
	return tokens
}

// PixelAt resolves the pattern pixel at (x, y) through the bindings.
// Unbound tokens resolve to transparent.
func (b *Brush) PixelAt(x, y int, bindings map[rune]RGBA) RGBA {
	t, ok := b.Get(x, y)
	if !ok {
		return Transparent
	}
	c, ok := bindings[t]
	if !ok {
		return Transparent
	}
	return c
}

// Fill tiles the pattern over a width x height region.
func (b *Brush) Fill(width, height int, bindings map[rune]RGBA) *Pixmap {
	pm := NewPixmap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pm.SetPixel(x, y, b.PixelAt(x, y, bindings))
		}
	}
	return pm
}
