// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

// PixelToken is a semantic pixel in a stamp grid. Unlike brush tokens,
// which are positional and colored at use time, pixel tokens carry
// palette-relative meaning.
type PixelToken uint8

const (
	// TokenEdge resolves to the palette's "edge" color ('$' in source).
	TokenEdge PixelToken = iota
	// TokenFill resolves to the palette's "fill" color ('.' in source).
	TokenFill
	// TokenTransparent contributes no pixel ('x' in source).
	TokenTransparent
)

// ParsePixelToken maps a source character to a pixel token.
// Space reads as fill, matching the source format's intent that blank
// interior cells are part of the unit.
func ParsePixelToken(c rune) (PixelToken, bool) {
	switch c {
	case '$':
		return TokenEdge, true
	case '.', ' ':
		return TokenFill, true
	case 'x', 'X':
		return TokenTransparent, true
	default:
		return TokenTransparent, false
	}
}

// Rune returns the source character for the token.
func (t PixelToken) Rune() rune {
	switch t {
	case TokenEdge:
		return '$'
	case TokenFill:
		return '.'
	default:
		return 'x'
	}
}

// Resolve maps the token to a concrete color given the active edge and
// fill colors.
func (t PixelToken) Resolve(edge, fill RGBA) RGBA {
	switch t {
	case TokenEdge:
		return edge
	case TokenFill:
		return fill
	default:
		return Transparent
	}
}

// Stamp is a small pixel-art unit: a grid of semantic tokens plus an
// optional self-declared default glyph. A stamp with glyph 0 can only be
// placed through a shape legend.
type Stamp struct {
	// Name is the stamp's unique identifier.
	Name string

	// Glyph is the default symbol used to place this stamp in shape
	// grids, or 0 when the stamp declares none.
	Glyph rune

	pixels [][]PixelToken
}

// NewStamp creates a stamp from a token grid (row-major).
func NewStamp(name string, glyph rune, pixels [][]PixelToken) *Stamp {
	return &Stamp{Name: name, Glyph: glyph, pixels: pixels}
}

// SingleStamp creates a 1x1 stamp.
func SingleStamp(name string, glyph rune, token PixelToken) *Stamp {
	return NewStamp(name, glyph, [][]PixelToken{{token}})
}

// Width returns the stamp width in pixels.
func (s *Stamp) Width() int {
	if len(s.pixels) == 0 {
		return 0
	}
	return len(s.pixels[0])
}

// Height returns the stamp height in pixels.
func (s *Stamp) Height() int {
	return len(s.pixels)
}

// IsEmpty reports whether the stamp has no pixels.
func (s *Stamp) IsEmpty() bool {
	return s.Height() == 0 || s.Width() == 0
}

// Get returns the token at (x, y).
// Out-of-bounds positions read as transparent.
func (s *Stamp) Get(x, y int) PixelToken {
	if y < 0 || y >= len(s.pixels) {
		return TokenTransparent
	}
	row := s.pixels[y]
	if x < 0 || x >= len(row) {
		return TokenTransparent
	}
	return row[x]
}

// Render expands the stamp to a pixmap using the given edge and fill colors.
func (s *Stamp) Render(edge, fill RGBA) *Pixmap {
	pm := NewPixmap(s.Width(), s.Height())
	for y, row := range s.pixels {
		for x, t := range row {
			pm.SetPixel(x, y, t.Resolve(edge, fill))
		}
	}
	return pm
}
