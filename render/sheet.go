// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"
	"sort"

	"github.com/pxforge/px"
)

// Frame is one sprite's placement in a packed sheet.
type Frame struct {
	// Name is the sprite's asset name.
	Name string `json:"name"`

	// X, Y is the top-left position in the sheet.
	X int `json:"x"`
	Y int `json:"y"`

	// W, H is the sprite size, excluding padding.
	W int `json:"w"`
	H int `json:"h"`
}

// Sheet is a packed sprite atlas plus the frame table locating each
// sprite. Frames are in packing order: tallest first, input order between
// equals.
type Sheet struct {
	Pixmap *px.Pixmap
	Frames []Frame
}

// PackSheet packs sprites into an atlas using shelf packing.
//
// Sprites are placed tallest first (ties keep input order), each on the
// current shelf until the row is full, then on a new shelf below. The
// atlas width is the next power of two covering both the widest sprite
// and the square-ish footprint of the total padded area; the height is
// exactly what the shelves used. padding separates sprites from each
// other on both axes.
func PackSheet(sprites []*Result, padding int) *Sheet {
	if padding < 0 {
		padding = 0
	}
	if len(sprites) == 0 {
		return &Sheet{Pixmap: px.NewPixmap(0, 0)}
	}

	order := make([]int, len(sprites))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sprites[order[a]].Pixmap.Height() > sprites[order[b]].Pixmap.Height()
	})

	maxWidth := 0
	totalArea := 0
	for _, s := range sprites {
		w, h := s.Pixmap.Width(), s.Pixmap.Height()
		if w > maxWidth {
			maxWidth = w
		}
		totalArea += (w + padding) * (h + padding)
	}
	side := int(math.Ceil(math.Sqrt(float64(totalArea))))
	if maxWidth > side {
		side = maxWidth
	}
	width := nextPow2(side)

	frames := make([]Frame, 0, len(sprites))
	placed := make([]*px.Pixmap, 0, len(sprites))
	cursorX, cursorY, shelfH := 0, 0, 0
	usedH := 0
	for _, i := range order {
		s := sprites[i]
		w, h := s.Pixmap.Width(), s.Pixmap.Height()

		if cursorX+w > width && cursorX > 0 {
			cursorY += shelfH + padding
			cursorX = 0
			shelfH = 0
		}
		frames = append(frames, Frame{Name: s.Name, X: cursorX, Y: cursorY, W: w, H: h})
		placed = append(placed, s.Pixmap)
		cursorX += w + padding
		if h > shelfH {
			shelfH = h
		}
		if bottom := cursorY + shelfH; bottom > usedH {
			usedH = bottom
		}
	}

	pm := px.NewPixmap(width, usedH)
	for i, f := range frames {
		pm.Blit(placed[i], f.X, f.Y)
	}
	return &Sheet{Pixmap: pm, Frames: frames}
}

// PackFixed packs sprites into a fixed cols x rows grid of uniform tiles,
// placed row-major in input order. The tile size is tile when positive,
// otherwise the largest sprite dimension. Sprites past the grid are
// dropped with a warning.
func PackFixed(sprites []*Result, cols, rows, tile int, diags *px.DiagList) *Sheet {
	if cols < 1 || rows < 1 {
		return &Sheet{Pixmap: px.NewPixmap(0, 0)}
	}
	if tile <= 0 {
		for _, s := range sprites {
			if w := s.Pixmap.Width(); w > tile {
				tile = w
			}
			if h := s.Pixmap.Height(); h > tile {
				tile = h
			}
		}
		if tile <= 0 {
			tile = 1
		}
	}

	pm := px.NewPixmap(cols*tile, rows*tile)
	var frames []Frame
	for i, s := range sprites {
		if i >= cols*rows {
			diags.Add(px.Diag{
				Severity: px.SeverityWarning,
				Code:     px.CodeSizeMismatch,
				Message:  "sprite " + s.Name + " does not fit the fixed sheet grid",
				Asset:    s.Name,
			})
			continue
		}
		x := (i % cols) * tile
		y := (i / cols) * tile
		if s.Pixmap.Width() > tile || s.Pixmap.Height() > tile {
			diags.Add(px.Diag{
				Severity: px.SeverityWarning,
				Code:     px.CodeSizeMismatch,
				Message:  "sprite " + s.Name + " exceeds the tile size and is clipped",
				Asset:    s.Name,
			})
		}
		blitClipped(pm, s.Pixmap, x, y, tile)
		frames = append(frames, Frame{
			Name: s.Name, X: x, Y: y,
			W: min(s.Pixmap.Width(), tile),
			H: min(s.Pixmap.Height(), tile),
		})
	}
	return &Sheet{Pixmap: pm, Frames: frames}
}

// blitClipped copies src into dst at (ox, oy), clipped to a tile-sized
// window.
func blitClipped(dst, src *px.Pixmap, ox, oy, tile int) {
	for y := 0; y < src.Height() && y < tile; y++ {
		for x := 0; x < src.Width() && x < tile; x++ {
			c := src.GetPixel(x, y)
			if c.A == 0 {
				continue
			}
			dst.SetPixel(ox+x, oy+y, c)
		}
	}
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
