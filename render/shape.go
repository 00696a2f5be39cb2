// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"sort"
	"strings"

	"github.com/pxforge/px"
	"github.com/pxforge/px/registry"
)

// ShapeRenderer rasterizes shapes against one palette profile. It holds no
// per-shape state, so one renderer serves a whole build concurrently.
type ShapeRenderer struct {
	reg     *registry.Registry
	palette *px.Palette
	variant string
}

// NewShapeRenderer creates a renderer resolving colors through palette and
// variant. A nil palette falls back to the compiled-in default.
func NewShapeRenderer(reg *registry.Registry, palette *px.Palette, variant string) *ShapeRenderer {
	if palette == nil {
		palette = px.DefaultPalette()
	}
	return &ShapeRenderer{reg: reg, palette: palette, variant: variant}
}

// Render rasterizes a shape.
//
// Cell geometry is variable: each grid row is as tall as the tallest glyph
// it contains and each column as wide as the widest, so a 4x4 brick stamp
// and a 1x1 builtin coexist in one grid without clipping. Glyphs anchor at
// their cell's top-left; fills tile the full cell in cell-local
// coordinates.
func (r *ShapeRenderer) Render(shape *px.Shape, diags *px.DiagList) *px.Pixmap {
	gw, gh := shape.Width(), shape.Height()
	if gw == 0 || gh == 0 {
		return px.NewPixmap(0, 0)
	}

	glyphs := make([][]glyph, gh)
	colWidth := make([]int, gw)
	rowHeight := make([]int, gh)
	for y := 0; y < gh; y++ {
		glyphs[y] = make([]glyph, gw)
		for x := 0; x < gw; x++ {
			g := resolveGlyph(r.reg, shape, shape.Get(x, y), diags)
			glyphs[y][x] = g
			w, h := g.size()
			if w > colWidth[x] {
				colWidth[x] = w
			}
			if h > rowHeight[y] {
				rowHeight[y] = h
			}
		}
	}

	offX := make([]int, gw+1)
	for x := 0; x < gw; x++ {
		offX[x+1] = offX[x] + colWidth[x]
	}
	offY := make([]int, gh+1)
	for y := 0; y < gh; y++ {
		offY[y+1] = offY[y] + rowHeight[y]
	}

	pm := px.NewPixmap(offX[gw], offY[gh])
	edge, fill := r.edgeFill()

	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			g := glyphs[y][x]
			ox, oy := offX[x], offY[y]
			switch g.kind {
			case glyphStamp:
				pm.Blit(g.stamp.Render(edge, fill), ox, oy)
			case glyphBrush:
				bindings := r.resolveBindings(g, shape, diags)
				pm.Blit(g.brush.Fill(g.brush.Width(), g.brush.Height(), bindings), ox, oy)
			case glyphFill:
				bindings := r.resolveBindings(g, shape, diags)
				pm.Blit(g.brush.Fill(colWidth[x], rowHeight[y], bindings), ox, oy)
			case glyphPlaceholder:
				pm.SetPixel(ox, oy, px.Magenta)
			}
		}
	}
	return pm
}

// edgeFill returns the active edge and fill colors. Palettes without the
// conventional names degrade to black on white rather than warning, since
// the compiled-in default works the same way.
func (r *ShapeRenderer) edgeFill() (edge, fill px.RGBA) {
	edge = px.Black
	fill = px.White
	if c, ok := r.palette.GetWithVariant("edge", r.variant); ok {
		edge = c
	}
	if c, ok := r.palette.GetWithVariant("fill", r.variant); ok {
		fill = c
	}
	return edge, fill
}

// resolveBindings maps a legend entry's color references to concrete
// colors. Hex literals pass through; $names go through the palette. A
// missing color binds magenta and warns.
func (r *ShapeRenderer) resolveBindings(g glyph, shape *px.Shape, diags *px.DiagList) map[rune]px.RGBA {
	tokens := make([]rune, 0, len(g.bindings))
	for token := range g.bindings {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })

	out := make(map[rune]px.RGBA, len(tokens))
	for _, token := range tokens {
		out[token] = r.resolveColor(g.bindings[token], shape, token, diags)
	}
	return out
}

func (r *ShapeRenderer) resolveColor(ref string, shape *px.Shape, token rune, diags *px.DiagList) px.RGBA {
	if strings.HasPrefix(ref, "#") {
		c, err := px.Hex(ref)
		if err == nil {
			return c
		}
	} else if c, ok := r.palette.GetWithVariant(ref, r.variant); ok {
		return c
	}

	diags.Add(px.Diag{
		Severity: px.SeverityWarning,
		Code:     px.CodeMissingColor,
		Message:  "color " + ref + " is not defined in palette " + r.palette.Name,
		Asset:    shape.Name,
		Symbol:   token,
		Source:   shape.Source,
	})
	return px.Magenta
}
