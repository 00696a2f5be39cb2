// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/pxforge/px"
	"github.com/pxforge/px/registry"
)

// glyphKind says how one shape-grid cell gets its pixels.
type glyphKind uint8

const (
	glyphStamp glyphKind = iota
	glyphBrush
	glyphFill
	glyphPlaceholder
)

// glyph is a resolved shape-grid cell: the unit to draw plus its color
// bindings. A placeholder glyph stands in for anything that failed to
// resolve and renders as one magenta pixel.
type glyph struct {
	kind     glyphKind
	stamp    *px.Stamp
	brush    *px.Brush
	bindings map[rune]string
}

// size returns the glyph's native pixel size. For fills this is the brush
// pattern size; the fill later tiles across whatever cell it lands in.
func (g glyph) size() (w, h int) {
	switch g.kind {
	case glyphStamp:
		return g.stamp.Width(), g.stamp.Height()
	case glyphBrush, glyphFill:
		return g.brush.Width(), g.brush.Height()
	default:
		return 1, 1
	}
}

// resolveGlyph maps a shape-grid symbol to a drawable glyph.
//
// Resolution tiers, first hit wins:
//  1. the shape's own legend entry
//  2. a registered stamp declaring the symbol as its glyph
//  3. the builtin symbol table
//
// Anything else is a placeholder plus a warning.
func resolveGlyph(reg *registry.Registry, shape *px.Shape, sym rune, diags *px.DiagList) glyph {
	if entry, ok := shape.Legend(sym); ok {
		return resolveLegendEntry(reg, shape, sym, entry, diags)
	}

	if s, ok := reg.StampByGlyph(sym); ok {
		return glyph{kind: glyphStamp, stamp: s}
	}
	if s, ok := px.BuiltinStampByGlyph(sym); ok {
		return glyph{kind: glyphStamp, stamp: s}
	}

	diags.Add(px.Diag{
		Severity: px.SeverityWarning,
		Code:     px.CodeUnknownSymbol,
		Message:  "symbol has no legend entry, stamp glyph, or builtin",
		Asset:    shape.Name,
		Symbol:   sym,
		Source:   shape.Source,
	})
	return glyph{kind: glyphPlaceholder}
}

func resolveLegendEntry(reg *registry.Registry, shape *px.Shape, sym rune, entry px.LegendEntry, diags *px.DiagList) glyph {
	switch entry.Role {
	case px.LegendStamp:
		if s, ok := reg.Stamp(entry.Ref); ok {
			return glyph{kind: glyphStamp, stamp: s}
		}
		if s, ok := px.BuiltinStamp(entry.Ref); ok {
			return glyph{kind: glyphStamp, stamp: s}
		}
		diags.Add(px.Diag{
			Severity: px.SeverityWarning,
			Code:     px.CodeMissingStamp,
			Message:  "stamp " + entry.Ref + " is not defined",
			Asset:    shape.Name,
			Symbol:   sym,
			Source:   shape.Source,
		})
		return glyph{kind: glyphPlaceholder}

	case px.LegendBrush, px.LegendFill:
		kind := glyphBrush
		if entry.Role == px.LegendFill {
			kind = glyphFill
		}
		if b, ok := reg.Brush(entry.Ref); ok {
			return glyph{kind: kind, brush: b, bindings: entry.Bindings}
		}
		if b, ok := px.BuiltinBrush(entry.Ref); ok {
			return glyph{kind: kind, brush: b, bindings: entry.Bindings}
		}
		diags.Add(px.Diag{
			Severity: px.SeverityWarning,
			Code:     px.CodeMissingBrush,
			Message:  "brush " + entry.Ref + " is not defined",
			Asset:    shape.Name,
			Symbol:   sym,
			Source:   shape.Source,
		})
		return glyph{kind: glyphPlaceholder}
	}

	return glyph{kind: glyphPlaceholder}
}
