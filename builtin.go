// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

// Builtin symbol table. These one-pixel units back the fixed glyph tier of
// symbol resolution: a character with no legend entry and no matching
// stamp glyph falls through to this table before becoming a placeholder.
//
//	+  -  |  #   edge pixel
//	.  space     fill pixel
//	x            transparent pixel
func BuiltinStamps() []*Stamp {
	return []*Stamp{
		SingleStamp("corner", '+', TokenEdge),
		SingleStamp("edge-h", '-', TokenEdge),
		SingleStamp("edge-v", '|', TokenEdge),
		SingleStamp("solid", '#', TokenEdge),
		SingleStamp("fill", '.', TokenFill),
		SingleStamp("space", ' ', TokenFill),
		SingleStamp("transparent", 'x', TokenTransparent),
	}
}

// BuiltinStamp returns a builtin stamp by name.
func BuiltinStamp(name string) (*Stamp, bool) {
	for _, s := range BuiltinStamps() {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// BuiltinStampByGlyph returns the builtin stamp declaring the glyph.
func BuiltinStampByGlyph(glyph rune) (*Stamp, bool) {
	for _, s := range BuiltinStamps() {
		if s.Glyph == glyph {
			return s, true
		}
	}
	return nil, false
}

// BuiltinBrushes returns the compiled-in pattern library.
func BuiltinBrushes() []*Brush {
	return []*Brush{
		SingleBrush("solid", 'A'),
		NewBrush("checker", [][]rune{
			{'A', 'B'},
			{'B', 'A'},
		}),
		NewBrush("diagonal-r", [][]rune{
			{'A', 'B'},
			{'B', 'A'},
		}),
		NewBrush("diagonal-l", [][]rune{
			{'B', 'A'},
			{'A', 'B'},
		}),
		NewBrush("h-line", [][]rune{
			{'A'},
			{'B'},
		}),
		NewBrush("v-line", [][]rune{
			{'A', 'B'},
		}),
		NewBrush("noise", [][]rune{
			{'A', 'B', 'B', 'A'},
			{'B', 'A', 'A', 'B'},
			{'A', 'A', 'B', 'B'},
			{'B', 'B', 'A', 'A'},
		}),
	}
}

// BuiltinBrush returns a builtin brush by name.
func BuiltinBrush(name string) (*Brush, bool) {
	for _, b := range BuiltinBrushes() {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// BuiltinTargets returns the compiled-in output profiles.
func BuiltinTargets() []*Target {
	sheet := NewTarget("sheet", "png")
	sheet.Sheet = SheetConfig{Mode: SheetAuto}
	sheet.Padding = 1

	return []*Target{
		NewTarget("web", "png"),
		sheet,
	}
}
