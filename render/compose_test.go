// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/pxforge/px"
)

func solidResult(name string, w, h int, c px.RGBA) *Result {
	pm := px.NewPixmap(w, h)
	pm.Clear(c)
	return &Result{Name: name, Pixmap: pm}
}

func lookupFrom(results ...*Result) func(string) (*Result, bool) {
	byName := make(map[string]*Result, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}
	return func(name string) (*Result, bool) {
		r, ok := byName[name]
		return r, ok
	}
}

func TestComposeColumn(t *testing.T) {
	cap := solidResult("cap", 4, 4, px.RGB(10, 0, 0))
	wall := solidResult("wall", 4, 4, px.RGB(0, 20, 0))
	base := solidResult("base", 4, 4, px.RGB(0, 0, 30))

	prefab := px.NewPrefab("tower", nil, grid("C", "W", "W", "W", "B"), map[rune]string{
		'C': "cap", 'W': "wall", 'B': "base",
	})

	var diags px.DiagList
	res := composeLayout("tower", "", nil, prefab, lookupFrom(cap, wall, base), true, &diags)

	if w, h := res.Size(); w != 4 || h != 20 {
		t.Fatalf("canvas = %dx%d, want 4x20", w, h)
	}
	if res.Meta.CellSize != [2]int{4, 4} {
		t.Errorf("cell size = %v, want [4 4]", res.Meta.CellSize)
	}

	wantPositions := map[string][][2]int{
		"cap":  {{0, 0}},
		"wall": {{0, 4}, {0, 8}, {0, 12}},
		"base": {{0, 16}},
	}
	if len(res.Meta.Instances) != 3 {
		t.Fatalf("instances = %d, want 3", len(res.Meta.Instances))
	}
	for _, inst := range res.Meta.Instances {
		want, ok := wantPositions[inst.Name]
		if !ok {
			t.Errorf("unexpected instance %q", inst.Name)
			continue
		}
		if len(inst.Positions) != len(want) {
			t.Errorf("%s positions = %v, want %v", inst.Name, inst.Positions, want)
			continue
		}
		for i := range want {
			if inst.Positions[i] != want[i] {
				t.Errorf("%s position[%d] = %v, want %v", inst.Name, i, inst.Positions[i], want[i])
			}
		}
	}

	// Spot-check pixel content at each band.
	if got := res.Pixmap.GetPixel(0, 0); got != px.RGB(10, 0, 0) {
		t.Errorf("cap pixel = %v", got)
	}
	if got := res.Pixmap.GetPixel(3, 10); got != px.RGB(0, 20, 0) {
		t.Errorf("wall pixel = %v", got)
	}
	if got := res.Pixmap.GetPixel(0, 19); got != px.RGB(0, 0, 30) {
		t.Errorf("base pixel = %v", got)
	}
}

func TestComposeEmptyReserved(t *testing.T) {
	// Even with an asset literally named "empty" available, the reserved
	// name draws nothing and leaves no instance record.
	decoy := solidResult(px.EmptyRef, 2, 2, px.RGB(99, 99, 99))
	wall := solidResult("wall", 2, 2, px.RGB(1, 2, 3))

	m := px.NewMap("lvl", nil, grid("_W"), map[rune]string{
		'_': px.EmptyRef, 'W': "wall",
	})

	var diags px.DiagList
	res := composeLayout("lvl", "", nil, m, lookupFrom(decoy, wall), true, &diags)

	if got := res.Pixmap.GetPixel(0, 0); !got.IsTransparent() {
		t.Errorf("empty cell pixel = %v, want transparent", got)
	}
	for _, inst := range res.Meta.Instances {
		if inst.Name == px.EmptyRef {
			t.Error("reserved empty name produced an instance record")
		}
	}
	if diags.Len() != 0 {
		t.Errorf("diags = %v, want none", diags.All())
	}
}

func TestComposeMissingChild(t *testing.T) {
	wall := solidResult("wall", 2, 2, px.RGB(1, 2, 3))
	prefab := px.NewPrefab("p", nil, grid("WG"), map[rune]string{
		'W': "wall", 'G': "ghost",
	})

	var diags px.DiagList
	res := composeLayout("p", "", nil, prefab, lookupFrom(wall), false, &diags)

	// Missing child cell is a magenta block.
	if got := res.Pixmap.GetPixel(2, 0); got != px.Magenta {
		t.Errorf("missing-child pixel = %v, want magenta", got)
	}
	warnings := 0
	for _, d := range diags.All() {
		if d.Code == px.CodeMissingAsset {
			warnings++
		}
	}
	if warnings != 1 {
		t.Errorf("missing-asset warnings = %d, want exactly 1", warnings)
	}
}

func TestComposeUnknownSymbol(t *testing.T) {
	wall := solidResult("wall", 2, 2, px.RGB(1, 2, 3))
	prefab := px.NewPrefab("p", nil, grid("W?"), map[rune]string{'W': "wall"})

	var diags px.DiagList
	res := composeLayout("p", "", nil, prefab, lookupFrom(wall), false, &diags)

	if got := res.Pixmap.GetPixel(2, 0); !got.IsTransparent() {
		t.Errorf("unknown-symbol cell = %v, want transparent", got)
	}
	found := false
	for _, d := range diags.All() {
		if d.Code == px.CodeUnknownSymbol && d.Symbol == '?' {
			found = true
		}
	}
	if !found {
		t.Errorf("diags = %v, want unknown-symbol warning", diags.All())
	}
}

func TestComposeUniformCellFromMixedSizes(t *testing.T) {
	big := solidResult("big", 4, 4, px.RGB(9, 9, 9))
	small := solidResult("small", 2, 2, px.RGB(5, 5, 5))
	prefab := px.NewPrefab("p", nil, grid("BS"), map[rune]string{
		'B': "big", 'S': "small",
	})

	var diags px.DiagList
	res := composeLayout("p", "", nil, prefab, lookupFrom(big, small), false, &diags)

	// Uniform cell = 4x4; the small child is top-left anchored with
	// transparent slack.
	if w, h := res.Size(); w != 8 || h != 4 {
		t.Fatalf("canvas = %dx%d, want 8x4", w, h)
	}
	if got := res.Pixmap.GetPixel(4, 0); got != px.RGB(5, 5, 5) {
		t.Errorf("small child pixel = %v", got)
	}
	if got := res.Pixmap.GetPixel(7, 3); !got.IsTransparent() {
		t.Errorf("slack pixel = %v, want transparent", got)
	}
}

func TestComposeTransparencyAwareOverwrite(t *testing.T) {
	// A child with transparent pixels must not erase what is under its
	// cell: here the canvas starts transparent, so only opaque pixels of
	// the child appear. Blit semantics carry the composite.
	holed := &Result{Name: "holed", Pixmap: px.NewPixmap(2, 1)}
	holed.Pixmap.SetPixel(0, 0, px.RGB(7, 7, 7))
	// pixel (1,0) stays transparent

	prefab := px.NewPrefab("p", nil, grid("H"), map[rune]string{'H': "holed"})
	var diags px.DiagList
	res := composeLayout("p", "", nil, prefab, lookupFrom(holed), false, &diags)

	if got := res.Pixmap.GetPixel(0, 0); got != px.RGB(7, 7, 7) {
		t.Errorf("opaque pixel = %v", got)
	}
	if got := res.Pixmap.GetPixel(1, 0); !got.IsTransparent() {
		t.Errorf("transparent pixel = %v, want transparent", got)
	}
}
