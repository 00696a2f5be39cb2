// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/pxforge/px"
)

func spriteResult(name string, w, h int) *Result {
	pm := px.NewPixmap(w, h)
	pm.Clear(px.White)
	return &Result{Name: name, Pixmap: pm}
}

func TestPackSheetShelves(t *testing.T) {
	sprites := []*Result{
		spriteResult("a", 8, 8),
		spriteResult("b", 8, 8),
		spriteResult("c", 16, 8),
	}

	sheet := PackSheet(sprites, 1)

	// Padded area 315 gives a 18px square footprint; the next power of
	// two over max(16, 18) is 32. Equal heights keep input order, so a
	// and b share the first shelf and c opens the second.
	if sheet.Pixmap.Width() != 32 {
		t.Fatalf("atlas width = %d, want 32", sheet.Pixmap.Width())
	}
	if sheet.Pixmap.Height() != 17 {
		t.Fatalf("atlas height = %d, want 17", sheet.Pixmap.Height())
	}

	want := []Frame{
		{Name: "a", X: 0, Y: 0, W: 8, H: 8},
		{Name: "b", X: 9, Y: 0, W: 8, H: 8},
		{Name: "c", X: 0, Y: 9, W: 16, H: 8},
	}
	if len(sheet.Frames) != len(want) {
		t.Fatalf("frames = %d, want %d", len(sheet.Frames), len(want))
	}
	for i, w := range want {
		if sheet.Frames[i] != w {
			t.Errorf("frame[%d] = %+v, want %+v", i, sheet.Frames[i], w)
		}
	}
}

func TestPackSheetTallestFirst(t *testing.T) {
	sprites := []*Result{
		spriteResult("short", 4, 2),
		spriteResult("tall", 4, 8),
	}
	sheet := PackSheet(sprites, 0)

	if sheet.Frames[0].Name != "tall" {
		t.Errorf("first packed = %q, want the taller sprite", sheet.Frames[0].Name)
	}
}

func TestPackSheetValidity(t *testing.T) {
	dims := [][2]int{
		{8, 8}, {3, 5}, {16, 2}, {1, 1}, {7, 9}, {5, 5}, {12, 3}, {2, 14},
	}
	sprites := make([]*Result, len(dims))
	for i, d := range dims {
		sprites[i] = spriteResult("s", d[0], d[1])
	}

	const padding = 2
	sheet := PackSheet(sprites, padding)
	aw, ah := sheet.Pixmap.Width(), sheet.Pixmap.Height()

	for i, f := range sheet.Frames {
		if f.X < 0 || f.Y < 0 || f.X+f.W > aw || f.Y+f.H > ah {
			t.Errorf("frame[%d] %+v escapes %dx%d atlas", i, f, aw, ah)
		}
		for j, g := range sheet.Frames[i+1:] {
			if f.X < g.X+g.W && g.X < f.X+f.W && f.Y < g.Y+g.H && g.Y < f.Y+f.H {
				t.Errorf("frames %d and %d overlap: %+v, %+v", i, i+1+j, f, g)
			}
		}
	}
}

func TestPackSheetDeterministic(t *testing.T) {
	make3 := func() []*Result {
		return []*Result{
			spriteResult("a", 8, 8),
			spriteResult("b", 8, 8),
			spriteResult("c", 16, 8),
		}
	}
	first := PackSheet(make3(), 1)
	for i := 0; i < 10; i++ {
		again := PackSheet(make3(), 1)
		if !again.Pixmap.Equal(first.Pixmap) {
			t.Fatal("atlas pixels differ across identical packs")
		}
		for j := range first.Frames {
			if again.Frames[j] != first.Frames[j] {
				t.Fatalf("frame[%d] differs across identical packs", j)
			}
		}
	}
}

func TestPackSheetEmpty(t *testing.T) {
	sheet := PackSheet(nil, 1)
	if len(sheet.Frames) != 0 {
		t.Errorf("frames = %d, want 0", len(sheet.Frames))
	}
	if sheet.Pixmap.Width() != 0 || sheet.Pixmap.Height() != 0 {
		t.Errorf("atlas = %dx%d, want 0x0", sheet.Pixmap.Width(), sheet.Pixmap.Height())
	}
}

func TestPackFixedGrid(t *testing.T) {
	sprites := []*Result{
		spriteResult("a", 4, 4),
		spriteResult("b", 4, 4),
		spriteResult("c", 4, 4),
	}
	var diags px.DiagList
	sheet := PackFixed(sprites, 2, 2, 4, &diags)

	if sheet.Pixmap.Width() != 8 || sheet.Pixmap.Height() != 8 {
		t.Fatalf("atlas = %dx%d, want 8x8", sheet.Pixmap.Width(), sheet.Pixmap.Height())
	}
	want := [][2]int{{0, 0}, {4, 0}, {0, 4}}
	for i, f := range sheet.Frames {
		if f.X != want[i][0] || f.Y != want[i][1] {
			t.Errorf("frame[%d] at (%d,%d), want (%d,%d)", i, f.X, f.Y, want[i][0], want[i][1])
		}
	}
}

func TestPackFixedOverflowWarns(t *testing.T) {
	sprites := []*Result{
		spriteResult("a", 2, 2),
		spriteResult("b", 2, 2),
	}
	var diags px.DiagList
	sheet := PackFixed(sprites, 1, 1, 2, &diags)

	if len(sheet.Frames) != 1 {
		t.Errorf("frames = %d, want 1 (overflow dropped)", len(sheet.Frames))
	}
	if diags.Len() == 0 {
		t.Error("overflow produced no warning")
	}
}

func TestNextPow2(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {16, 16}, {17, 32}, {100, 128},
	}
	for _, tt := range tests {
		if got := nextPow2(tt.in); got != tt.want {
			t.Errorf("nextPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
