// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/pxforge/px"
)

func grayBlock(w, h int, v uint8) *px.Pixmap {
	pm := px.NewPixmap(w, h)
	pm.Clear(px.RGB(v, v, v))
	return pm
}

func TestEffectsZeroAmountIdentity(t *testing.T) {
	src := grayBlock(4, 4, 100)
	var diags px.DiagList

	for _, e := range []px.Effect{
		px.Brightness(0),
		px.Contrast(0),
		px.Scanlines(0, 2),
	} {
		out := ApplyEffects(src, []px.Effect{e}, "a", &diags)
		if !out.Equal(src) {
			t.Errorf("%s with zero amount changed pixels", e.Kind)
		}
	}
}

func TestBrightness(t *testing.T) {
	src := grayBlock(2, 2, 100)
	var diags px.DiagList

	out := ApplyEffects(src, []px.Effect{px.Brightness(0.2)}, "a", &diags)
	want := px.RGB(151, 151, 151) // 100 + 0.2*255 = 151
	if got := out.GetPixel(0, 0); got != want {
		t.Errorf("brightened pixel = %v, want %v", got, want)
	}

	out = ApplyEffects(src, []px.Effect{px.Brightness(1)}, "a", &diags)
	if got := out.GetPixel(0, 0); got != px.White {
		t.Errorf("full brightness = %v, want white", got)
	}
}

func TestContrast(t *testing.T) {
	src := px.NewPixmap(2, 1)
	src.SetPixel(0, 0, px.RGB(64, 64, 64))
	src.SetPixel(1, 0, px.RGB(192, 192, 192))
	var diags px.DiagList

	out := ApplyEffects(src, []px.Effect{px.Contrast(-1)}, "a", &diags)
	mid := px.RGB(128, 128, 128)
	if got := out.GetPixel(0, 0); got != mid {
		t.Errorf("flattened dark pixel = %v, want mid gray", got)
	}
	if got := out.GetPixel(1, 0); got != mid {
		t.Errorf("flattened light pixel = %v, want mid gray", got)
	}
}

func TestScanlines(t *testing.T) {
	src := grayBlock(2, 4, 100)
	var diags px.DiagList

	out := ApplyEffects(src, []px.Effect{px.Scanlines(0.5, 2)}, "a", &diags)
	if got := out.GetPixel(0, 0); got != px.RGB(100, 100, 100) {
		t.Errorf("kept row pixel = %v, want unchanged", got)
	}
	if got := out.GetPixel(0, 1); got != px.RGB(50, 50, 50) {
		t.Errorf("darkened row pixel = %v, want half", got)
	}
	if got := out.GetPixel(0, 3); got != px.RGB(50, 50, 50) {
		t.Errorf("second band pixel = %v, want half", got)
	}
}

func TestVignetteDarkensCorners(t *testing.T) {
	src := grayBlock(9, 9, 200)
	var diags px.DiagList

	out := ApplyEffects(src, []px.Effect{px.Vignette(0.5)}, "a", &diags)
	center := out.GetPixel(4, 4)
	corner := out.GetPixel(0, 0)
	if center != px.RGB(200, 200, 200) {
		t.Errorf("center = %v, want unchanged", center)
	}
	if corner.R >= center.R {
		t.Errorf("corner %v not darker than center %v", corner, center)
	}
	// Corner at full distance: 200 * (1 - 0.5) = 100.
	if corner != px.RGB(100, 100, 100) {
		t.Errorf("corner = %v, want 100 gray", corner)
	}
}

func TestEffectsSkipTransparent(t *testing.T) {
	src := px.NewPixmap(2, 1)
	src.SetPixel(0, 0, px.RGB(10, 10, 10))
	var diags px.DiagList

	out := ApplyEffects(src, []px.Effect{px.Brightness(0.5)}, "a", &diags)
	if got := out.GetPixel(1, 0); !got.IsTransparent() {
		t.Errorf("transparent pixel = %v, want untouched", got)
	}
}

func TestUnknownEffectWarns(t *testing.T) {
	src := grayBlock(2, 2, 50)
	var diags px.DiagList

	out := ApplyEffects(src, []px.Effect{px.CustomEffect("bloom", nil)}, "a", &diags)
	if !out.Equal(src) {
		t.Error("unknown effect changed pixels")
	}
	found := false
	for _, d := range diags.All() {
		if d.Code == px.CodeUnknownEffect {
			found = true
		}
	}
	if !found {
		t.Errorf("diags = %v, want unknown-effect warning", diags.All())
	}
}

func TestEffectOrderMatters(t *testing.T) {
	src := grayBlock(1, 1, 100)
	var diags px.DiagList

	a := ApplyEffects(src, []px.Effect{px.Brightness(0.5), px.Contrast(1)}, "a", &diags)
	b := ApplyEffects(src, []px.Effect{px.Contrast(1), px.Brightness(0.5)}, "a", &diags)
	if a.Equal(b) {
		t.Error("effect order had no observable effect")
	}
}
