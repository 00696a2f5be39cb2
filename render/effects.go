// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/pxforge/px"
)

// ApplyEffects runs a shader's post-processing chain over a buffer, in
// declaration order, returning a new buffer. Transparent pixels are left
// untouched. Unrecognized effect kinds warn and pass the buffer through,
// keeping unknown tags visible without breaking the build.
func ApplyEffects(pm *px.Pixmap, effects []px.Effect, asset string, diags *px.DiagList) *px.Pixmap {
	if len(effects) == 0 {
		return pm
	}
	out := pm.Clone()
	for _, e := range effects {
		switch e.Kind {
		case px.EffectVignette:
			applyVignette(out, e.Amount)
		case px.EffectScanlines:
			applyScanlines(out, e.Amount, e.Gap)
		case px.EffectBrightness:
			applyBrightness(out, e.Amount)
		case px.EffectContrast:
			applyContrast(out, e.Amount)
		default:
			diags.Add(px.Diag{
				Severity: px.SeverityWarning,
				Code:     px.CodeUnknownEffect,
				Message:  "effect " + string(e.Kind) + " is not recognized",
				Asset:    asset,
			})
		}
	}
	return out
}

// applyVignette darkens pixels by their squared normalized distance from
// the image center, scaled by strength. Corners reach the full strength.
func applyVignette(pm *px.Pixmap, strength float64) {
	w, h := pm.Width(), pm.Height()
	if w == 0 || h == 0 {
		return
	}
	cx := float64(w-1) / 2
	cy := float64(h-1) / 2
	maxDist := math.Hypot(cx, cy)
	if maxDist == 0 {
		return
	}

	eachOpaque(pm, func(x, y int, c px.RGBA) px.RGBA {
		d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
		return scaleRGB(c, 1-strength*d*d)
	})
}

// applyScanlines darkens the last row of every gap-sized band. With the
// default gap of 2 that is every other row.
func applyScanlines(pm *px.Pixmap, opacity float64, gap int) {
	if gap <= 0 {
		gap = 2
	}
	factor := 1 - opacity
	eachOpaque(pm, func(x, y int, c px.RGBA) px.RGBA {
		if y%gap == gap-1 {
			return scaleRGB(c, factor)
		}
		return c
	})
}

func applyBrightness(pm *px.Pixmap, amount float64) {
	delta := amount * 255
	eachOpaque(pm, func(x, y int, c px.RGBA) px.RGBA {
		return px.RGBA{
			R: clampChannel(float64(c.R) + delta),
			G: clampChannel(float64(c.G) + delta),
			B: clampChannel(float64(c.B) + delta),
			A: c.A,
		}
	})
}

// applyContrast scales channel distance from mid-gray. amount -1 flattens
// to gray, 0 is identity, +1 doubles the spread.
func applyContrast(pm *px.Pixmap, amount float64) {
	factor := 1 + amount
	eachOpaque(pm, func(x, y int, c px.RGBA) px.RGBA {
		return px.RGBA{
			R: clampChannel((float64(c.R)-128)*factor + 128),
			G: clampChannel((float64(c.G)-128)*factor + 128),
			B: clampChannel((float64(c.B)-128)*factor + 128),
			A: c.A,
		}
	})
}

func eachOpaque(pm *px.Pixmap, fn func(x, y int, c px.RGBA) px.RGBA) {
	for y := 0; y < pm.Height(); y++ {
		for x := 0; x < pm.Width(); x++ {
			c := pm.GetPixel(x, y)
			if c.A == 0 {
				continue
			}
			pm.SetPixel(x, y, fn(x, y, c))
		}
	}
}

func scaleRGB(c px.RGBA, factor float64) px.RGBA {
	if factor < 0 {
		factor = 0
	}
	return px.RGBA{
		R: clampChannel(float64(c.R) * factor),
		G: clampChannel(float64(c.G) * factor),
		B: clampChannel(float64(c.B) * factor),
		A: c.A,
	}
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
