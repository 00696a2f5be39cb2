// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

import (
	"fmt"
	"image/color"
)

// RGBA represents an 8-bit color with red, green, blue, and alpha components.
// Pixel art works in discrete 8-bit channels, so components are stored as
// bytes rather than normalized floats; this also makes RGBA comparable and
// usable as a map key.
type RGBA struct {
	R, G, B, A uint8
}

// Named colors used throughout the pipeline.
var (
	Transparent = RGBA{0, 0, 0, 0}
	Black       = RGBA{0, 0, 0, 255}
	White       = RGBA{255, 255, 255, 255}

	// Magenta is the placeholder substituted for unresolved references.
	// Saturated on purpose so a missing definition is visually obvious.
	Magenta = RGBA{255, 0, 255, 255}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// RGBA returns the color as alpha-premultiplied 16-bit channels,
// implementing the standard color.Color interface.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// IsTransparent reports whether the color has zero alpha.
func (c RGBA) IsTransparent() bool {
	return c.A == 0
}

// Hex parses a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without
// a leading '#'.
func Hex(hex string) (RGBA, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	a := uint32(255)
	var err error

	switch len(s) {
	case 3: // RGB
		err = parseHexAll(s[0:1], &r, s[1:2], &g, s[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		err = parseHexAll(s[0:1], &r, s[1:2], &g, s[2:3], &b)
		if err == nil {
			err = parseHex(s[3:4], &a)
		}
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		err = parseHexAll(s[0:2], &r, s[2:4], &g, s[4:6], &b)
	case 8: // RRGGBBAA
		err = parseHexAll(s[0:2], &r, s[2:4], &g, s[4:6], &b)
		if err == nil {
			err = parseHex(s[6:8], &a)
		}
	default:
		return RGBA{}, fmt.Errorf("px: invalid hex color %q", hex)
	}
	if err != nil {
		return RGBA{}, fmt.Errorf("px: invalid hex color %q", hex)
	}

	return RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// MustHex is like Hex but panics on a malformed string.
// Intended for compiled-in tables and tests.
func MustHex(hex string) RGBA {
	c, err := Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the color in #RRGGBBAA form.
func (c RGBA) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func parseHexAll(s1 string, v1 *uint32, s2 string, v2 *uint32, s3 string, v3 *uint32) error {
	if err := parseHex(s1, v1); err != nil {
		return err
	}
	if err := parseHex(s2, v2); err != nil {
		return err
	}
	return parseHex(s3, v3)
}

func parseHex(s string, v *uint32) error {
	var out uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			return fmt.Errorf("bad hex digit %q", c)
		}
		out = out<<4 | d
	}
	*v = out
	return nil
}
