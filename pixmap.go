// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Pixmap represents a rectangular pixel buffer.
// Pixels are stored row-major, 4 bytes per pixel (RGBA, non-premultiplied).
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new, fully transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
// Out-of-bounds writes are silently dropped.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// GetPixel returns the color of a single pixel.
// Out-of-bounds reads return Transparent.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// Blit copies src onto p at the given offset with transparency-aware
// overwrite: a source pixel with nonzero alpha replaces the destination,
// a fully transparent source pixel leaves the destination untouched.
func (p *Pixmap) Blit(src *Pixmap, offsetX, offsetY int) {
	for sy := 0; sy < src.height; sy++ {
		dy := offsetY + sy
		if dy < 0 || dy >= p.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			dx := offsetX + sx
			if dx < 0 || dx >= p.width {
				continue
			}
			si := (sy*src.width + sx) * 4
			if src.data[si+3] == 0 {
				continue
			}
			di := (dy*p.width + dx) * 4
			copy(p.data[di:di+4], src.data[si:si+4])
		}
	}
}

// Scale returns a new pixmap enlarged by an integer factor using
// nearest-neighbour interpolation, keeping pixel-art edges crisp.
// A factor of 1 (or less) returns a copy.
func (p *Pixmap) Scale(factor int) *Pixmap {
	if factor <= 1 {
		return p.Clone()
	}
	dst := image.NewNRGBA(image.Rect(0, 0, p.width*factor, p.height*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), p.toNRGBA(), p.Bounds(), draw.Src, nil)
	out := &Pixmap{
		width:  p.width * factor,
		height: p.height * factor,
		data:   make([]uint8, len(dst.Pix)),
	}
	copy(out.data, dst.Pix)
	return out
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	out := &Pixmap{width: p.width, height: p.height, data: make([]uint8, len(p.data))}
	copy(out.data, p.data)
	return out
}

// Equal reports whether two pixmaps have identical size and pixel bytes.
func (p *Pixmap) Equal(other *Pixmap) bool {
	if p.width != other.width || p.height != other.height {
		return false
	}
	for i := range p.data {
		if p.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

func (p *Pixmap) toNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// ToImage converts the pixmap to an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	return p.toNRGBA()
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			pm.SetPixel(x, y, FromColor(c))
		}
	}

	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
