package icondraft

import (
	"image"
	"image/color"
	"image/draw"
)

// Pixmap is a rectangular, non-premultiplied RGBA pixel buffer. It starts
// fully transparent.
type Pixmap struct {
	img *image.NRGBA
}

// NewPixmap creates a transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.img.Rect.Dx() }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.img.Rect.Dy() }

// Image exposes the underlying image for drawing and encoding.
func (p *Pixmap) Image() *image.NRGBA { return p.img }

// SetPixel sets the color of a single pixel. Out-of-bounds writes are
// dropped.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if !(image.Point{X: x, Y: y}).In(p.img.Rect) {
		return
	}
	p.img.SetNRGBA(x, y, c.Color().(color.NRGBA))
}

// GetPixel returns the color of a single pixel, or Transparent out of
// bounds.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if !(image.Point{X: x, Y: y}).In(p.img.Rect) {
		return Transparent
	}
	return FromColor(p.img.NRGBAAt(x, y))
}

// OpaqueBounds returns the axis-aligned bounding box of all pixels with
// nonzero alpha, and reports whether any exist.
func (p *Pixmap) OpaqueBounds() (image.Rectangle, bool) {
	b := p.img.Rect
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := p.img.Pix[(y-b.Min.Y)*p.img.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// Crop returns a new pixmap holding a copy of the given region.
func (p *Pixmap) Crop(r image.Rectangle) *Pixmap {
	r = r.Intersect(p.img.Rect)
	out := NewPixmap(r.Dx(), r.Dy())
	draw.Draw(out.img, out.img.Rect, p.img, r.Min, draw.Src)
	return out
}
