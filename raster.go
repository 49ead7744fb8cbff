package icondraft

import (
	"bytes"
	"image"
	"image/draw"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// glareRadius is the reach of the glare overlay as a fraction of the output
// size. The overlay is anchored at top-center and fades to nothing at this
// distance. The vector exporter emits the same geometry.
const glareRadius = 1.0

// Render rasterizes a composed scene into a fresh pixel buffer. Content
// layers that fail to decode are skipped with a warning; Render itself never
// fails.
func Render(s *Scene) *Pixmap {
	pm := NewPixmap(s.Size, s.Size)
	if s.Background != nil {
		renderBackground(pm, s.Background)
	}
	for _, n := range s.Nodes {
		switch node := n.(type) {
		case CellNode:
			renderCell(pm, node)
		case TextNode:
			renderText(pm, node)
		case GlyphNode:
			renderSVG(pm, node.Source, node.X, node.Y, node.W, node.H, node.Color, true)
		case ImageNode:
			if node.Vector {
				renderSVG(pm, node.Source, node.X, node.Y, node.W, node.H,
					node.Tint, !node.Tint.IsTransparent())
			} else {
				renderImage(pm, node)
			}
		}
	}
	return pm
}

// renderBackground fills the (optionally clipped) backdrop, then composites
// the noise jitter and the glare overlay per pixel.
func renderBackground(pm *Pixmap, bg *BackgroundNode) {
	size := pm.Width()
	out := float64(size)

	var mask *image.Alpha
	if bg.Clip {
		var p Path
		p.RoundedRect(0, 0, out, out, bg.CornerRadius)
		mask = rasterizeMask(size, &p)
	}

	// Noise must be reproducible: identical documents produce identical
	// bytes, so the jitter source is seeded from the overlay parameters.
	var rng *rand.Rand
	if bg.Noise > 0 {
		rng = rand.New(rand.NewPCG(uint64(size), math.Float64bits(bg.Noise)))
	}

	glareCX := out / 2
	glareReach := out * glareRadius

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cov := 1.0
			if mask != nil {
				cov = float64(mask.AlphaAt(x, y).A) / 255
				if cov == 0 {
					continue
				}
			}
			c := bg.Fill.ColorAt(float64(x)+0.5, float64(y)+0.5)
			if rng != nil {
				// Independent uniform jitter per channel, a texture
				// look rather than grayscale noise.
				mag := bg.Noise
				c.R = clamp01(c.R + (rng.Float64()*2-1)*mag)
				c.G = clamp01(c.G + (rng.Float64()*2-1)*mag)
				c.B = clamp01(c.B + (rng.Float64()*2-1)*mag)
			}
			if bg.Glare > 0 {
				d := math.Hypot(float64(x)+0.5-glareCX, float64(y)+0.5)
				ga := bg.Glare * (1 - clamp01(d/glareReach))
				c = lerpColor(c, White, ga)
			}
			c.A *= cov
			pm.SetPixel(x, y, c)
		}
	}
}

// rasterizeMask renders a path's coverage into an alpha mask.
func rasterizeMask(size int, p *Path) *image.Alpha {
	r := vector.NewRasterizer(size, size)
	p.rasterize(r)
	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// rasterize replays the path into an x/image/vector rasterizer.
func (p *Path) rasterize(r *vector.Rasterizer) {
	i := 0
	for _, v := range p.verbs {
		switch v {
		case verbMoveTo:
			r.MoveTo(float32(p.coords[i]), float32(p.coords[i+1]))
			i += 2
		case verbLineTo:
			r.LineTo(float32(p.coords[i]), float32(p.coords[i+1]))
			i += 2
		case verbQuadTo:
			r.QuadTo(
				float32(p.coords[i]), float32(p.coords[i+1]),
				float32(p.coords[i+2]), float32(p.coords[i+3]))
			i += 4
		case verbCubeTo:
			r.CubeTo(
				float32(p.coords[i]), float32(p.coords[i+1]),
				float32(p.coords[i+2]), float32(p.coords[i+3]),
				float32(p.coords[i+4]), float32(p.coords[i+5]))
			i += 6
		case verbClose:
			r.ClosePath()
		}
	}
}

func renderCell(pm *Pixmap, n CellNode) {
	var p Path
	p.RoundedCell(n.X, n.Y, n.W, n.H, n.Radius, n.Corners)
	r := vector.NewRasterizer(pm.Width(), pm.Height())
	r.DrawOp = draw.Over
	p.rasterize(r)
	r.Draw(pm.Image(), pm.Image().Rect, image.NewUniform(n.Color.Color()), image.Point{})
}

// Bundled font faces. The document's font family is carried through to the
// vector output; raster output always draws with the bundled Go fonts, bold
// for weights of 600 and above.
var (
	fontOnce    sync.Once
	fontRegular *opentype.Font
	fontBold    *opentype.Font
	fontErr     error
)

func loadFonts() {
	fontRegular, fontErr = opentype.Parse(goregular.TTF)
	if fontErr != nil {
		return
	}
	fontBold, fontErr = opentype.Parse(gobold.TTF)
}

func textFace(size float64, weight int) (font.Face, error) {
	fontOnce.Do(loadFonts)
	if fontErr != nil {
		return nil, fontErr
	}
	f := fontRegular
	if weight >= 600 {
		f = fontBold
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// renderText draws a text run centered horizontally on n.X with
// vertical-middle baseline placement on n.Y, mirroring the vector output's
// text-anchor/dominant-baseline semantics.
func renderText(pm *Pixmap, n TextNode) {
	face, err := textFace(n.Size, n.Weight)
	if err != nil {
		logger().Warn("font face unavailable, skipping text layer", "err", err)
		return
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  pm.Image(),
		Src:  image.NewUniform(n.Color.Color()),
		Face: face,
	}
	adv := d.MeasureString(n.Text)
	m := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(n.X*64) - adv/2,
		Y: fixed.Int26_6(n.Y*64) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(n.Text)
}

// renderSVG rasterizes SVG markup into the target box. When tinted, the
// rasterized coverage is used as a mask and filled with a uniform color
// (mask-and-fill); otherwise the markup's own colors are kept.
func renderSVG(pm *Pixmap, src []byte, x, y, w, h float64, tint RGBA, tinted bool) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(src))
	if err != nil {
		logger().Warn("undecodable SVG content, skipping layer", "err", err)
		return
	}
	iw := max(1, int(math.Ceil(w)))
	ih := max(1, int(math.Ceil(h)))

	tmp := image.NewRGBA(image.Rect(0, 0, iw, ih))
	icon.SetTarget(0, 0, w, h)
	scanner := rasterx.NewScannerGV(iw, ih, tmp, tmp.Bounds())
	icon.Draw(rasterx.NewDasher(iw, ih, scanner), 1.0)

	dst := image.Rect(int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x))+iw, int(math.Round(y))+ih)
	if tinted {
		draw.DrawMask(pm.Image(), dst, image.NewUniform(tint.Color()),
			image.Point{}, tmp, image.Point{}, draw.Over)
	} else {
		draw.Draw(pm.Image(), dst, tmp, image.Point{}, draw.Over)
	}
}

// renderImage draws a decoded raster asset, resized to the fitted box
// computed at composition time (aspect ratio already preserved there).
func renderImage(pm *Pixmap, n ImageNode) {
	w := max(1, int(math.Round(n.W)))
	h := max(1, int(math.Round(n.H)))
	resized := imaging.Resize(n.Img, w, h, imaging.Lanczos)
	dst := image.Rect(int(math.Round(n.X)), int(math.Round(n.Y)),
		int(math.Round(n.X))+w, int(math.Round(n.Y))+h)
	draw.Draw(pm.Image(), dst, resized, image.Point{}, draw.Over)
}
