package icondraft

import (
	"bytes"
	"image"
	"math"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	_ "golang.org/x/image/webp"

	"github.com/icondraft/icondraft/glyph"
)

// Scope selects what an export includes.
type Scope int

const (
	// ScopeFull renders the background and the content layer.
	ScopeFull Scope = iota
	// ScopeContent renders the content layer only and crops the output to
	// its bounding box.
	ScopeContent
)

// SquircleRadiusRatio is the rounded-square corner radius as a fraction of
// the output size.
const SquircleRadiusRatio = 0.22

// Compose lowers a Document into a Scene at the given output size. It is a
// pure mapping: content is centered at the design-space midpoint scaled by
// size/DesignSize, with per-mode vertical offsets. Missing content (unknown
// glyph, empty text or grid, undecodable image) yields a scene without that
// layer rather than an error.
func Compose(doc Document, size int, scope Scope, glyphs glyph.Provider) *Scene {
	size = int(clamp(float64(size), MinExportSize, MaxExportSize))
	s := &Scene{Size: size}
	out := float64(size)
	scale := out / DesignSize

	if scope == ScopeFull {
		s.Background = composeBackground(doc.Background, out)
	}

	switch c := doc.Content.(type) {
	case GlyphContent:
		composeGlyph(s, c, out, scale, glyphs)
	case TextContent:
		composeText(s, c, out, scale)
	case PixelContent:
		composePixels(s, c, out, scale)
	case ImageContent:
		composeImage(s, c, out, scale)
	}

	logger().Debug("composed scene",
		"mode", doc.Mode(), "size", size, "nodes", len(s.Nodes),
		"background", s.Background != nil)
	return s
}

func composeBackground(bg Background, out float64) *BackgroundNode {
	node := &BackgroundNode{
		Clip:         bg.Clip,
		CornerRadius: SquircleRadiusRatio * out,
		Noise:        clamp01(bg.Noise),
		Glare:        clamp01(bg.Glare),
	}
	switch bg.Fill {
	case FillLinear:
		// CSS angle convention: 0 points up, clockwise positive. The
		// gradient line passes through the center of the square.
		rad := bg.Angle * math.Pi / 180
		dx := math.Sin(rad)
		dy := -math.Cos(rad)
		cx, cy := out/2, out/2
		half := out / 2
		node.Fill = LinearGradientPaint{
			X1: cx - dx*half, Y1: cy - dy*half,
			X2: cx + dx*half, Y2: cy + dy*half,
			A: bg.ColorA, B: bg.ColorB,
		}
	case FillRadial:
		// Radius reaches the square's corners so the outer stop lands
		// exactly there.
		node.Fill = RadialGradientPaint{
			CX: out / 2, CY: out / 2,
			R: out * math.Sqrt2 / 2,
			A: bg.ColorA, B: bg.ColorB,
		}
	default:
		node.Fill = SolidPaint{Color: bg.ColorA}
	}
	return node
}

func composeGlyph(s *Scene, c GlyphContent, out, scale float64, glyphs glyph.Provider) {
	if c.Name == "" || c.Size <= 0 {
		return
	}
	if glyphs == nil {
		logger().Warn("no glyph provider configured", "glyph", c.Name)
		return
	}
	d, ok := glyphs.Lookup(c.Name)
	if !ok {
		logger().Warn("unknown glyph, skipping content layer", "glyph", c.Name)
		return
	}
	side := c.Size * scale
	s.Nodes = append(s.Nodes, GlyphNode{
		X:      (out - side) / 2,
		Y:      (out-side)/2 + c.OffsetY*scale,
		W:      side,
		H:      side,
		Color:  c.Color,
		Source: d.Source,
		ViewBox: Rect{
			MinX: d.MinX, MinY: d.MinY,
			MaxX: d.MinX + d.W, MaxY: d.MinY + d.H,
		},
	})
}

func composeText(s *Scene, c TextContent, out, scale float64) {
	if strings.TrimSpace(c.Text) == "" || c.Size <= 0 {
		return
	}
	s.Nodes = append(s.Nodes, TextNode{
		X:      out / 2,
		Y:      out/2 + c.OffsetY*scale,
		Size:   c.Size * scale,
		Weight: c.Weight,
		Family: c.Family,
		Color:  c.Color,
		Text:   c.Text,
	})
}

func composePixels(s *Scene, c PixelContent, out, scale float64) {
	grid := c.Grid.normalized()
	if c.Size <= 0 || grid.IsEmpty() {
		return
	}
	px := c.Size * scale
	n := grid.Size
	cell := px / float64(n)
	ox := (out - px) / 2
	oy := (out - px) / 2

	radius := 0.0
	if c.Rounded {
		radius = cell * clamp(c.Rounding, 0, 0.5)
	}

	// Cells sharing an edge with a filled neighbor extend slightly past that
	// edge so adjacent opaque cells tile without hairline seams. The shared
	// side's corners are sharp by the adjacency rule, so the extension never
	// distorts a rounded corner.
	bleed := math.Min(0.5, cell/4)

	for r := 0; r < n; r++ {
		for col := 0; col < n; col++ {
			val := grid.At(r, col)
			if val == "" {
				continue
			}
			x := ox + float64(col)*cell
			y := oy + float64(r)*cell
			w, h := cell, cell
			if grid.Filled(r, col-1) {
				x -= bleed
				w += bleed
			}
			if grid.Filled(r, col+1) {
				w += bleed
			}
			if grid.Filled(r-1, col) {
				y -= bleed
				h += bleed
			}
			if grid.Filled(r+1, col) {
				h += bleed
			}
			s.Nodes = append(s.Nodes, CellNode{
				X: x, Y: y, W: w, H: h,
				Radius:  radius,
				Corners: grid.CornerFlags(r, col),
				Color:   Hex(val),
			})
		}
	}
}

func composeImage(s *Scene, c ImageContent, out, scale float64) {
	if c.Source == "" || c.Size <= 0 {
		return
	}
	mime, data, err := parseDataURI(c.Source)
	if err != nil {
		logger().Warn("unreadable image source, skipping content layer", "err", err)
		return
	}
	box := c.Size * scale

	if strings.HasPrefix(mime, "image/svg") {
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			logger().Warn("undecodable vector image, skipping content layer", "err", err)
			return
		}
		vb := Rect{
			MinX: icon.ViewBox.X, MinY: icon.ViewBox.Y,
			MaxX: icon.ViewBox.X + icon.ViewBox.W,
			MaxY: icon.ViewBox.Y + icon.ViewBox.H,
		}
		if vb.W() <= 0 || vb.H() <= 0 {
			vb = Rect{MaxX: DesignSize, MaxY: DesignSize}
		}
		w, h := fitInto(vb.W(), vb.H(), box)
		s.Nodes = append(s.Nodes, ImageNode{
			X:       (out - w) / 2,
			Y:       (out-h)/2 + c.OffsetY*scale,
			W:       w,
			H:       h,
			Vector:  true,
			Tint:    c.Tint,
			Source:  data,
			ViewBox: vb,
			DataURI: c.Source,
		})
		return
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logger().Warn("undecodable raster image, skipping content layer", "err", err)
		return
	}
	b := img.Bounds()
	w, h := fitInto(float64(b.Dx()), float64(b.Dy()), box)
	node := ImageNode{
		X:       (out - w) / 2,
		Y:       (out-h)/2 + c.OffsetY*scale,
		W:       w,
		H:       h,
		Img:     img,
		DataURI: c.Source,
	}
	// Scale the asset's visible-pixel box into the placed box so analytic
	// bounds match what the rasterizer's content crop will find.
	if ink, found := contentBox(img, 0); found {
		sx := w / float64(b.Dx())
		sy := h / float64(b.Dy())
		node.Ink = Rect{
			MinX: node.X + float64(ink.Min.X-b.Min.X)*sx,
			MinY: node.Y + float64(ink.Min.Y-b.Min.Y)*sy,
			MaxX: node.X + float64(ink.Max.X-b.Min.X)*sx,
			MaxY: node.Y + float64(ink.Max.Y-b.Min.Y)*sy,
		}
	}
	s.Nodes = append(s.Nodes, node)
}

// fitInto scales (w, h) to fit within a square box of the given side while
// preserving aspect ratio.
func fitInto(w, h, box float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	sc := math.Min(box/w, box/h)
	return w * sc, h * sc
}
