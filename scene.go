package icondraft

import (
	"image"
	"math"
)

// The composition step lowers a Document into a Scene: a renderer-agnostic
// description of shapes, paints, and placed content in output-space
// coordinates. Both the rasterizer and the SVG serializer consume the same
// Scene, so the two export paths cannot drift apart on geometry.

// Rect is an axis-aligned rectangle in output space.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// W returns the rectangle width.
func (r Rect) W() float64 { return r.MaxX - r.MinX }

// H returns the rectangle height.
func (r Rect) H() float64 { return r.MaxY - r.MinY }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.MaxX <= r.MinX || r.MaxY <= r.MinY }

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Paint produces a color for any point in output space.
type Paint interface {
	// ColorAt returns the paint color at (x, y).
	ColorAt(x, y float64) RGBA
}

// SolidPaint is a uniform color.
type SolidPaint struct {
	Color RGBA
}

// ColorAt implements Paint.
func (p SolidPaint) ColorAt(x, y float64) RGBA { return p.Color }

// LinearGradientPaint is a two-stop linear transition between two points.
type LinearGradientPaint struct {
	X1, Y1, X2, Y2 float64
	A, B           RGBA
}

// ColorAt implements Paint. Points are projected onto the gradient line and
// the offset is clamped (pad extend).
func (p LinearGradientPaint) ColorAt(x, y float64) RGBA {
	dx := p.X2 - p.X1
	dy := p.Y2 - p.Y1
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return p.A
	}
	t := ((x-p.X1)*dx + (y-p.Y1)*dy) / lengthSq
	return lerpColor(p.A, p.B, clamp01(t))
}

// RadialGradientPaint is a two-stop radial transition around a center point.
type RadialGradientPaint struct {
	CX, CY, R float64
	A, B      RGBA
}

// ColorAt implements Paint.
func (p RadialGradientPaint) ColorAt(x, y float64) RGBA {
	if p.R <= 0 {
		return p.A
	}
	d := math.Hypot(x-p.CX, y-p.CY)
	return lerpColor(p.A, p.B, clamp01(d/p.R))
}

// BackgroundNode is the styled backdrop: a fill paint, optionally clipped to
// the rounded-square silhouette, with procedural noise and a top-center glare
// overlay. Overlays with zero opacity are omitted by the composer rather than
// carried as zero-effect passes.
type BackgroundNode struct {
	Fill Paint
	// Clip constrains the background to a rounded square of CornerRadius.
	Clip         bool
	CornerRadius float64
	Noise        float64
	Glare        float64
}

// Node is one placed content element.
type Node interface {
	// Bounds returns the element's axis-aligned bounding box in output
	// space. Exact for cell geometry and raster image ink; the placed box
	// for glyphs and vector images (their markup's ink is not measured);
	// approximated for text (metrics are not measured at composition time).
	Bounds() Rect
}

// CellNode is one filled pixel-grid cell. Radius applies only to the flagged
// corners; the remaining corners are square joints.
type CellNode struct {
	X, Y, W, H float64
	Radius     float64
	Corners    CornerFlags
	Color      RGBA
}

// Bounds implements Node.
func (n CellNode) Bounds() Rect {
	return Rect{MinX: n.X, MinY: n.Y, MaxX: n.X + n.W, MaxY: n.Y + n.H}
}

// textWidthRatio approximates average glyph advance as a fraction of the font
// size. Used for analytic text bounds; actual raster metrics come from the
// font face.
const textWidthRatio = 0.56

// TextNode is a text run anchored at its center point: horizontal center
// alignment, vertical-middle baseline semantics in both export paths.
type TextNode struct {
	X, Y   float64
	Size   float64
	Weight int
	Family string
	Color  RGBA
	Text   string
}

// Bounds implements Node using the fixed average-character-width ratio.
func (n TextNode) Bounds() Rect {
	w := float64(len([]rune(n.Text))) * n.Size * textWidthRatio
	h := n.Size
	return Rect{
		MinX: n.X - w/2,
		MinY: n.Y - h/2,
		MaxX: n.X + w/2,
		MaxY: n.Y + h/2,
	}
}

// GlyphNode is a resolved vector glyph placed in a target box and tinted
// with a uniform color.
type GlyphNode struct {
	X, Y, W, H float64
	Color      RGBA
	// Source is the glyph's SVG markup; ViewBox its declared coordinate box.
	Source  []byte
	ViewBox Rect
}

// Bounds implements Node.
func (n GlyphNode) Bounds() Rect {
	return Rect{MinX: n.X, MinY: n.Y, MaxX: n.X + n.W, MaxY: n.Y + n.H}
}

// ImageNode is an uploaded asset fitted into a target box. Vector sources
// carry SVG markup and a tint; raster sources carry the decoded image.
type ImageNode struct {
	X, Y, W, H float64
	Vector     bool
	Tint       RGBA
	Source     []byte      // SVG markup when Vector
	ViewBox    Rect        // SVG view box when Vector
	Img        image.Image // decoded pixels when !Vector
	DataURI    string      // original source, for by-reference vector embedding

	// Ink is the visible-pixel box within the placed box, set for raster
	// sources at composition time. Assets with transparent internal padding
	// would otherwise report bounds wider than what the rasterizer crops to.
	Ink Rect
}

// Bounds implements Node. Raster sources report their ink box; vector
// sources the placed box.
func (n ImageNode) Bounds() Rect {
	if !n.Ink.Empty() {
		return n.Ink
	}
	return Rect{MinX: n.X, MinY: n.Y, MaxX: n.X + n.W, MaxY: n.Y + n.H}
}

// Scene is a composed design at a concrete output size. Background is nil for
// content-only scope.
type Scene struct {
	Size       int
	Background *BackgroundNode
	Nodes      []Node
}

// ContentBounds returns the union of all content bounds and reports whether
// any content exists.
func (s *Scene) ContentBounds() (Rect, bool) {
	var out Rect
	found := false
	for _, n := range s.Nodes {
		b := n.Bounds()
		if b.Empty() {
			continue
		}
		if !found {
			out = b
			found = true
			continue
		}
		out = out.Union(b)
	}
	return out, found
}
