package icondraft

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ExportSVG serializes the document as SVG markup: the same composed scene
// the rasterizer consumes, expressed declaratively. Gradients, noise, and
// glare become reusable defs; content-only scope sets the viewport to the
// analytic content bounding box.
func ExportSVG(doc Document, opts ExportOptions) (*Artifact, error) {
	size := opts.size(doc)
	scene := Compose(doc, size, opts.Scope, opts.Glyphs)
	markup := MarshalSVG(scene, opts.Scope)
	return &Artifact{
		Data:     []byte(markup),
		Filename: fmt.Sprintf("icon-%d.svg", size),
		MIME:     "image/svg+xml",
	}, nil
}

// MarshalSVG writes a scene as an SVG document.
func MarshalSVG(s *Scene, scope Scope) string {
	out := float64(s.Size)
	viewBox := Rect{MaxX: out, MaxY: out}
	width, height := out, out

	if scope == ScopeContent {
		if b, ok := s.ContentBounds(); ok {
			viewBox = b
			// Fit the requested size preserving aspect: the shorter
			// dimension shrinks proportionally, no padding.
			if b.W() >= b.H() {
				width = out
				height = out * b.H() / b.W()
			} else {
				height = out
				width = out * b.W() / b.H()
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`+"\n",
		num(width), num(height),
		num(viewBox.MinX), num(viewBox.MinY), num(viewBox.W()), num(viewBox.H()))

	if s.Background != nil {
		writeBackground(&b, s.Background, out)
	}
	for _, n := range s.Nodes {
		writeNode(&b, n)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func writeBackground(b *strings.Builder, bg *BackgroundNode, out float64) {
	b.WriteString("<defs>\n")
	switch fill := bg.Fill.(type) {
	case LinearGradientPaint:
		fmt.Fprintf(b,
			`<linearGradient id="bg-fill" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			num(fill.X1), num(fill.Y1), num(fill.X2), num(fill.Y2))
		writeStops(b, fill.A, fill.B)
		b.WriteString("</linearGradient>\n")
	case RadialGradientPaint:
		fmt.Fprintf(b,
			`<radialGradient id="bg-fill" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">`+"\n",
			num(fill.CX), num(fill.CY), num(fill.R))
		writeStops(b, fill.A, fill.B)
		b.WriteString("</radialGradient>\n")
	}
	if bg.Clip {
		fmt.Fprintf(b,
			`<clipPath id="bg-clip"><rect width="%s" height="%s" rx="%s"/></clipPath>`+"\n",
			num(out), num(out), num(bg.CornerRadius))
	}
	if bg.Noise > 0 {
		// Fractal turbulence with independent RGB channels, matching the
		// rasterizer's per-channel jitter texture.
		b.WriteString(`<filter id="bg-noise"><feTurbulence type="fractalNoise" baseFrequency="0.8" numOctaves="2" stitchTiles="stitch"/></filter>` + "\n")
	}
	if bg.Glare > 0 {
		fmt.Fprintf(b,
			`<radialGradient id="bg-glare" gradientUnits="userSpaceOnUse" cx="%s" cy="0" r="%s">`+"\n",
			num(out/2), num(out*glareRadius))
		fmt.Fprintf(b, `<stop offset="0" stop-color="#FFFFFF" stop-opacity="%s"/>`+"\n", num(bg.Glare))
		b.WriteString(`<stop offset="1" stop-color="#FFFFFF" stop-opacity="0"/>` + "\n")
		b.WriteString("</radialGradient>\n")
	}
	b.WriteString("</defs>\n")

	if bg.Clip {
		b.WriteString(`<g clip-path="url(#bg-clip)">` + "\n")
	}
	fillRef := ""
	if solid, ok := bg.Fill.(SolidPaint); ok {
		fillRef = solid.Color.Hex()
	} else {
		fillRef = "url(#bg-fill)"
	}
	fmt.Fprintf(b, `<rect width="%s" height="%s" fill="%s"/>`+"\n", num(out), num(out), fillRef)
	if bg.Noise > 0 {
		fmt.Fprintf(b,
			`<rect width="%s" height="%s" filter="url(#bg-noise)" opacity="%s" style="mix-blend-mode:overlay"/>`+"\n",
			num(out), num(out), num(bg.Noise))
	}
	if bg.Glare > 0 {
		fmt.Fprintf(b, `<rect width="%s" height="%s" fill="url(#bg-glare)"/>`+"\n", num(out), num(out))
	}
	if bg.Clip {
		b.WriteString("</g>\n")
	}
}

func writeStops(b *strings.Builder, a, z RGBA) {
	fmt.Fprintf(b, `<stop offset="0" stop-color="%s"/>`+"\n", a.Hex())
	fmt.Fprintf(b, `<stop offset="1" stop-color="%s"/>`+"\n", z.Hex())
}

func writeNode(b *strings.Builder, n Node) {
	switch node := n.(type) {
	case CellNode:
		if node.Radius <= 0 || !node.Corners.Any() {
			fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
				num(node.X), num(node.Y), num(node.W), num(node.H), node.Color.Hex())
			return
		}
		fmt.Fprintf(b, `<path d="%s" fill="%s"/>`+"\n", cellPathData(node), node.Color.Hex())
	case TextNode:
		family := node.Family
		if family == "" {
			family = "sans-serif"
		}
		fmt.Fprintf(b,
			`<text x="%s" y="%s" font-family="%s" font-size="%s" font-weight="%d" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			num(node.X), num(node.Y), xmlEscape(family), num(node.Size),
			node.Weight, node.Color.Hex(), xmlEscape(node.Text))
	case GlyphNode:
		writeEmbeddedSVG(b, node.Source, node.ViewBox,
			node.X, node.Y, node.W, node.H, node.Color, true)
	case ImageNode:
		if node.Vector && !node.Tint.IsTransparent() {
			writeEmbeddedSVG(b, node.Source, node.ViewBox,
				node.X, node.Y, node.W, node.H, node.Tint, true)
			return
		}
		fmt.Fprintf(b,
			`<image x="%s" y="%s" width="%s" height="%s" href="%s"/>`+"\n",
			num(node.X), num(node.Y), num(node.W), num(node.H),
			xmlEscape(node.DataURI))
	}
}

// cellPathData traces one cell outline, replacing each rounded corner with a
// quarter-circle arc and each sharp corner with a square joint. Mirrors
// Path.RoundedCell so both exporters agree on the geometry.
func cellPathData(n CellNode) string {
	x, y, w, h := n.X, n.Y, n.W, n.H
	r := clamp(n.Radius, 0, min(w, h)/2)
	c := n.Corners

	var d strings.Builder
	arc := func(toX, toY float64) {
		fmt.Fprintf(&d, "A%s %s 0 0 1 %s %s", num(r), num(r), num(toX), num(toY))
	}
	line := func(toX, toY float64) {
		fmt.Fprintf(&d, "L%s %s", num(toX), num(toY))
	}

	if c.TopLeft {
		fmt.Fprintf(&d, "M%s %s", num(x+r), num(y))
	} else {
		fmt.Fprintf(&d, "M%s %s", num(x), num(y))
	}
	if c.TopRight {
		line(x+w-r, y)
		arc(x+w, y+r)
	} else {
		line(x+w, y)
	}
	if c.BottomRight {
		line(x+w, y+h-r)
		arc(x+w-r, y+h)
	} else {
		line(x+w, y+h)
	}
	if c.BottomLeft {
		line(x+r, y+h)
		arc(x, y+h-r)
	} else {
		line(x, y+h)
	}
	if c.TopLeft {
		line(x, y+r)
		arc(x+r, y)
	}
	d.WriteString("Z")
	return d.String()
}

// writeEmbeddedSVG inlines SVG markup repositioned into the target box.
// When tinted, a uniform fill overrides the markup's own colors.
func writeEmbeddedSVG(b *strings.Builder, src []byte, viewBox Rect, x, y, w, h float64, tint RGBA, tinted bool) {
	vbW, vbH := viewBox.W(), viewBox.H()
	if vbW <= 0 || vbH <= 0 {
		return
	}
	fmt.Fprintf(b, `<g transform="translate(%s %s) scale(%s %s) translate(%s %s)"`,
		num(x), num(y), num(w/vbW), num(h/vbH), num(-viewBox.MinX), num(-viewBox.MinY))
	body := innerSVG(src)
	if tinted {
		fmt.Fprintf(b, ` fill="%s"`, tint.Hex())
		body = retint(body, tint)
	}
	b.WriteString(">")
	b.WriteString(body)
	b.WriteString("</g>\n")
}

var (
	paintAttrRe  = regexp.MustCompile(`\s(?:fill|stroke)="[^"]*"`)
	stylePaintRe = regexp.MustCompile(`(?:fill|stroke)\s*:\s*[^;"']+;?`)
)

// retint removes explicit paint from embedded markup so the wrapping group's
// fill reaches every element, matching the rasterizer's mask-and-fill where
// the tint always wins. fill="none" survives so unpainted elements stay
// unpainted; strokes are recolored rather than stripped because their
// coverage is tinted, not discarded, in the raster path.
func retint(s string, tint RGBA) string {
	s = paintAttrRe.ReplaceAllStringFunc(s, func(m string) string {
		if strings.HasSuffix(m, `"none"`) {
			return m
		}
		if strings.HasPrefix(strings.TrimSpace(m), "stroke") {
			return ` stroke="` + tint.Hex() + `"`
		}
		return ""
	})
	return stylePaintRe.ReplaceAllStringFunc(s, func(m string) string {
		if strings.Contains(m, "none") {
			return m
		}
		if strings.HasPrefix(m, "stroke") {
			return "stroke:" + tint.Hex() + ";"
		}
		return ""
	})
}

// innerSVG strips the outer <svg> element, keeping its children.
func innerSVG(src []byte) string {
	s := string(src)
	start := strings.Index(s, "<svg")
	if start < 0 {
		return s
	}
	open := strings.Index(s[start:], ">")
	if open < 0 {
		return s
	}
	body := s[start+open+1:]
	if end := strings.LastIndex(body, "</svg>"); end >= 0 {
		body = body[:end]
	}
	return body
}

// num formats a coordinate with enough precision for pixel-exact geometry
// and no trailing noise.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string { return xmlEscaper.Replace(s) }
