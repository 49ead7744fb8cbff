package icondraft

// pathVerb identifies one path segment kind.
type pathVerb uint8

const (
	verbMoveTo pathVerb = iota
	verbLineTo
	verbQuadTo
	verbCubeTo
	verbClose
)

// kappa approximates a quarter circle with a single cubic Bezier.
const kappa = 0.5522847498307936

// Path is a fill outline built from move/line/curve segments. It is the
// geometry form the rasterizer consumes; the vector exporter emits the same
// shapes as SVG path data directly.
type Path struct {
	verbs  []pathVerb
	coords []float64
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.verbs = append(p.verbs, verbMoveTo)
	p.coords = append(p.coords, x, y)
}

// LineTo adds a line segment to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.verbs = append(p.verbs, verbLineTo)
	p.coords = append(p.coords, x, y)
}

// QuadTo adds a quadratic Bezier segment via (cx, cy) to (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.verbs = append(p.verbs, verbQuadTo)
	p.coords = append(p.coords, cx, cy, x, y)
}

// CubeTo adds a cubic Bezier segment via (c1x, c1y) and (c2x, c2y) to (x, y).
func (p *Path) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.verbs = append(p.verbs, verbCubeTo)
	p.coords = append(p.coords, c1x, c1y, c2x, c2y, x, y)
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.verbs = append(p.verbs, verbClose)
}

// arcCorner appends a quarter-circle corner arc from the current point to
// (x, y), bulging toward the control point (cx, cy).
func (p *Path) arcCorner(cx, cy, x, y, fromX, fromY float64) {
	p.CubeTo(
		fromX+(cx-fromX)*kappa, fromY+(cy-fromY)*kappa,
		x+(cx-x)*kappa, y+(cy-y)*kappa,
		x, y,
	)
}

// RoundedRect traces a rectangle with the same radius on all four corners.
func (p *Path) RoundedRect(x, y, w, h, r float64) {
	p.RoundedCell(x, y, w, h, r, CornerFlags{true, true, true, true})
}

// RoundedCell traces a rectangle rounding only the flagged corners with
// radius r; unflagged corners are square joints. A non-positive radius
// degenerates to a plain rectangle.
func (p *Path) RoundedCell(x, y, w, h, r float64, corners CornerFlags) {
	r = clamp(r, 0, min(w, h)/2)
	if r <= 0 {
		corners = CornerFlags{}
	}

	// Clockwise from the top edge.
	if corners.TopLeft {
		p.MoveTo(x+r, y)
	} else {
		p.MoveTo(x, y)
	}
	if corners.TopRight {
		p.LineTo(x+w-r, y)
		p.arcCorner(x+w, y, x+w, y+r, x+w-r, y)
	} else {
		p.LineTo(x+w, y)
	}
	if corners.BottomRight {
		p.LineTo(x+w, y+h-r)
		p.arcCorner(x+w, y+h, x+w-r, y+h, x+w, y+h-r)
	} else {
		p.LineTo(x+w, y+h)
	}
	if corners.BottomLeft {
		p.LineTo(x+r, y+h)
		p.arcCorner(x, y+h, x, y+h-r, x+r, y+h)
	} else {
		p.LineTo(x, y+h)
	}
	if corners.TopLeft {
		p.LineTo(x, y+r)
		p.arcCorner(x, y, x+r, y, x, y+r)
	}
	p.Close()
}
