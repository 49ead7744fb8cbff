package icondraft

import (
	"math"
	"testing"
)

const sceneEpsilon = 1e-9

func rectsClose(a, b Rect, eps float64) bool {
	return math.Abs(a.MinX-b.MinX) < eps && math.Abs(a.MinY-b.MinY) < eps &&
		math.Abs(a.MaxX-b.MaxX) < eps && math.Abs(a.MaxY-b.MaxY) < eps
}

func TestLinearGradientPaintColorAt(t *testing.T) {
	p := LinearGradientPaint{X1: 0, Y1: 0, X2: 100, Y2: 0, A: Black, B: White}
	tests := []struct {
		name string
		x    float64
		want float64 // expected gray level
	}{
		{"start", 0, 0},
		{"middle", 50, 0.5},
		{"end", 100, 1},
		{"before start pads", -50, 0},
		{"past end pads", 200, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ColorAt(tt.x, 40)
			if math.Abs(got.R-tt.want) > 0.001 {
				t.Errorf("ColorAt(%v).R = %v, want %v", tt.x, got.R, tt.want)
			}
		})
	}
}

func TestLinearGradientZeroLength(t *testing.T) {
	p := LinearGradientPaint{X1: 5, Y1: 5, X2: 5, Y2: 5, A: White, B: Black}
	if got := p.ColorAt(50, 50); got != White {
		t.Errorf("zero-length gradient = %v, want first color", got)
	}
}

func TestRadialGradientPaintColorAt(t *testing.T) {
	p := RadialGradientPaint{CX: 0, CY: 0, R: 100, A: White, B: Black}
	if got := p.ColorAt(0, 0); math.Abs(got.R-1) > 0.001 {
		t.Errorf("center = %v, want white", got)
	}
	if got := p.ColorAt(0, 50); math.Abs(got.R-0.5) > 0.001 {
		t.Errorf("half radius R = %v, want 0.5", got.R)
	}
	if got := p.ColorAt(300, 0); math.Abs(got.R) > 0.001 {
		t.Errorf("beyond radius = %v, want outer color", got)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b := Rect{MinX: 5, MinY: -5, MaxX: 20, MaxY: 8}
	got := a.Union(b)
	want := Rect{MinX: 0, MinY: -5, MaxX: 20, MaxY: 10}
	if !rectsClose(got, want, sceneEpsilon) {
		t.Errorf("Union = %+v, want %+v", got, want)
	}

	var empty Rect
	if got := empty.Union(a); !rectsClose(got, a, sceneEpsilon) {
		t.Errorf("empty Union a = %+v, want %+v", got, a)
	}
}

func TestSceneContentBounds(t *testing.T) {
	s := &Scene{Size: 512}
	if _, ok := s.ContentBounds(); ok {
		t.Error("empty scene should have no content bounds")
	}

	s.Nodes = append(s.Nodes,
		CellNode{X: 10, Y: 20, W: 30, H: 30},
		CellNode{X: 100, Y: 5, W: 10, H: 10},
	)
	got, ok := s.ContentBounds()
	if !ok {
		t.Fatal("expected content bounds")
	}
	want := Rect{MinX: 10, MinY: 5, MaxX: 110, MaxY: 50}
	if !rectsClose(got, want, sceneEpsilon) {
		t.Errorf("ContentBounds = %+v, want %+v", got, want)
	}
}

func TestTextNodeBoundsCenteredOnAnchor(t *testing.T) {
	n := TextNode{X: 256, Y: 256, Size: 100, Text: "abcd"}
	b := n.Bounds()
	if math.Abs((b.MinX+b.MaxX)/2-256) > sceneEpsilon {
		t.Error("text bounds not horizontally centered on anchor")
	}
	if math.Abs((b.MinY+b.MaxY)/2-256) > sceneEpsilon {
		t.Error("text bounds not vertically centered on anchor")
	}
	wantW := 4 * 100 * textWidthRatio
	if math.Abs(b.W()-wantW) > sceneEpsilon {
		t.Errorf("approx width = %v, want %v", b.W(), wantW)
	}
}
