package icondraft

import (
	"bytes"
	"math"
	"testing"
)

func TestExportContentOnlyEmptyGridUncropped(t *testing.T) {
	doc := NewDocument().
		WithContent(PixelContent{Grid: NewPixelGrid(12), Size: 256}).
		WithExportSize(512)

	scene := Compose(doc, 512, ScopeContent, nil)
	pm := Render(scene)
	if pm.Width() != 512 || pm.Height() != 512 {
		t.Fatalf("buffer = %dx%d, want 512x512", pm.Width(), pm.Height())
	}
	if _, ok := pm.OpaqueBounds(); ok {
		t.Error("empty grid must render a fully transparent buffer")
	}

	// The export pipeline must hand the buffer back uncropped.
	art, err := ExportRaster(doc, ExportOptions{Format: FormatPNG, Scope: ScopeContent})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(art.Data) == 0 {
		t.Error("empty-content export must still produce an artifact")
	}
}

func TestRenderSingleCenterCell(t *testing.T) {
	grid := NewPixelGrid(12).Set(5, 5, "#FF0000")
	doc := NewDocument().WithContent(PixelContent{
		Grid: grid, Size: 256, Rounded: true, Rounding: 0.4,
	})
	scene := Compose(doc, 512, ScopeContent, nil)
	pm := Render(scene)

	box, ok := pm.OpaqueBounds()
	if !ok {
		t.Fatal("expected visible pixels")
	}

	// One cell of a 12-cell grid at render size 256: side 256/12 ~ 21.3px.
	wantSide := 256.0 / 12
	if math.Abs(float64(box.Dx())-wantSide) > 2 || math.Abs(float64(box.Dy())-wantSide) > 2 {
		t.Errorf("content box = %dx%d, want ~%.1f square", box.Dx(), box.Dy(), wantSide)
	}

	// Center of the cell is solid red.
	center := pm.GetPixel((box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2)
	if center.A < 0.99 || center.R < 0.99 || center.G > 0.01 || center.B > 0.01 {
		t.Errorf("center pixel = %+v, want opaque red", center)
	}

	// With a 0.4 fillet the box corners fall outside the rounded outline.
	corner := pm.GetPixel(box.Min.X, box.Min.Y)
	if corner.A > 0.1 {
		t.Errorf("corner pixel alpha = %v, want transparent (rounded corner)", corner.A)
	}
}

func TestRenderZeroOverlaysByteEqual(t *testing.T) {
	base := NewDocument().WithContent(TextContent{Text: "Z", Size: 200, Color: White})

	explicit := base.WithBackground(Background{
		Fill: FillSolid, ColorA: Hex("#12344A"), Noise: 0, Glare: 0, Clip: true,
	})
	omitted := base.WithBackground(Background{
		Fill: FillSolid, ColorA: Hex("#12344A"), Clip: true,
	})

	a, err := ExportRaster(explicit, ExportOptions{Format: FormatPNG, Size: 128})
	if err != nil {
		t.Fatalf("export explicit: %v", err)
	}
	b, err := ExportRaster(omitted, ExportOptions{Format: FormatPNG, Size: 128})
	if err != nil {
		t.Fatalf("export omitted: %v", err)
	}
	if !bytes.Equal(a.Data, b.Data) {
		t.Error("zero-opacity overlays must be byte-identical to omitted overlays")
	}
}

func TestRenderNoiseIsDeterministic(t *testing.T) {
	doc := NewDocument().WithBackground(Background{
		Fill: FillSolid, ColorA: Hex("#444444"), Noise: 0.3, Clip: true,
	})
	a, err := ExportRaster(doc, ExportOptions{Format: FormatPNG, Size: 96})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	b, err := ExportRaster(doc, ExportOptions{Format: FormatPNG, Size: 96})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.Equal(a.Data, b.Data) {
		t.Error("repeat exports of the same document must be byte-identical")
	}
}

func TestRenderSquircleClipRoundsBackground(t *testing.T) {
	doc := NewDocument().WithBackground(Background{
		Fill: FillSolid, ColorA: Black, Clip: true,
	}).WithContent(TextContent{})
	scene := Compose(doc, 256, ScopeFull, nil)
	pm := Render(scene)

	if a := pm.GetPixel(0, 0).A; a > 0.05 {
		t.Errorf("outer corner alpha = %v, want clipped away", a)
	}
	if a := pm.GetPixel(128, 128).A; a < 0.99 {
		t.Errorf("center alpha = %v, want opaque", a)
	}
	if a := pm.GetPixel(128, 2).A; a < 0.99 {
		t.Errorf("top edge midpoint alpha = %v, want opaque", a)
	}
}

func TestRenderUnclippedBackgroundFillsSquare(t *testing.T) {
	doc := NewDocument().WithBackground(Background{
		Fill: FillSolid, ColorA: Hex("#00FF00"), Clip: false,
	}).WithContent(TextContent{})
	scene := Compose(doc, 64, ScopeFull, nil)
	pm := Render(scene)

	for _, p := range [][2]int{{0, 0}, {63, 0}, {0, 63}, {63, 63}, {32, 32}} {
		c := pm.GetPixel(p[0], p[1])
		if c.A < 0.99 || c.G < 0.99 {
			t.Errorf("pixel (%d,%d) = %+v, want opaque green", p[0], p[1], c)
		}
	}
}

func TestRenderGlareBrightensTopCenter(t *testing.T) {
	bg := Background{Fill: FillSolid, ColorA: Hex("#202020"), Clip: false}
	plain := Render(Compose(NewDocument().WithBackground(bg).WithContent(TextContent{}), 128, ScopeFull, nil))
	bg.Glare = 0.8
	glared := Render(Compose(NewDocument().WithBackground(bg).WithContent(TextContent{}), 128, ScopeFull, nil))

	top := glared.GetPixel(64, 2)
	base := plain.GetPixel(64, 2)
	if top.R <= base.R {
		t.Error("glare must brighten the top-center region")
	}

	// The effect fades with distance from the anchor.
	bottom := glared.GetPixel(64, 126)
	if bottom.R >= top.R {
		t.Error("glare must fade toward the bottom")
	}
}

func TestRasterAndVectorContentBoundsAgree(t *testing.T) {
	grid := NewPixelGrid(12).
		Set(2, 3, "#FF0000").
		Set(2, 4, "#00FF00").
		Set(9, 8, "#0000FF")
	glyphs := testProvider(t)

	tests := []struct {
		name string
		c    Content
		tol  float64
	}{
		{"pixel", PixelContent{Grid: grid, Size: 300, Rounded: true, Rounding: 0.3}, 0.01 * 512},
		{"glyph", GlyphContent{Name: "square", Color: White, Size: 256}, 0.01 * 512},
		// Raster image bounds track the asset's ink box, so transparent
		// internal padding never widens them. The asset blits 1:1 here,
		// keeping resampling spread out of the comparison.
		{"image", ImageContent{Source: paddedPNGDataURI(t), Size: 256}, 0.01 * 512},
		// Text bounds use the fixed average-advance ratio, a coarse
		// stand-in for real face metrics, so the budget is wider.
		{"text", TextContent{Text: "HI", Color: White, Size: 200}, 0.15 * 512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument().WithContent(tt.c)
			scene := Compose(doc, 512, ScopeContent, glyphs)

			analytic, ok := scene.ContentBounds()
			if !ok {
				t.Fatal("expected analytic bounds")
			}
			pm := Render(scene)
			raster, ok := pm.OpaqueBounds()
			if !ok {
				t.Fatal("expected rendered pixels")
			}

			// The two export paths must agree within the budget, or
			// cropped exports shift between formats.
			if math.Abs(float64(raster.Min.X)-analytic.MinX) > tt.tol ||
				math.Abs(float64(raster.Min.Y)-analytic.MinY) > tt.tol ||
				math.Abs(float64(raster.Max.X)-analytic.MaxX) > tt.tol ||
				math.Abs(float64(raster.Max.Y)-analytic.MaxY) > tt.tol {
				t.Errorf("raster box %v disagrees with analytic box %+v", raster, analytic)
			}
		})
	}
}
