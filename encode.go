package icondraft

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/HugoSmits86/nativewebp"

	"github.com/icondraft/icondraft/glyph"
)

// Format identifies an export artifact encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	// FormatWEBP encodes losslessly; the quality knob does not apply.
	FormatWEBP Format = "webp"
	FormatSVG  Format = "svg"
)

// jpegQuality matches the fixed 0.9 quality of the lossy raster formats.
const jpegQuality = 90

// Artifact is a finished export: encoded bytes plus a suggested filename.
// Delivery (download prompt, file save) is the caller's concern.
type Artifact struct {
	Data     []byte
	Filename string
	MIME     string

	// TransparencyLost is set when an opaque-only format (JPEG) discarded
	// alpha. The export proceeds; flattening is onto white.
	TransparencyLost bool
}

// ExportOptions configures one export invocation.
type ExportOptions struct {
	Format Format
	// Size overrides the document's export size when positive.
	Size   int
	Scope  Scope
	Glyphs glyph.Provider
}

// size resolves the output size, clamped so the filename, scene, and buffer
// all agree on the same number.
func (o ExportOptions) size(doc Document) int {
	n := DefaultExportSize
	if o.Size > 0 {
		n = o.Size
	} else if doc.ExportSize > 0 {
		n = doc.ExportSize
	}
	return int(clamp(float64(n), MinExportSize, MaxExportSize))
}

// Export renders the document and encodes it in the requested format. Every
// invocation composes its own scene from the immutable document snapshot, so
// concurrent exports never share state.
func Export(doc Document, opts ExportOptions) (*Artifact, error) {
	if opts.Format == FormatSVG {
		return ExportSVG(doc, opts)
	}
	return ExportRaster(doc, opts)
}

// ExportRaster renders the document into a pixel buffer and encodes it.
// Content-only scope crops the buffer to the visible bounding box; a fully
// transparent buffer is returned uncropped.
func ExportRaster(doc Document, opts ExportOptions) (*Artifact, error) {
	size := opts.size(doc)
	scene := Compose(doc, size, opts.Scope, opts.Glyphs)
	pm := Render(scene)

	if opts.Scope == ScopeContent {
		if box, ok := pm.OpaqueBounds(); ok {
			logger().Debug("content crop", "box", box.String())
			pm = pm.Crop(box)
		}
	}

	format := opts.Format
	if format == "" {
		format = FormatPNG
	}

	var buf bytes.Buffer
	art := &Artifact{Filename: fmt.Sprintf("icon-%d.%s", size, format)}
	switch format {
	case FormatPNG:
		art.MIME = "image/png"
		if err := png.Encode(&buf, pm.Image()); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case FormatJPEG:
		art.MIME = "image/jpeg"
		img := pm.Image()
		if hasTransparency(pm) {
			art.TransparencyLost = true
			logger().Warn("jpeg export discards transparency, flattening onto white")
			img = flattenOntoWhite(img)
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case FormatWEBP:
		art.MIME = "image/webp"
		if err := nativewebp.Encode(&buf, pm.Image(), nil); err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported raster format %q", format)
	}
	art.Data = buf.Bytes()
	return art, nil
}

func hasTransparency(pm *Pixmap) bool {
	pix := pm.Image().Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 255 {
			return true
		}
	}
	return false
}

func flattenOntoWhite(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Rect)
	draw.Draw(out, out.Rect, image.NewUniform(White.Color()), image.Point{}, draw.Src)
	draw.Draw(out, out.Rect, img, img.Rect.Min, draw.Over)
	return out
}
