package icondraft

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// redDotImage builds a w x h transparent image with an opaque red rectangle.
func redDotImage(w, h int, box image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	red := color.NRGBA{R: 255, A: 255}
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			img.SetNRGBA(x, y, red)
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// redDotPNGDataURI returns a small raster asset as a data URI.
func redDotPNGDataURI(t *testing.T) string {
	t.Helper()
	data := pngBytes(t, redDotImage(16, 16, image.Rect(4, 4, 12, 12)))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// paddedPNGDataURI returns a 256x256 asset whose visible pixels occupy only
// the centered [64,192) square, the rest transparent padding.
func paddedPNGDataURI(t *testing.T) string {
	t.Helper()
	data := pngBytes(t, redDotImage(256, 256, image.Rect(64, 64, 192, 192)))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
