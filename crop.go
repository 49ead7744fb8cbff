package icondraft

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
)

// Whitespace-crop thresholds: a crop is only suggested when enough of the
// upload is transparent padding and the trim is visually meaningful.
const (
	cropAlphaThreshold  = 10
	cropRatioThreshold  = 0.08
	cropMarginThreshold = 6 // px, per side
)

// CropSuggestion offers a trimmed variant of an uploaded raster asset. The
// caller decides between Original and Cropped; the analyzer never applies
// the crop itself.
type CropSuggestion struct {
	Original image.Image
	Cropped  image.Image
	// Bounds is the content box within Original.
	Bounds          image.Rectangle
	WhitespaceRatio float64
}

// AnalyzeWhitespace inspects an uploaded asset's alpha channel and suggests
// trimming transparent padding. It returns nil (no suggestion) for vector
// assets, fully transparent images, and uploads whose padding falls below
// the thresholds. A decode failure rejects just this upload step.
func AnalyzeWhitespace(data []byte, mime string) (*CropSuggestion, error) {
	if strings.HasPrefix(mime, "image/svg") {
		// Vector padding is not pixel-measurable; bypass.
		return nil, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode upload: %w", err)
	}

	b := img.Bounds()
	box, found := contentBox(img, cropAlphaThreshold)
	if !found {
		return nil, nil
	}

	total := float64(b.Dx() * b.Dy())
	ratio := 1 - float64(box.Dx()*box.Dy())/total
	margin := max(
		box.Min.X-b.Min.X, b.Max.X-box.Max.X,
		box.Min.Y-b.Min.Y, b.Max.Y-box.Max.Y)
	if ratio <= cropRatioThreshold || margin <= cropMarginThreshold {
		return nil, nil
	}

	cropped := image.NewNRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.Draw(cropped, cropped.Rect, img, box.Min, draw.Src)

	logger().Debug("whitespace crop suggested",
		"ratio", ratio, "box", box.String())
	return &CropSuggestion{
		Original:        img,
		Cropped:         cropped,
		Bounds:          box,
		WhitespaceRatio: ratio,
	}, nil
}

// contentBox finds the bounding box of pixels whose alpha exceeds the
// threshold.
func contentBox(img image.Image, threshold uint8) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if uint8(a>>8) <= threshold {
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

// ToDataURI encodes an image as a PNG data URI, the form ImageContent.Source
// carries.
func ToDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode data URI: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
