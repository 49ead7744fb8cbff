package icondraft

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Design-space and export-size constants. All geometric document parameters
// (sizes, offsets) are authored in the fixed DesignSize square and scaled
// uniformly by exportSize/DesignSize on export.
const (
	DesignSize        = 512
	DefaultExportSize = 1024
	MinExportSize     = 16
	MaxExportSize     = 4096
)

// Offset and size bounds in design space. Out-of-range mutations are clamped
// to these, never rejected.
const (
	maxContentSize = DesignSize
	maxOffset      = DesignSize / 2
)

// Mode selects which content renderer applies to a Document.
type Mode string

const (
	ModeGlyph Mode = "glyph"
	ModeText  Mode = "text"
	ModePixel Mode = "pixel"
	ModeImage Mode = "image"
)

// FillKind selects the background fill style.
type FillKind string

const (
	FillSolid  FillKind = "solid"
	FillLinear FillKind = "linear"
	FillRadial FillKind = "radial"
)

// Background describes the styled backdrop behind the content layer.
type Background struct {
	Fill   FillKind `json:"fill"`
	ColorA RGBA     `json:"colorA"`
	ColorB RGBA     `json:"colorB"`
	// Angle is the linear-gradient direction in degrees, CSS convention:
	// 0 points up, values increase clockwise. Ignored for other fills.
	Angle float64 `json:"angle"`
	Noise float64 `json:"noise"`
	Glare float64 `json:"glare"`
	// Clip constrains the background to the rounded-square silhouette.
	Clip bool `json:"clip"`
}

// Content is the mode-specific portion of a Document. Exactly one variant is
// active at a time; the Document's JSON form tags it with its Mode so illegal
// combinations are unrepresentable.
type Content interface {
	Mode() Mode

	// clamped returns a copy with out-of-range parameters clamped to their
	// nearest valid bound.
	clamped() Content
}

// GlyphContent renders a named vector glyph resolved through a glyph.Provider.
type GlyphContent struct {
	Name    string  `json:"name"`
	Color   RGBA    `json:"color"`
	Size    float64 `json:"size"`
	OffsetY float64 `json:"offsetY"`
}

// Mode implements Content.
func (GlyphContent) Mode() Mode { return ModeGlyph }

func (c GlyphContent) clamped() Content {
	c.Size = clamp(c.Size, 0, maxContentSize)
	c.OffsetY = clamp(c.OffsetY, -maxOffset, maxOffset)
	return c
}

// TextContent renders a centered text label.
type TextContent struct {
	Text    string  `json:"text"`
	Family  string  `json:"family"`
	Weight  int     `json:"weight"`
	Color   RGBA    `json:"color"`
	Size    float64 `json:"size"`
	OffsetY float64 `json:"offsetY"`
}

// Mode implements Content.
func (TextContent) Mode() Mode { return ModeText }

func (c TextContent) clamped() Content {
	c.Size = clamp(c.Size, 0, maxContentSize)
	c.OffsetY = clamp(c.OffsetY, -maxOffset, maxOffset)
	c.Weight = int(clamp(float64(c.Weight), 100, 900))
	return c
}

// PixelContent renders a square grid of colored cells with optional
// adjacency-aware corner rounding.
type PixelContent struct {
	Grid  PixelGrid `json:"grid"`
	Color RGBA      `json:"color"`
	Size  float64   `json:"size"`
	// Rounded enables smart corner rounding; Rounding is the fillet radius
	// as a fraction of the cell size, in [0, 0.5].
	Rounded  bool    `json:"rounded"`
	Rounding float64 `json:"rounding"`
}

// Mode implements Content.
func (PixelContent) Mode() Mode { return ModePixel }

func (c PixelContent) clamped() Content {
	c.Size = clamp(c.Size, 0, maxContentSize)
	c.Rounding = clamp(c.Rounding, 0, 0.5)
	c.Grid = c.Grid.normalized()
	return c
}

// ImageContent renders an uploaded asset, scaled to fit while preserving
// aspect ratio. Vector (SVG) sources are tinted with Tint; raster sources are
// drawn unmodified.
type ImageContent struct {
	// Source is a data URI ("data:<mime>;base64,...").
	Source  string  `json:"source"`
	Tint    RGBA    `json:"tint"`
	Size    float64 `json:"size"`
	OffsetY float64 `json:"offsetY"`
}

// Mode implements Content.
func (ImageContent) Mode() Mode { return ModeImage }

func (c ImageContent) clamped() Content {
	c.Size = clamp(c.Size, 0, maxContentSize)
	c.OffsetY = clamp(c.OffsetY, -maxOffset, maxOffset)
	return c
}

// IsVector reports whether the image source is an SVG asset.
func (c ImageContent) IsVector() bool {
	mime, _, err := parseDataURI(c.Source)
	return err == nil && strings.HasPrefix(mime, "image/svg")
}

// parseDataURI splits a "data:<mime>;base64,<payload>" URI into its MIME type
// and decoded payload.
func parseDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	mime, enc, _ := strings.Cut(meta, ";")
	if enc == "base64" {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("decode data URI payload: %w", err)
		}
	} else {
		data = []byte(payload)
	}
	return mime, data, nil
}

// Document is the complete, serializable description of one icon design.
// It is an immutable value: every mutation helper returns a new Document and
// clamps out-of-range inputs to their nearest valid bound.
type Document struct {
	Background Background
	Content    Content
	ExportSize int
}

// NewDocument returns a Document with the default design: an indigo-to-cyan
// gradient background, squircle clip, and a glyph content layer.
func NewDocument() Document {
	return Document{
		Background: Background{
			Fill:   FillLinear,
			ColorA: Hex("#4F46E5"),
			ColorB: Hex("#06B6D4"),
			Angle:  45,
			Clip:   true,
		},
		Content: GlyphContent{
			Name:  "star",
			Color: White,
			Size:  256,
		},
		ExportSize: DefaultExportSize,
	}
}

// Mode returns the active content mode.
func (d Document) Mode() Mode {
	if d.Content == nil {
		return ModeGlyph
	}
	return d.Content.Mode()
}

// WithBackground returns a copy with the background replaced. Noise and glare
// opacities are clamped to [0, 1]; the gradient angle is normalized to
// [0, 360).
func (d Document) WithBackground(bg Background) Document {
	bg.Noise = clamp01(bg.Noise)
	bg.Glare = clamp01(bg.Glare)
	bg.Angle = math.Mod(bg.Angle, 360)
	if bg.Angle < 0 {
		bg.Angle += 360
	}
	if bg.Fill == "" {
		bg.Fill = FillSolid
	}
	d.Background = bg
	return d
}

// WithContent returns a copy with the content layer replaced, clamped.
func (d Document) WithContent(c Content) Document {
	if c != nil {
		c = c.clamped()
	}
	d.Content = c
	return d
}

// WithExportSize returns a copy with the requested output size, clamped to
// [MinExportSize, MaxExportSize].
func (d Document) WithExportSize(size int) Document {
	d.ExportSize = int(clamp(float64(size), MinExportSize, MaxExportSize))
	return d
}

// documentJSON is the serialized envelope. The content variant is tagged by
// the top-level mode field.
type documentJSON struct {
	Mode       Mode            `json:"mode"`
	Background Background      `json:"background"`
	Content    json.RawMessage `json:"content"`
	ExportSize int             `json:"exportSize"`
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	content, err := json.Marshal(d.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(documentJSON{
		Mode:       d.Mode(),
		Background: d.Background,
		Content:    content,
		ExportSize: d.ExportSize,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var env documentJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	var content Content
	switch env.Mode {
	case ModeGlyph:
		var c GlyphContent
		if err := json.Unmarshal(env.Content, &c); err != nil {
			return err
		}
		content = c
	case ModeText:
		var c TextContent
		if err := json.Unmarshal(env.Content, &c); err != nil {
			return err
		}
		content = c
	case ModePixel:
		var c PixelContent
		if err := json.Unmarshal(env.Content, &c); err != nil {
			return err
		}
		content = c
	case ModeImage:
		var c ImageContent
		if err := json.Unmarshal(env.Content, &c); err != nil {
			return err
		}
		content = c
	default:
		return fmt.Errorf("unknown document mode %q", env.Mode)
	}

	d.Background = env.Background
	d.Content = content
	d.ExportSize = env.ExportSize
	return nil
}
