// Package glyph resolves named vector glyphs for icondraft's glyph content
// mode. A Provider maps a glyph name to its SVG drawable; a miss means
// "render nothing", never a fatal error.
package glyph

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
)

// Drawable is a resolved vector glyph: its raw SVG markup plus the declared
// view box the markup is authored in.
type Drawable struct {
	Name   string
	Source []byte

	// View box of the SVG, used to scale the markup into a target rect.
	MinX, MinY, W, H float64
}

// Provider looks up glyphs by name.
type Provider interface {
	// Lookup returns the drawable for name, or false when unknown.
	Lookup(name string) (*Drawable, bool)
}

// parse validates SVG markup and captures its view box.
func parse(name string, src []byte) (*Drawable, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse glyph %q: %w", name, err)
	}
	d := &Drawable{
		Name:   name,
		Source: src,
		MinX:   icon.ViewBox.X,
		MinY:   icon.ViewBox.Y,
		W:      icon.ViewBox.W,
		H:      icon.ViewBox.H,
	}
	if d.W <= 0 || d.H <= 0 {
		d.MinX, d.MinY = 0, 0
		d.W, d.H = 512, 512
	}
	return d, nil
}

// Registry is an in-memory Provider populated through Register calls.
// The zero value is usable.
type Registry struct {
	glyphs map[string]*Drawable
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{glyphs: make(map[string]*Drawable)}
}

// Register adds a named glyph from SVG markup. Markup that fails to parse is
// rejected so lookups never hand out undrawable glyphs.
func (r *Registry) Register(name string, src []byte) error {
	d, err := parse(name, src)
	if err != nil {
		return err
	}
	if r.glyphs == nil {
		r.glyphs = make(map[string]*Drawable)
	}
	r.glyphs[name] = d
	return nil
}

// Lookup implements Provider.
func (r *Registry) Lookup(name string) (*Drawable, bool) {
	d, ok := r.glyphs[name]
	return d, ok
}

// Dir is a Provider that reads "<name>.svg" files under a root directory.
type Dir struct {
	Root string
}

// Lookup implements Provider. Any read or parse failure is a miss.
func (d Dir) Lookup(name string) (*Drawable, bool) {
	// Reject names that could escape the root.
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, false
	}
	src, err := os.ReadFile(filepath.Join(d.Root, name+".svg"))
	if err != nil {
		return nil, false
	}
	g, err := parse(name, src)
	if err != nil {
		return nil, false
	}
	return g, true
}
