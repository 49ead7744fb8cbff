package glyph

import (
	"os"
	"path/filepath"
	"testing"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M4 4h16v16H4z"/></svg>`

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("square", []byte(squareSVG)); err != nil {
		t.Fatalf("register: %v", err)
	}

	d, ok := r.Lookup("square")
	if !ok {
		t.Fatal("registered glyph not found")
	}
	if d.Name != "square" || d.W != 24 || d.H != 24 {
		t.Errorf("drawable = %+v, want 24x24 square", d)
	}

	if _, ok := r.Lookup("ghost"); ok {
		t.Error("unknown name must miss")
	}
}

func TestRegistryRejectsInvalidSVG(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("bad", []byte("not svg at all <<<")); err == nil {
		t.Error("invalid markup must be rejected")
	}
	if _, ok := r.Lookup("bad"); ok {
		t.Error("rejected glyph must not be registered")
	}
}

func TestRegistryZeroValueUsable(t *testing.T) {
	var r Registry
	if err := r.Register("square", []byte(squareSVG)); err != nil {
		t.Fatalf("register on zero value: %v", err)
	}
	if _, ok := r.Lookup("square"); !ok {
		t.Error("lookup after zero-value register failed")
	}
}

func TestDirLookup(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "square.svg"), []byte(squareSVG), 0o644); err != nil {
		t.Fatal(err)
	}

	p := Dir{Root: root}
	if d, ok := p.Lookup("square"); !ok || d.W != 24 {
		t.Errorf("Lookup(square) = (%+v, %v), want hit", d, ok)
	}
	if _, ok := p.Lookup("missing"); ok {
		t.Error("missing file must miss")
	}
}

func TestDirRejectsPathEscapes(t *testing.T) {
	p := Dir{Root: t.TempDir()}
	for _, name := range []string{"", "../etc/passwd", `..\evil`, "a/b"} {
		if _, ok := p.Lookup(name); ok {
			t.Errorf("Lookup(%q) must miss", name)
		}
	}
}
