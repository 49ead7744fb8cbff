// Command icondraft composes an icon design document and exports it as a
// raster or vector artifact.
//
// Usage:
//
//	icondraft -init > design.json
//	icondraft -in design.json -format png -size 1024 -out icon.png
//	icondraft -in design.json -format svg -content-only -out icon.svg
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/icondraft/icondraft"
	"github.com/icondraft/icondraft/glyph"
)

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

var (
	source      = flag.String("in", pipeName, "Design document JSON")
	destination = flag.String("out", "", "Output file (default: suggested filename)")
	format      = flag.String("format", "png", "Export format: png, jpeg, webp, svg")
	size        = flag.Int("size", 0, "Output size in pixels (default: document export size)")
	contentOnly = flag.Bool("content-only", false, "Omit the background and crop to content")
	glyphDir    = flag.String("glyphs", "", "Directory of <name>.svg glyph files")
	emitDefault = flag.Bool("init", false, "Print a default design document and exit")
	verbose     = flag.Bool("v", false, "Enable debug logging")
)

func main() {
	log.SetPrefix("icondraft: ")
	log.SetFlags(0)
	flag.Parse()

	if *verbose {
		icondraft.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if *emitDefault {
		out, err := json.MarshalIndent(icondraft.NewDocument(), "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(out))
		return
	}

	doc, err := readDocument(*source)
	if err != nil {
		log.Fatal(err)
	}

	opts := icondraft.ExportOptions{
		Format: icondraft.Format(*format),
		Size:   *size,
	}
	if *contentOnly {
		opts.Scope = icondraft.ScopeContent
	}
	if *glyphDir != "" {
		opts.Glyphs = glyph.Dir{Root: *glyphDir}
	}

	art, err := icondraft.Export(doc, opts)
	if err != nil {
		log.Fatal(err)
	}
	if art.TransparencyLost {
		log.Println("warning: transparency flattened for", *format)
	}

	dest := *destination
	if dest == "" {
		dest = art.Filename
	}
	if dest == pipeName {
		if _, err := os.Stdout.Write(art.Data); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := os.WriteFile(dest, art.Data, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Println("wrote", dest)
}

func readDocument(path string) (icondraft.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == pipeName {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return icondraft.Document{}, fmt.Errorf("read document: %w", err)
	}
	var doc icondraft.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return icondraft.Document{}, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}
