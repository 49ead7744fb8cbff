// Package icondraft composes square app-icon designs and exports them at
// arbitrary resolution in raster (PNG, JPEG, WEBP) and vector (SVG) form.
//
// # Overview
//
// A design is a [Document]: an immutable value holding a styled background
// (solid or gradient fill, optional noise and glare overlays, optional
// rounded-square clip) and one content layer — a named vector glyph, a text
// label, a pixel grid, or an uploaded image. All geometry is authored in a
// fixed 512x512 design space and scaled uniformly on export.
//
//	doc := icondraft.NewDocument().
//	    WithContent(icondraft.TextContent{Text: "Go", Size: 280, Weight: 700, Color: icondraft.White})
//
//	art, err := icondraft.Export(doc, icondraft.ExportOptions{Format: icondraft.FormatPNG})
//
// # Architecture
//
// Both export paths consume one shared intermediate: [Compose] lowers a
// Document into a [Scene] (shapes, paints, placed content in output-space
// coordinates), which [Render] rasterizes and [MarshalSVG] serializes. The
// geometry rules — squircle radius, gradient lines, pixel-cell corner
// rounding, content-only cropping — therefore hold identically in both
// outputs.
//
// Document revisions are tracked by [History], a linear undo/redo log.
// Missing content (an unknown glyph, an empty grid, an undecodable upload)
// renders as an empty layer; nothing in this package is fatal to the
// process.
//
// # Logging
//
// The package is silent by default. Call [SetLogger] to observe the export
// pipelines.
package icondraft
