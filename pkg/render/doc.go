// Package render turns chart primitives into output artifacts.
//
// # Overview
//
// Every sink takes the primitives a renderer produced plus the surface
// size they were laid out for, and serializes them to one format:
//
//   - [SVG]: vector markup, the canonical artifact
//   - [PNG]: raster image drawn in-process
//   - [PDF]: vector document converted from SVG
//   - [JSON]: the primitive list as structured data
//   - [Term]: a braille-cell sketch for terminal preview
//
// Primitives carry their own colors and the surface coordinate system
// is already screen-oriented (y grows downward), so sinks translate
// geometry one-to-one without consulting chart semantics.
//
// # Format Conversion
//
// PDF output shells out to the external rsvg-convert tool (from
// librsvg); [ToPDF] converts any SVG document. PNG rasterizes
// in-process and needs no external tooling.
//
//	prims := renderer.Render(points, size)
//	svg := render.SVG(prims, size, render.WithTitle("Revenue"))
//	pdf, err := render.PDF(prims, size)
//	png, err := render.PNG(prims, size, render.WithScale(2.0))
package render
