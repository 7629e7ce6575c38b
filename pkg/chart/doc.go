// Package chart turns small ordered datasets into drawing primitives.
//
// # Overview
//
// A renderer maps a dataset plus a surface size onto a flat sequence of
// primitives (polylines, circles, rectangles, arcs). Renderers are pure:
// they hold only their own configuration, never mutate their input, and
// produce identical output for identical input. Everything about the
// drawing (positions, sizes, colors) is contained in the primitives, so
// any sink can reproduce the chart without consulting renderer state.
//
// Three renderers are provided:
//
//   - [LineRenderer]: one polyline through all samples plus one circular
//     marker per sample, normalized to the series' own value range
//   - [BarRenderer]: one rounded rectangle per sample, heights
//     proportional to value/max
//   - [PieRenderer]: one circular sector per slice, sweeps proportional
//     to each slice's share of the total
//
// Basic usage:
//
//	r := chart.LineRenderer{Stroke: "#4e79a7"}
//	prims := r.Render(points, geom.Size{Width: 800, Height: 600})
//
// The primitive sequence feeds any sink in the render package (SVG, PNG,
// PDF, JSON, terminal braille).
//
// # Coordinate system
//
// Surfaces use screen coordinates: the origin is the top-left corner and
// y grows downward. Angles are radians measured from the positive x
// axis; positive sweeps run clockwise on screen. Twelve o'clock is -π/2.
package chart
