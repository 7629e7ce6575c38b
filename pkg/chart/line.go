package chart

import "github.com/kritika1265/chartkit/pkg/geom"

// LineRenderer draws an ordered series as a single polyline with one
// circular marker per sample. The vertical axis is normalized to the
// series' own value range, so the smallest value sits on the bottom
// edge and the largest on the top edge.
type LineRenderer struct {
	Stroke       Color   // polyline and marker color; empty selects DefaultColor
	StrokeWidth  float64 // zero selects DefaultStrokeWidth
	MarkerRadius float64 // zero selects DefaultMarkerRadius
}

// Render maps points onto the surface and returns one Polyline followed
// by len(points) marker Circles, in that order. A nil or empty series,
// or an empty surface, renders nothing. A flat series (all values
// equal) renders at mid-height rather than collapsing to an edge.
func (r LineRenderer) Render(points []Point, size geom.Size) []Primitive {
	if len(points) == 0 || size.Empty() {
		return nil
	}

	stroke := r.Stroke
	if stroke == "" {
		stroke = DefaultColor
	}
	width := r.StrokeWidth
	if width <= 0 {
		width = DefaultStrokeWidth
	}
	radius := r.MarkerRadius
	if radius <= 0 {
		radius = DefaultMarkerRadius
	}

	min, max := valueRange(points)
	vertices := make([]geom.Point, len(points))
	for i, p := range points {
		vertices[i] = geom.Point{
			X: slotX(i, len(points), size.Width),
			Y: geom.ScaleInverted(geom.Normalize(p.Value, min, max), size.Height),
		}
	}

	prims := make([]Primitive, 0, len(points)+1)
	prims = append(prims, Polyline{Points: vertices, Stroke: stroke, StrokeWidth: width})
	for _, v := range vertices {
		prims = append(prims, Circle{Center: v, Radius: radius, Fill: stroke})
	}
	return prims
}

// slotX spreads index i across the full width. A single-point series
// has no horizontal extent to divide, so it centers instead.
func slotX(i, n int, width float64) float64 {
	if n < 2 {
		return width / 2
	}
	return geom.Scale(float64(i)/float64(n-1), width)
}

// valueRange returns the smallest and largest value in the series.
func valueRange(points []Point) (min, max float64) {
	min, max = points[0].Value, points[0].Value
	for _, p := range points[1:] {
		if p.Value < min {
			min = p.Value
		}
		if p.Value > max {
			max = p.Value
		}
	}
	return min, max
}
