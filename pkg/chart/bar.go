package chart

import "github.com/kritika1265/chartkit/pkg/geom"

// BarRenderer draws an ordered series as one rounded rectangle per
// sample. Heights are proportional to value/max, so the largest value
// spans the full surface height and the baseline is the bottom edge.
type BarRenderer struct {
	Fill         Color   // bar color; empty selects DefaultColor
	BarWidth     float64 // fraction of a slot occupied by the bar; zero selects DefaultBarWidth
	CornerRadius float64 // zero selects DefaultCornerRadius
}

// Render returns one Rect per point, left to right in input order. The
// surface width divides into len(points) equal slots with each bar
// centered in its slot. When the series maximum is zero or negative
// (an all-zero or entirely non-positive dataset) every bar has zero
// height; negative values alongside a positive maximum flow through
// the proportional arithmetic untouched and extend below the baseline.
// A nil or empty series, or an empty surface, renders nothing.
func (r BarRenderer) Render(points []Point, size geom.Size) []Primitive {
	if len(points) == 0 || size.Empty() {
		return nil
	}

	fill := r.Fill
	if fill == "" {
		fill = DefaultColor
	}
	frac := r.BarWidth
	if frac <= 0 {
		frac = DefaultBarWidth
	}
	corner := r.CornerRadius
	if corner <= 0 {
		corner = DefaultCornerRadius
	}

	max := 0.0
	for _, p := range points {
		if p.Value > max {
			max = p.Value
		}
	}

	slot := size.Width / float64(len(points))
	barWidth := frac * slot

	prims := make([]Primitive, 0, len(points))
	for i, p := range points {
		var height float64
		if max > 0 {
			height = geom.Scale(p.Value/max, size.Height)
		}
		prims = append(prims, Rect{
			Origin: geom.Point{
				X: float64(i)*slot + (slot-barWidth)/2,
				Y: size.Height - height,
			},
			Width:        barWidth,
			Height:       height,
			CornerRadius: corner,
			Fill:         fill,
		})
	}
	return prims
}
