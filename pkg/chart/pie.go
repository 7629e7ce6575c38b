package chart

import (
	"math"

	"github.com/kritika1265/chartkit/pkg/geom"
)

// PieRenderer draws a value series as a full circle of sector arcs
// centered on the surface, with the diameter fitting the smaller
// dimension.
type PieRenderer struct {
	Palette Palette // colors for slices without their own; empty selects Tableau10
}

// Render returns one Arc per slice in input order. The first arc starts
// at twelve o'clock and successive arcs run clockwise, each sweeping the
// slice's share of the value total, so the sweeps of a rendered series
// always close the full circle. A series whose values sum to zero or
// less renders nothing, as does a nil or empty series or an empty
// surface.
func (r PieRenderer) Render(slices []Slice, size geom.Size) []Primitive {
	if len(slices) == 0 || size.Empty() {
		return nil
	}

	total := 0.0
	for _, s := range slices {
		total += s.Value
	}
	if total <= 0 {
		return nil
	}

	palette := r.Palette
	if len(palette) == 0 {
		palette = Tableau10
	}

	center := geom.Point{X: size.Width / 2, Y: size.Height / 2}
	radius := math.Min(size.Width, size.Height) / 2

	prims := make([]Primitive, 0, len(slices))
	start := -math.Pi / 2 // twelve o'clock
	for i, s := range slices {
		fill := s.Color
		if fill == "" {
			fill = palette.Color(i)
		}
		sweep := geom.Scale(s.Value/total, 2*math.Pi)
		prims = append(prims, Arc{
			Center: center,
			Radius: radius,
			Start:  start,
			Sweep:  sweep,
			Fill:   fill,
		})
		start += sweep
	}
	return prims
}
