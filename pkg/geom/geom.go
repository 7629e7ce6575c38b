// Package geom provides the coordinate arithmetic shared by the chart
// renderers: normalization of data values into the unit interval and
// scaling of unit fractions onto a drawing surface whose y axis grows
// downward.
package geom

// Point is a position on a drawing surface in user units (typically
// pixels in SVG). The origin is the top-left corner.
type Point struct {
	X, Y float64
}

// Size is the extent of a drawing surface in user units.
type Size struct {
	Width, Height float64
}

// Empty reports whether the surface has no drawable area. Renderers
// emit nothing onto an empty surface.
func (s Size) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// Rect is an axis-aligned rectangle in surface coordinates. Min refers
// to the top-left corner, Max to the bottom-right.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return (r.MinX + r.MaxX) / 2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return (r.MinY + r.MaxY) / 2 }

// Canon returns the rectangle with its corners reordered so that both
// spans are non-negative. Scaling arithmetic lets negative data flow
// through untouched, which can produce inverted rectangles; presentation
// backends canonicalize before drawing.
func (r Rect) Canon() Rect {
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}
	return r
}

// Normalize maps v into the unit interval relative to [min, max].
// A degenerate range (max == min) maps every value to 0.5 so that
// single-valued series render centered instead of dividing by zero.
// The result is unclamped: values outside the range map outside [0, 1].
func Normalize(v, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	return (v - min) / (max - min)
}

// Scale converts a unit fraction into a distance along an axis of the
// given length.
func Scale(frac, length float64) float64 {
	return frac * length
}

// ScaleInverted converts a unit fraction into a y coordinate on a
// surface of the given height. Surfaces place the origin at the top,
// so larger fractions map to smaller y values: 0 lands on the bottom
// edge and 1 on the top edge.
func ScaleInverted(frac, length float64) float64 {
	return length - frac*length
}
