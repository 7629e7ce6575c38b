package chart

import (
	"math"

	"github.com/kritika1265/chartkit/pkg/geom"
)

// Primitive is a single drawing instruction emitted by a renderer.
// Sinks type-switch over the concrete primitive types; Bounds reports
// the surface area a primitive covers so callers can frame or clip.
type Primitive interface {
	Bounds() geom.Rect
}

// Polyline is an open line strip through Points in order.
type Polyline struct {
	Points      []geom.Point
	Stroke      Color
	StrokeWidth float64
}

// Bounds returns the bounding box of all vertices. The stroke width is
// not included.
func (p Polyline) Bounds() geom.Rect {
	if len(p.Points) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, pt := range p.Points {
		r.MinX = math.Min(r.MinX, pt.X)
		r.MinY = math.Min(r.MinY, pt.Y)
		r.MaxX = math.Max(r.MaxX, pt.X)
		r.MaxY = math.Max(r.MaxY, pt.Y)
	}
	return r
}

// Circle is a filled disc, used for line-chart markers.
type Circle struct {
	Center geom.Point
	Radius float64
	Fill   Color
}

func (c Circle) Bounds() geom.Rect {
	return geom.Rect{
		MinX: c.Center.X - c.Radius, MinY: c.Center.Y - c.Radius,
		MaxX: c.Center.X + c.Radius, MaxY: c.Center.Y + c.Radius,
	}
}

// Rect is a filled axis-aligned rectangle with rounded corners. Origin
// is the top-left corner in canonical orientation; a negative Height
// (from negative data flowing through the scaling arithmetic) denotes a
// rectangle extending upward from Origin instead.
type Rect struct {
	Origin       geom.Point
	Width        float64
	Height       float64
	CornerRadius float64
	Fill         Color
}

// Bounds returns the canonical bounding box, reordering inverted
// extents.
func (r Rect) Bounds() geom.Rect {
	return geom.Rect{
		MinX: r.Origin.X, MinY: r.Origin.Y,
		MaxX: r.Origin.X + r.Width, MaxY: r.Origin.Y + r.Height,
	}.Canon()
}

// Arc is a filled circular sector (a pie wedge): the area swept from
// angle Start through Start+Sweep at the given radius around Center.
// Angles are radians from the positive x axis; positive sweeps run
// clockwise on screen.
type Arc struct {
	Center geom.Point
	Radius float64
	Start  float64
	Sweep  float64
	Fill   Color
}

// Bounds returns the bounding box of the full disc, not the exact
// sector extent.
func (a Arc) Bounds() geom.Rect {
	return geom.Rect{
		MinX: a.Center.X - a.Radius, MinY: a.Center.Y - a.Radius,
		MaxX: a.Center.X + a.Radius, MaxY: a.Center.Y + a.Radius,
	}
}
