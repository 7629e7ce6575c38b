package render

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/kritika1265/chartkit/pkg/chart"
	"github.com/kritika1265/chartkit/pkg/geom"
)

// fullCircle is the sweep at which a sector degenerates into a disc.
// SVG arc commands cannot draw a path whose endpoints coincide, so
// sweeps at or beyond this render as a circle element instead.
const fullCircle = 2*math.Pi - 1e-9

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	background string
}

// WithTitle draws a centered title above the chart area.
func WithTitle(title string) SVGOption {
	return func(r *svgRenderer) { r.title = title }
}

// WithBackground fills the surface with a color before drawing.
// Without it the SVG background is transparent.
func WithBackground(color chart.Color) SVGOption {
	return func(r *svgRenderer) { r.background = string(color) }
}

// SVG serializes primitives to an SVG document sized to the surface
// the primitives were rendered for.
func SVG(prims []chart.Primitive, size geom.Size, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		size.Width, size.Height, size.Width, size.Height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			size.Width, size.Height, r.background)
	}

	for _, p := range prims {
		writeSVGPrimitive(&buf, p)
	}

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="16" text-anchor="middle" font-family="sans-serif" font-size="14">%s</text>`+"\n",
			size.Width/2, html.EscapeString(r.title))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeSVGPrimitive(buf *bytes.Buffer, p chart.Primitive) {
	switch v := p.(type) {
	case chart.Polyline:
		buf.WriteString(`  <polyline points="`)
		for i, pt := range v.Points {
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(buf, "%.2f,%.2f", pt.X, pt.Y)
		}
		fmt.Fprintf(buf, `" fill="none" stroke="%s" stroke-width="%.2f" stroke-linejoin="round"/>`+"\n",
			v.Stroke, v.StrokeWidth)

	case chart.Circle:
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			v.Center.X, v.Center.Y, v.Radius, v.Fill)

	case chart.Rect:
		b := v.Bounds()
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s"/>`+"\n",
			b.MinX, b.MinY, b.Width(), b.Height(), v.CornerRadius, v.Fill)

	case chart.Arc:
		if v.Sweep >= fullCircle {
			fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
				v.Center.X, v.Center.Y, v.Radius, v.Fill)
			return
		}
		fmt.Fprintf(buf, `  <path d="%s" fill="%s"/>`+"\n", sectorPath(v), v.Fill)
	}
}

// sectorPath builds the path for a pie wedge: move to the center, line
// out to the sector start, arc to the sector end, close back to center.
// Sweeps over half a turn need the SVG large-arc flag.
func sectorPath(a chart.Arc) string {
	x1 := a.Center.X + a.Radius*math.Cos(a.Start)
	y1 := a.Center.Y + a.Radius*math.Sin(a.Start)
	end := a.Start + a.Sweep
	x2 := a.Center.X + a.Radius*math.Cos(end)
	y2 := a.Center.Y + a.Radius*math.Sin(end)

	largeArc := 0
	if a.Sweep > math.Pi {
		largeArc = 1
	}

	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		a.Center.X, a.Center.Y, x1, y1, a.Radius, a.Radius, largeArc, x2, y2)
}

