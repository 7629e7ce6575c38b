package render

import (
	"encoding/json"

	"github.com/kritika1265/chartkit/pkg/chart"
	"github.com/kritika1265/chartkit/pkg/geom"
)

// JSONOption configures JSON rendering via [JSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	kind  string
	title string
}

// WithJSONKind records the chart kind in the JSON output.
func WithJSONKind(kind chart.Kind) JSONOption {
	return func(r *jsonRenderer) { r.kind = string(kind) }
}

// WithJSONTitle records the chart title in the JSON output.
func WithJSONTitle(title string) JSONOption {
	return func(r *jsonRenderer) { r.title = title }
}

type jsonOutput struct {
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Kind       string          `json:"kind,omitempty"`
	Title      string          `json:"title,omitempty"`
	Primitives []jsonPrimitive `json:"primitives"`
}

// jsonPrimitive is a tagged union: Type names the variant and exactly
// one of the pointer fields is set. Keeping a single list preserves the
// renderer's paint order.
type jsonPrimitive struct {
	Type     string        `json:"type"`
	Polyline *jsonPolyline `json:"polyline,omitempty"`
	Circle   *jsonCircle   `json:"circle,omitempty"`
	Rect     *jsonRect     `json:"rect,omitempty"`
	Arc      *jsonArc      `json:"arc,omitempty"`
}

type jsonPolyline struct {
	Points      [][2]float64 `json:"points"`
	Stroke      string       `json:"stroke"`
	StrokeWidth float64      `json:"stroke_width"`
}

type jsonCircle struct {
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Radius float64 `json:"r"`
	Fill   string  `json:"fill"`
}

type jsonRect struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	CornerRadius float64 `json:"corner_radius,omitempty"`
	Fill         string  `json:"fill"`
}

type jsonArc struct {
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Radius float64 `json:"r"`
	Start  float64 `json:"start"`
	Sweep  float64 `json:"sweep"`
	Fill   string  `json:"fill"`
}

// JSON exports the primitive list as a pretty-printed JSON document,
// the interchange format for external tooling: anything that can place
// polylines, circles, rectangles, and arc sectors can reproduce the
// chart exactly from this output.
//
// JSON returns an error only if marshaling fails, which well-formed
// primitives never trigger.
func JSON(prims []chart.Primitive, size geom.Size, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      size.Width,
		Height:     size.Height,
		Kind:       r.kind,
		Title:      r.title,
		Primitives: make([]jsonPrimitive, 0, len(prims)),
	}

	for _, p := range prims {
		switch v := p.(type) {
		case chart.Polyline:
			pts := make([][2]float64, len(v.Points))
			for i, pt := range v.Points {
				pts[i] = [2]float64{pt.X, pt.Y}
			}
			out.Primitives = append(out.Primitives, jsonPrimitive{
				Type: "polyline",
				Polyline: &jsonPolyline{
					Points:      pts,
					Stroke:      string(v.Stroke),
					StrokeWidth: v.StrokeWidth,
				},
			})
		case chart.Circle:
			out.Primitives = append(out.Primitives, jsonPrimitive{
				Type: "circle",
				Circle: &jsonCircle{
					CX: v.Center.X, CY: v.Center.Y,
					Radius: v.Radius,
					Fill:   string(v.Fill),
				},
			})
		case chart.Rect:
			b := v.Bounds()
			out.Primitives = append(out.Primitives, jsonPrimitive{
				Type: "rect",
				Rect: &jsonRect{
					X: b.MinX, Y: b.MinY,
					Width: b.Width(), Height: b.Height(),
					CornerRadius: v.CornerRadius,
					Fill:         string(v.Fill),
				},
			})
		case chart.Arc:
			out.Primitives = append(out.Primitives, jsonPrimitive{
				Type: "arc",
				Arc: &jsonArc{
					CX: v.Center.X, CY: v.Center.Y,
					Radius: v.Radius,
					Start:  v.Start,
					Sweep:  v.Sweep,
					Fill:   string(v.Fill),
				},
			})
		}
	}

	return json.MarshalIndent(out, "", "  ")
}
