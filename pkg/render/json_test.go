package render

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/kritika1265/chartkit/pkg/chart"
)

func TestJSON_Line(t *testing.T) {
	data, err := JSON(linePrimitives(), testSize)
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 400 {
		t.Errorf("Width = %v, want 400", out.Width)
	}
	if out.Height != 300 {
		t.Errorf("Height = %v, want 300", out.Height)
	}
	if len(out.Primitives) != 4 {
		t.Fatalf("primitive count = %d, want 1 polyline + 3 circles", len(out.Primitives))
	}

	// Paint order: the polyline goes down first, markers on top.
	if out.Primitives[0].Type != "polyline" || out.Primitives[0].Polyline == nil {
		t.Errorf("first primitive = %+v, want polyline", out.Primitives[0])
	}
	for i, p := range out.Primitives[1:] {
		if p.Type != "circle" || p.Circle == nil {
			t.Errorf("primitive %d = %+v, want circle", i+1, p)
		}
	}
	if got := len(out.Primitives[0].Polyline.Points); got != 3 {
		t.Errorf("polyline vertex count = %d, want 3", got)
	}
}

func TestJSON_PieSweepsCloseCircle(t *testing.T) {
	data, err := JSON(piePrimitives(), testSize, WithJSONKind(chart.KindPie), WithJSONTitle("Budget"))
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Kind != "pie" {
		t.Errorf("Kind = %q, want pie", out.Kind)
	}
	if out.Title != "Budget" {
		t.Errorf("Title = %q, want Budget", out.Title)
	}

	total := 0.0
	for _, p := range out.Primitives {
		if p.Type != "arc" || p.Arc == nil {
			t.Fatalf("primitive = %+v, want arc", p)
		}
		total += p.Arc.Sweep
	}
	if math.Abs(total-2*math.Pi) > 1e-9 {
		t.Errorf("sweep total = %v, want 2Pi", total)
	}
}

func TestJSON_RectGeometry(t *testing.T) {
	data, err := JSON(barPrimitives(), testSize, WithJSONKind(chart.KindBar))
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if len(out.Primitives) != 2 {
		t.Fatalf("primitive count = %d, want 2", len(out.Primitives))
	}
	first := out.Primitives[0].Rect
	if first == nil {
		t.Fatal("first primitive missing rect payload")
	}
	// Two slots of 200 each, bars 160 wide centered at offset 20.
	if math.Abs(first.X-20) > 1e-9 || math.Abs(first.Width-160) > 1e-9 {
		t.Errorf("rect x=%v width=%v, want x=20 width=160", first.X, first.Width)
	}
}

func TestJSON_Empty(t *testing.T) {
	data, err := JSON(nil, testSize)
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Primitives == nil || len(out.Primitives) != 0 {
		t.Errorf("Primitives = %v, want present-but-empty list", out.Primitives)
	}
}
