package chart_test

import (
	"fmt"
	"math"

	"github.com/kritika1265/chartkit/pkg/chart"
	"github.com/kritika1265/chartkit/pkg/geom"
)

func ExampleLineRenderer_Render() {
	// A week of measurements becomes one polyline plus one marker per day.
	points := []chart.Point{
		{Label: "mon", Value: 12},
		{Label: "tue", Value: 18},
		{Label: "wed", Value: 9},
		{Label: "thu", Value: 21},
	}

	r := chart.LineRenderer{Stroke: "#1f77b4"}
	prims := r.Render(points, geom.Size{Width: 400, Height: 300})

	line := prims[0].(chart.Polyline)
	fmt.Println("primitives:", len(prims))
	fmt.Println("vertices:", len(line.Points))
	// Output:
	// primitives: 5
	// vertices: 4
}

func ExampleBarRenderer_Render() {
	points := []chart.Point{
		{Label: "q1", Value: 10},
		{Label: "q2", Value: 40},
	}

	r := chart.BarRenderer{Fill: "#e15759"}
	prims := r.Render(points, geom.Size{Width: 200, Height: 100})

	// The largest value fills the surface height.
	tallest := prims[1].(chart.Rect)
	fmt.Println("bars:", len(prims))
	fmt.Println("tallest height:", tallest.Height)
	// Output:
	// bars: 2
	// tallest height: 100
}

func ExamplePieRenderer_Render() {
	slices := []chart.Slice{
		{Label: "wheat", Value: 50},
		{Label: "rice", Value: 30},
		{Label: "corn", Value: 20},
	}

	r := chart.PieRenderer{}
	prims := r.Render(slices, geom.Size{Width: 200, Height: 200})

	sum := 0.0
	for _, p := range prims {
		sum += p.(chart.Arc).Sweep
	}
	fmt.Println("arcs:", len(prims))
	fmt.Printf("full revolutions: %.0f\n", sum/(2*math.Pi))
	// Output:
	// arcs: 3
	// full revolutions: 1
}

func ExampleShades() {
	ramp, _ := chart.Shades("#4e79a7", 3)
	fmt.Println("entries:", len(ramp))
	fmt.Println("base:", ramp[0])
	// Output:
	// entries: 3
	// base: #4e79a7
}
