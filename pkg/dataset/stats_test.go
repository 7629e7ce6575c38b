package dataset

import (
	"math"
	"testing"

	"github.com/kritika1265/chartkit/pkg/chart"
)

func TestSummarize(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	s, err := Summarize(values)
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"Min", s.Min, 2},
		{"Max", s.Max, 9},
		{"Mean", s.Mean, 5},
		{"Median", s.Median, 4.5},
		{"StdDev", s.StdDev, 2},
		{"Total", s.Total, 40},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if s.Count != 8 {
		t.Errorf("Count = %d, want 8", s.Count)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s, err := Summarize(nil)
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	if s != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero summary", s)
	}
}

func TestValueExtraction(t *testing.T) {
	pts := []chart.Point{{Label: "a", Value: 1}, {Label: "b", Value: 2}}
	if got := PointValues(pts); len(got) != 2 || got[1] != 2 {
		t.Errorf("PointValues() = %v", got)
	}

	sls := []chart.Slice{{Label: "a", Value: 3}, {Label: "b", Value: 4}}
	if got := SliceValues(sls); len(got) != 2 || got[0] != 3 {
		t.Errorf("SliceValues() = %v", got)
	}
}
