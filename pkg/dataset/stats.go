package dataset

import (
	"github.com/montanaflynn/stats"

	"github.com/kritika1265/chartkit/pkg/chart"
)

// Summary holds descriptive statistics for a numeric series, used by
// inspection tooling to characterize a dataset before rendering.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
	Total  float64
}

// Summarize computes descriptive statistics for values. An empty input
// yields a zero Summary.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, nil
	}

	data := stats.Float64Data(values)
	s := Summary{Count: len(values)}

	var err error
	if s.Min, err = data.Min(); err != nil {
		return Summary{}, err
	}
	if s.Max, err = data.Max(); err != nil {
		return Summary{}, err
	}
	if s.Mean, err = data.Mean(); err != nil {
		return Summary{}, err
	}
	if s.Median, err = data.Median(); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = data.StandardDeviation(); err != nil {
		return Summary{}, err
	}
	if s.Total, err = data.Sum(); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// PointValues extracts the value column of a series.
func PointValues(pts []chart.Point) []float64 {
	vals := make([]float64, len(pts))
	for i, p := range pts {
		vals[i] = p.Value
	}
	return vals
}

// SliceValues extracts the value column of a pie dataset.
func SliceValues(sls []chart.Slice) []float64 {
	vals := make([]float64, len(sls))
	for i, s := range sls {
		vals[i] = s.Value
	}
	return vals
}
