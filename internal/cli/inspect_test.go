package cli

import "testing"

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"ascending", []float64{1, 2, 3}, "▁▅█"},
		{"flat series at mid height", []float64{5, 5}, "▅▅"},
		{"single value", []float64{42}, "▅"},
		{"descending", []float64{3, 1}, "█▁"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sparkline(tt.values)
			if got != tt.want {
				t.Errorf("sparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestLabelRange(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{"empty", nil, "—"},
		{"single", []string{"Q1"}, "Q1"},
		{"multiple", []string{"Jan", "Feb", "Mar"}, "Jan … Mar"},
		{"first equals last", []string{"a", "b", "a"}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labelRange(tt.labels)
			if got != tt.want {
				t.Errorf("labelRange(%v) = %q, want %q", tt.labels, got, tt.want)
			}
		})
	}
}
