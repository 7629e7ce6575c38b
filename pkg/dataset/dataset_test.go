package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kritika1265/chartkit/pkg/chart"
	apperrors "github.com/kritika1265/chartkit/pkg/errors"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		ref     string
		want    Format
		wantErr bool
	}{
		{"revenue.csv", FormatCSV, false},
		{"data/points.json", FormatJSON, false},
		{"slices.yaml", FormatYAML, false},
		{"slices.yml", FormatYAML, false},
		{"DATA.CSV", FormatCSV, false},
		{"https://example.com/a/b/points.json", FormatJSON, false},
		{"points.txt", "", true},
		{"noextension", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := DetectFormat(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestDecodePoints_CSV(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []chart.Point
	}{
		{
			name: "with header",
			data: "label,value\nJan,10\nFeb,20.5\n",
			want: []chart.Point{{Label: "Jan", Value: 10}, {Label: "Feb", Value: 20.5}},
		},
		{
			name: "x y header",
			data: "x,y\nQ1,100\nQ2,150\n",
			want: []chart.Point{{Label: "Q1", Value: 100}, {Label: "Q2", Value: 150}},
		},
		{
			name: "headerless pairs",
			data: "Jan,10\nFeb,20\n",
			want: []chart.Point{{Label: "Jan", Value: 10}, {Label: "Feb", Value: 20}},
		},
		{
			name: "single column",
			data: "10\n20\n30\n",
			want: []chart.Point{{Value: 10}, {Value: 20}, {Value: 30}},
		},
		{
			name: "reordered header",
			data: "value,label\n5,Mon\n7,Tue\n",
			want: []chart.Point{{Label: "Mon", Value: 5}, {Label: "Tue", Value: 7}},
		},
		{
			name: "empty",
			data: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePoints([]byte(tt.data), FormatCSV)
			if err != nil {
				t.Fatalf("DecodePoints() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("DecodePoints() returned %d points, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("point %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecodePoints_CSVBadValue(t *testing.T) {
	_, err := DecodePoints([]byte("label,value\nJan,ten\n"), FormatCSV)
	if err == nil {
		t.Fatal("DecodePoints() succeeded on non-numeric value")
	}
}

func TestDecodePoints_JSON(t *testing.T) {
	data := `[{"label":"Jan","value":10},{"label":"Feb","value":20.5}]`
	got, err := DecodePoints([]byte(data), FormatJSON)
	if err != nil {
		t.Fatalf("DecodePoints() failed: %v", err)
	}
	want := []chart.Point{{Label: "Jan", Value: 10}, {Label: "Feb", Value: 20.5}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodePoints_YAML(t *testing.T) {
	data := "- label: Jan\n  value: 10\n- label: Feb\n  value: 20.5\n"
	got, err := DecodePoints([]byte(data), FormatYAML)
	if err != nil {
		t.Fatalf("DecodePoints() failed: %v", err)
	}
	if len(got) != 2 || got[1].Value != 20.5 {
		t.Errorf("DecodePoints() = %+v", got)
	}
}

func TestDecodePoints_RejectsNonFinite(t *testing.T) {
	// YAML can spell infinities and NaN; they must not reach geometry.
	tests := []string{
		"- label: a\n  value: .inf\n",
		"- label: a\n  value: -.inf\n",
		"- label: a\n  value: .nan\n",
	}
	for _, data := range tests {
		if _, err := DecodePoints([]byte(data), FormatYAML); err == nil {
			t.Errorf("DecodePoints(%q) succeeded, want finite-value error", data)
		}
	}
}

func TestDecodeSlices_CSV(t *testing.T) {
	data := "label,value,color\nrent,1200,#e15759\nfood,640,\ntravel,300,#76b7b2\n"
	got, err := DecodeSlices([]byte(data), FormatCSV)
	if err != nil {
		t.Fatalf("DecodeSlices() failed: %v", err)
	}
	want := []chart.Slice{
		{Label: "rent", Value: 1200, Color: "#e15759"},
		{Label: "food", Value: 640},
		{Label: "travel", Value: 300, Color: "#76b7b2"},
	}
	if len(got) != len(want) {
		t.Fatalf("DecodeSlices() returned %d slices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slice %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeSlices_RejectsNegative(t *testing.T) {
	_, err := DecodeSlices([]byte(`[{"label":"a","value":-5}]`), FormatJSON)
	if err == nil {
		t.Fatal("DecodeSlices() succeeded on negative value")
	}
}

func TestDecodeSlices_RejectsBadColor(t *testing.T) {
	_, err := DecodeSlices([]byte(`[{"label":"a","value":5,"color":"reddish"}]`), FormatJSON)
	if err == nil {
		t.Fatal("DecodeSlices() succeeded on malformed color")
	}
}

func TestSource_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "revenue.csv")
	if err := os.WriteFile(path, []byte("label,value\nJan,10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewSource(nil, dir, nil)
	pts, err := s.Points(context.Background(), "revenue.csv")
	if err != nil {
		t.Fatalf("Points() failed: %v", err)
	}
	if len(pts) != 1 || pts[0].Value != 10 {
		t.Errorf("Points() = %+v", pts)
	}
}

func TestSource_FileNotFound(t *testing.T) {
	s := NewSource(nil, t.TempDir(), nil)
	_, err := s.Points(context.Background(), "missing.csv")
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Fatalf("Points() error = %v, want code %s", err, apperrors.ErrCodeFileNotFound)
	}
}

func TestSource_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label":"rent","value":1200}]`))
	}))
	defer srv.Close()

	s := NewSource(nil, "", nil)
	sls, err := s.Slices(context.Background(), srv.URL+"/budget.json")
	if err != nil {
		t.Fatalf("Slices() failed: %v", err)
	}
	if len(sls) != 1 || sls[0].Label != "rent" {
		t.Errorf("Slices() = %+v", sls)
	}
}

func TestSource_RemoteOnlyRejectsLocalPaths(t *testing.T) {
	s := NewRemoteSource(nil, nil)
	_, err := s.Points(context.Background(), "local.csv")
	if !apperrors.Is(err, apperrors.ErrCodeInvalidPath) {
		t.Fatalf("Points() error = %v, want code %s", err, apperrors.ErrCodeInvalidPath)
	}
}
