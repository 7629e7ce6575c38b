package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kritika1265/chartkit/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,png,pdf", []string{"svg", "png", "pdf"}},
		{"spaces after commas", "svg, png", []string{"svg", "png"}},
		{"trailing comma", "svg,", []string{"svg"}},
		{"term only", "term", []string{"term"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid all", []string{"svg", "png", "pdf", "json", "term"}, false},
		{"invalid format", []string{"gif"}, true},
		{"mixed valid invalid", []string{"svg", "gif"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derived from input", "", "charts/revenue.toml", "charts/revenue"},
		{"output without extension", "out", "revenue.toml", "out"},
		{"output with format extension", "out.svg", "revenue.toml", "out"},
		{"output with nested path", "dist/report.png", "revenue.toml", "dist/report"},
		{"output with unrelated extension", "report.bak", "revenue.toml", "report.bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputBase(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("outputBase(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		format string
		single bool
		want   string
	}{
		{"single format explicit output", "custom.svg", "chart.toml", "svg", true, "custom.svg"},
		{"single format derived", "", "chart.toml", "svg", true, "chart.svg"},
		{"multiple formats derived", "", "chart.toml", "png", false, "chart.png"},
		{"multiple formats with base", "dist/out", "chart.toml", "json", false, "dist/out.json"},
		{"multiple formats strips extension", "dist/out.svg", "chart.toml", "png", false, "dist/out.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPath(tt.output, tt.input, tt.format, tt.single)
			if got != tt.want {
				t.Errorf("artifactPath(%q, %q, %q, %v) = %q, want %q",
					tt.output, tt.input, tt.format, tt.single, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "chart.toml")

	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte(`{"kind":"bar"}`),
	}

	written, err := writeArtifacts(context.Background(), artifacts, []string{"svg", "json"}, input, "")
	if err != nil {
		t.Fatalf("writeArtifacts() error = %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("len(written) = %d, want 2", len(written))
	}

	for i, format := range []string{"svg", "json"} {
		want := filepath.Join(dir, "chart."+format)
		if written[i] != want {
			t.Errorf("written[%d] = %q, want %q", i, written[i], want)
		}
		data, err := os.ReadFile(written[i])
		if err != nil {
			t.Fatalf("read %s: %v", written[i], err)
		}
		if string(data) != string(artifacts[format]) {
			t.Errorf("%s content = %q, want %q", format, data, artifacts[format])
		}
	}
}
