// Package chartfile reads and validates chart definitions.
//
// A definition names the chart kind, optional sizing and style, and the
// data to plot. The canonical on-disk encoding is TOML:
//
//	kind = "bar"
//	title = "Monthly Revenue"
//
//	[style]
//	color = "#4e79a7"
//
//	[data]
//	file = "revenue.csv"
//
// Data comes either from a referenced file or URL, or inline as
// [[data.points]] / [[data.slices]] tables. The HTTP API accepts the
// same definition as JSON.
package chartfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kritika1265/chartkit/pkg/chart"
	apperrors "github.com/kritika1265/chartkit/pkg/errors"
)

// Definition is a parsed chart definition.
type Definition struct {
	Kind   string `toml:"kind" json:"kind" bson:"kind" validate:"required,oneof=line bar pie"`
	Title  string `toml:"title" json:"title,omitempty" bson:"title,omitempty"`
	Width  int    `toml:"width" json:"width,omitempty" bson:"width,omitempty" validate:"omitempty,gt=0"`
	Height int    `toml:"height" json:"height,omitempty" bson:"height,omitempty" validate:"omitempty,gt=0"`
	Style  Style  `toml:"style" json:"style,omitempty" bson:"style,omitempty"`
	Data   Data   `toml:"data" json:"data" bson:"data"`
}

// Style carries optional appearance settings. Zero values defer to the
// renderer defaults; which fields apply depends on the chart kind.
type Style struct {
	Color        string  `toml:"color" json:"color,omitempty" bson:"color,omitempty" validate:"omitempty,hexcolor"`
	Palette      string  `toml:"palette" json:"palette,omitempty" bson:"palette,omitempty" validate:"omitempty,palette"`
	StrokeWidth  float64 `toml:"stroke_width" json:"stroke_width,omitempty" bson:"stroke_width,omitempty" validate:"omitempty,finite,gt=0"`
	MarkerRadius float64 `toml:"marker_radius" json:"marker_radius,omitempty" bson:"marker_radius,omitempty" validate:"omitempty,finite,gte=0"`
	BarWidth     float64 `toml:"bar_width" json:"bar_width,omitempty" bson:"bar_width,omitempty" validate:"omitempty,finite,gt=0,lte=1"`
	CornerRadius float64 `toml:"corner_radius" json:"corner_radius,omitempty" bson:"corner_radius,omitempty" validate:"omitempty,finite,gte=0"`
	Background   string  `toml:"background" json:"background,omitempty" bson:"background,omitempty" validate:"omitempty,hexcolor"`
}

// Data names the chart's data source: a file or URL reference, or
// inline entries. Exactly one source must be present, and inline
// entries must match the chart kind (points for line and bar, slices
// for pie).
type Data struct {
	File   string       `toml:"file" json:"file,omitempty" bson:"file,omitempty"`
	Points []PointEntry `toml:"points" json:"points,omitempty" bson:"points,omitempty" validate:"dive"`
	Slices []SliceEntry `toml:"slices" json:"slices,omitempty" bson:"slices,omitempty" validate:"dive"`
}

// PointEntry is one inline series sample.
type PointEntry struct {
	Label string  `toml:"label" json:"label,omitempty" bson:"label,omitempty"`
	Value float64 `toml:"value" json:"value" bson:"value" validate:"finite"`
}

// SliceEntry is one inline pie slice.
type SliceEntry struct {
	Label string  `toml:"label" json:"label,omitempty" bson:"label,omitempty"`
	Value float64 `toml:"value" json:"value" bson:"value" validate:"finite,gte=0"`
	Color string  `toml:"color" json:"color,omitempty" bson:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Load reads and validates a definition file. TOML is the native
// encoding; .json files are accepted for parity with the HTTP API.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.New(apperrors.ErrCodeFileNotFound, "definition not found: %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "read definition %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return Parse(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidPath,
			"unsupported definition extension %q (want .toml or .json)", filepath.Ext(path))
	}
}

// Parse decodes and validates a TOML definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDefinition, err, "parse definition")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// ParseJSON decodes and validates a JSON definition.
func ParseJSON(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDefinition, err, "parse definition")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// ChartKind returns the definition's kind as a chart.Kind.
func (d *Definition) ChartKind() chart.Kind {
	return chart.Kind(d.Kind)
}

// Inline reports whether the definition carries its data inline rather
// than referencing a file or URL.
func (d *Data) Inline() bool {
	return len(d.Points) > 0 || len(d.Slices) > 0
}

// InlinePoints converts inline entries to chart points.
func (d *Data) InlinePoints() []chart.Point {
	pts := make([]chart.Point, len(d.Points))
	for i, e := range d.Points {
		pts[i] = chart.Point{Label: e.Label, Value: e.Value}
	}
	return pts
}

// InlineSlices converts inline entries to chart slices.
func (d *Data) InlineSlices() []chart.Slice {
	sls := make([]chart.Slice, len(d.Slices))
	for i, e := range d.Slices {
		sls[i] = chart.Slice{Label: e.Label, Value: e.Value, Color: chart.Color(e.Color)}
	}
	return sls
}
