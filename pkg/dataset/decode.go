package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/kritika1265/chartkit/pkg/chart"
)

// pointRecord is the wire shape of a series sample in JSON and YAML
// payloads.
type pointRecord struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// sliceRecord is the wire shape of a pie slice in JSON and YAML
// payloads. Color is optional; absent colors are assigned from the
// palette at render time.
type sliceRecord struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// DecodePoints parses a series payload in the given format.
func DecodePoints(data []byte, format Format) ([]chart.Point, error) {
	var recs []pointRecord
	var err error
	switch format {
	case FormatCSV:
		recs, err = csvPoints(data)
	case FormatJSON:
		err = json.Unmarshal(data, &recs)
	case FormatYAML:
		err = yaml.Unmarshal(data, &recs)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}

	pts := make([]chart.Point, len(recs))
	for i, r := range recs {
		if !isFinite(r.Value) {
			return nil, fmt.Errorf("entry %d (%q): value must be finite, got %v", i, r.Label, r.Value)
		}
		pts[i] = chart.Point{Label: r.Label, Value: r.Value}
	}
	return pts, nil
}

// DecodeSlices parses a pie payload in the given format.
func DecodeSlices(data []byte, format Format) ([]chart.Slice, error) {
	var recs []sliceRecord
	var err error
	switch format {
	case FormatCSV:
		recs, err = csvSlices(data)
	case FormatJSON:
		err = json.Unmarshal(data, &recs)
	case FormatYAML:
		err = yaml.Unmarshal(data, &recs)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}

	sls := make([]chart.Slice, len(recs))
	for i, r := range recs {
		if !isFinite(r.Value) {
			return nil, fmt.Errorf("entry %d (%q): value must be finite, got %v", i, r.Label, r.Value)
		}
		if r.Value < 0 {
			return nil, fmt.Errorf("entry %d (%q): slice value must be non-negative, got %v", i, r.Label, r.Value)
		}
		if r.Color != "" {
			if _, err := colorful.Hex(r.Color); err != nil {
				return nil, fmt.Errorf("entry %d (%q): invalid color %q", i, r.Label, r.Color)
			}
		}
		sls[i] = chart.Slice{Label: r.Label, Value: r.Value, Color: chart.Color(r.Color)}
	}
	return sls, nil
}

// csvPoints parses label/value rows. A header row is recognized by
// column names (label|name|x and value|y, case-insensitive) or by a
// non-numeric value cell in the first row. Headerless payloads are
// read positionally: either value-only rows or label,value rows.
func csvPoints(data []byte) ([]pointRecord, error) {
	rows, err := readCSV(data)
	if err != nil || len(rows) == 0 {
		return nil, err
	}

	labelIdx, valueIdx := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "label", "name", "x":
			if labelIdx == -1 {
				labelIdx = i
			}
		case "value", "y":
			if valueIdx == -1 {
				valueIdx = i
			}
		}
	}

	start := 1
	if valueIdx == -1 {
		// No named columns. Positional layout, but a first row that
		// does not parse is still a header.
		labelIdx, valueIdx = 0, 1
		if len(rows[0]) == 1 {
			labelIdx, valueIdx = -1, 0
		}
		if _, err := parseCell(rows[0], valueIdx); err == nil {
			start = 0
		}
	}

	recs := make([]pointRecord, 0, len(rows)-start)
	for n, row := range rows[start:] {
		v, err := parseCell(row, valueIdx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", start+n+1, err)
		}
		var label string
		if labelIdx >= 0 && labelIdx < len(row) {
			label = strings.TrimSpace(row[labelIdx])
		}
		recs = append(recs, pointRecord{Label: label, Value: v})
	}
	return recs, nil
}

// csvSlices parses label/value/color rows, with the same header
// handling as csvPoints. The color column is optional.
func csvSlices(data []byte) ([]sliceRecord, error) {
	rows, err := readCSV(data)
	if err != nil || len(rows) == 0 {
		return nil, err
	}

	labelIdx, valueIdx, colorIdx := -1, -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "label", "name":
			if labelIdx == -1 {
				labelIdx = i
			}
		case "value", "y":
			if valueIdx == -1 {
				valueIdx = i
			}
		case "color":
			if colorIdx == -1 {
				colorIdx = i
			}
		}
	}

	start := 1
	if valueIdx == -1 {
		labelIdx, valueIdx = 0, 1
		if len(rows[0]) > 2 {
			colorIdx = 2
		}
		if _, err := parseCell(rows[0], valueIdx); err == nil {
			start = 0
		}
	}

	recs := make([]sliceRecord, 0, len(rows)-start)
	for n, row := range rows[start:] {
		v, err := parseCell(row, valueIdx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", start+n+1, err)
		}
		rec := sliceRecord{Value: v}
		if labelIdx >= 0 && labelIdx < len(row) {
			rec.Label = strings.TrimSpace(row[labelIdx])
		}
		if colorIdx >= 0 && colorIdx < len(row) {
			rec.Color = strings.TrimSpace(row[colorIdx])
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func parseCell(row []string, idx int) (float64, error) {
	if idx < 0 || idx >= len(row) {
		return 0, fmt.Errorf("missing value column")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("parse value %q: %w", row[idx], err)
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
