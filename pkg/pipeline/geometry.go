package pipeline

import (
	"github.com/kritika1265/chartkit/pkg/cache"
	"github.com/kritika1265/chartkit/pkg/chart"
	"github.com/kritika1265/chartkit/pkg/chartfile"
	apperrors "github.com/kritika1265/chartkit/pkg/errors"
	"github.com/kritika1265/chartkit/pkg/geom"
)

// buildGeometry dispatches to the renderer for the definition's chart kind.
// Style fields map onto renderer knobs; zero values defer to the renderer
// defaults.
func buildGeometry(def *chartfile.Definition, points []chart.Point, slices []chart.Slice, size geom.Size) ([]chart.Primitive, error) {
	switch def.ChartKind() {
	case chart.KindLine:
		r := chart.LineRenderer{
			Stroke:       chart.Color(def.Style.Color),
			StrokeWidth:  def.Style.StrokeWidth,
			MarkerRadius: def.Style.MarkerRadius,
		}
		return r.Render(points, size), nil

	case chart.KindBar:
		r := chart.BarRenderer{
			Fill:         chart.Color(def.Style.Color),
			BarWidth:     def.Style.BarWidth,
			CornerRadius: def.Style.CornerRadius,
		}
		return r.Render(points, size), nil

	case chart.KindPie:
		var palette chart.Palette
		if def.Style.Palette != "" {
			p, err := chart.PaletteByName(def.Style.Palette)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPalette, err,
					"resolve palette %q", def.Style.Palette)
			}
			palette = p
		}
		return chart.PieRenderer{Palette: palette}.Render(slices, size), nil
	}

	return nil, apperrors.New(apperrors.ErrCodeInvalidKind, "unknown chart kind: %s", def.Kind)
}

// geometryKeyOpts collects every input that shapes the computed primitives.
// Fields that do not apply to the definition's kind are carried anyway: a
// superset key can only over-invalidate, never serve stale artifacts.
func geometryKeyOpts(def *chartfile.Definition, size geom.Size) cache.GeometryKeyOpts {
	return cache.GeometryKeyOpts{
		Kind:         def.Kind,
		Width:        size.Width,
		Height:       size.Height,
		Color:        def.Style.Color,
		Palette:      def.Style.Palette,
		StrokeWidth:  def.Style.StrokeWidth,
		MarkerRadius: def.Style.MarkerRadius,
		BarWidth:     def.Style.BarWidth,
		CornerRadius: def.Style.CornerRadius,
	}
}
