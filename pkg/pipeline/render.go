package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kritika1265/chartkit/pkg/chart"
	"github.com/kritika1265/chartkit/pkg/chartfile"
	apperrors "github.com/kritika1265/chartkit/pkg/errors"
	"github.com/kritika1265/chartkit/pkg/geom"
	"github.com/kritika1265/chartkit/pkg/render"
)

// renderFormats encodes primitives in every requested format concurrently.
// PNG encoding and the PDF converter subprocess dominate render time, so
// formats fan out instead of queueing behind each other.
func renderFormats(ctx context.Context, prims []chart.Primitive, size geom.Size, def *chartfile.Definition, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(prims, size, def, opts, format)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// renderFormat encodes primitives in a single format.
func renderFormat(prims []chart.Primitive, size geom.Size, def *chartfile.Definition, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.SVG(prims, size, svgOptions(def)...), nil
	case FormatPNG:
		return render.PNG(prims, size, pngOptions(def, opts)...)
	case FormatPDF:
		return render.PDF(prims, size, render.WithPDFSVGOptions(svgOptions(def)...))
	case FormatJSON:
		return render.JSON(prims, size,
			render.WithJSONKind(def.ChartKind()),
			render.WithJSONTitle(def.Title))
	case FormatTerm:
		return render.Term(prims, size, render.WithTermSize(opts.TermCols, opts.TermRows)), nil
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

// svgOptions builds SVG rendering options from the definition.
// PDF output routes through the same options because it converts the SVG.
func svgOptions(def *chartfile.Definition) []render.SVGOption {
	var svgOpts []render.SVGOption
	if def.Title != "" {
		svgOpts = append(svgOpts, render.WithTitle(def.Title))
	}
	if def.Style.Background != "" {
		svgOpts = append(svgOpts, render.WithBackground(chart.Color(def.Style.Background)))
	}
	return svgOpts
}

// pngOptions builds PNG rendering options from the definition and options.
func pngOptions(def *chartfile.Definition, opts Options) []render.PNGOption {
	pngOpts := []render.PNGOption{render.WithScale(opts.Scale)}
	if def.Title != "" {
		pngOpts = append(pngOpts, render.WithPNGTitle(def.Title))
	}
	if def.Style.Background != "" {
		pngOpts = append(pngOpts, render.WithPNGBackground(chart.Color(def.Style.Background)))
	}
	return pngOpts
}
