// Package pkg provides the core libraries for Chartkit chart rendering.
//
// # Overview
//
// Chartkit transforms declarative chart definitions into rendered artifacts.
// A definition names a chart kind, a data source, and surface dimensions;
// the libraries resolve the data, compute drawing geometry, and serialize
// it to output formats. The pkg directory is organized into four main areas:
//
//  1. [chart] - Domain logic (data model, line/bar/pie geometry renderers)
//  2. [pipeline] - Orchestration (definition → dataset → geometry → artifacts)
//  3. [render] - Output sinks (SVG, PNG, PDF, JSON, terminal)
//  4. [cache] / [store] - Infrastructure (artifact caching, chart persistence)
//
// # Architecture
//
// The typical data flow through Chartkit:
//
//	Definition (TOML/JSON)
//	         ↓
//	    [chartfile] package (parse + validate)
//	         ↓
//	    [dataset] package (resolve inline/file/remote data)
//	         ↓
//	    [chart] package (scale values into drawing primitives)
//	         ↓
//	    [render] package (serialize primitives per format)
//	         ↓
//	    SVG/PNG/PDF/JSON/terminal output
//
// # Quick Start
//
// Render a chart definition to SVG:
//
//	import (
//	    "context"
//	    "github.com/kritika1265/chartkit/pkg/pipeline"
//	)
//
//	// 1. Build a runner (nil cache and fetcher use defaults)
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	// 2. Execute the pipeline
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    DefinitionPath: "chart.toml",
//	    Formats:        []string{pipeline.FormatSVG},
//	})
//
//	// 3. Use the artifacts
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// ## Core Domain Logic
//
// [chart] - The chart data model ([chart.Point], [chart.Slice]) and the
// geometry renderers that turn values into drawing primitives. One renderer
// per kind: [chart.LineRenderer], [chart.BarRenderer], [chart.PieRenderer].
// Renderers are pure: values plus a surface size in, primitives out.
//
// [geom] - Scalar and point geometry shared by every renderer: linear
// interpolation, normalization, range mapping, and the [geom.Rect] /
// [geom.Size] surface types.
//
// [chartfile] - Definition parsing and validation. Definitions are TOML
// (canonical) or JSON, with inline points, local files, or remote URLs as
// data sources.
//
// [dataset] - Data source resolution and decoding (CSV and JSON wire
// formats), plus descriptive statistics for inspection.
//
// ## Rendering
//
// [render] - Output sinks. Each sink serializes primitives to one format:
// SVG markup, in-process PNG rasterization, PDF via rsvg-convert, the
// primitive list as JSON, or a braille-cell terminal sketch.
//
// ## Infrastructure
//
// [pipeline] - The complete render pipeline (definition → dataset →
// geometry → artifacts) used by the CLI and the HTTP API. Ensures
// consistent caching and validation across all entry points.
//
// [cache] - Content-addressed caching for datasets and artifacts.
// FileCache for the CLI (filesystem), RedisCache for the API, NullCache
// for tests and --no-cache runs.
//
// [store] - Persistence for saved charts. MemStore for tests and
// single-process serving, MongoStore for durable deployments.
//
// [httputil] - HTTP fetching for remote datasets with retry, backoff, and
// response caching.
//
// [errors] - Coded errors shared across packages. Codes classify failures
// (invalid definition, unreachable data, missing chart) so the CLI and API
// can map them to exit codes and HTTP statuses without string matching.
//
// [observability] - Optional hooks for metrics and tracing. No-op by
// default; binaries register implementations at startup.
//
// [buildinfo] - Version metadata stamped at build time.
//
// # Common Workflows
//
// Parse and validate a definition:
//
//	def, _ := chartfile.Load("chart.toml")
//	err := def.Validate()
//
// Render primitives directly, without the pipeline:
//
//	renderer := chart.LineRenderer{Stroke: "#4e79a7"}
//	prims := renderer.Render(points, geom.Size{Width: 640, Height: 480})
//	svg := render.SVG(prims, geom.Size{Width: 640, Height: 480})
//
// Summarize a dataset:
//
//	summary, _ := dataset.Summarize(dataset.PointValues(points))
//	fmt.Printf("%d entries, mean %.2f\n", summary.Count, summary.Mean)
//
// Persist a chart and render it later:
//
//	st, _ := store.NewMongoStore(ctx, store.MongoConfig{})
//	c := store.New("quarterly revenue", def)
//	_ = st.Save(ctx, c)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/chart/...              # Specific package
//	go test -run Example                 # Examples only
//
// [chart]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/chart
// [geom]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/geom
// [chartfile]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/chartfile
// [dataset]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/dataset
// [render]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/cache
// [store]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/store
// [httputil]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/kritika1265/chartkit/pkg/buildinfo
package pkg
