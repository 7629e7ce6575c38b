package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kritika1265/chartkit/pkg/cache"
	"github.com/kritika1265/chartkit/pkg/chart"
	"github.com/kritika1265/chartkit/pkg/chartfile"
	"github.com/kritika1265/chartkit/pkg/dataset"
	"github.com/kritika1265/chartkit/pkg/geom"
	"github.com/kritika1265/chartkit/pkg/httputil"
	"github.com/kritika1265/chartkit/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete definition → dataset → geometry → render
// pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Definition
	def, err := r.LoadDefinition(opts)
	if err != nil {
		return nil, fmt.Errorf("definition: %w", err)
	}
	result.Definition = def
	result.Size = opts.SurfaceSize(def)

	r.Logger.Debug("loaded definition",
		"kind", def.Kind,
		"title", def.Title)

	// Stage 2: Dataset
	datasetStart := time.Now()
	points, slices, datasetHash, datasetHit, err := r.LoadDatasetWithCacheInfo(ctx, def, opts)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	result.Points = points
	result.Slices = slices
	result.DatasetHash = datasetHash
	result.Stats.DatasetTime = time.Since(datasetStart)
	result.Stats.EntryCount = len(points) + len(slices)
	result.CacheInfo.DatasetHit = datasetHit

	r.Logger.Info("loaded dataset",
		"entries", result.Stats.EntryCount,
		"duration", result.Stats.DatasetTime)

	// Stage 3: Geometry
	geometryStart := time.Now()
	prims, err := r.Geometry(ctx, def, points, slices, result.Size)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	result.Primitives = prims
	result.Stats.GeometryTime = time.Since(geometryStart)
	result.Stats.PrimitiveCount = len(prims)

	r.Logger.Info("computed geometry",
		"primitives", len(prims),
		"duration", result.Stats.GeometryTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, prims, result.Size, def, datasetHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadDefinition resolves the chart definition from options. A pre-parsed
// definition takes precedence over a definition file path and is revalidated
// because API callers can construct one directly.
func (r *Runner) LoadDefinition(opts Options) (*chartfile.Definition, error) {
	if opts.Definition != nil {
		if err := opts.Definition.Validate(); err != nil {
			return nil, err
		}
		return opts.Definition, nil
	}
	return chartfile.Load(opts.DefinitionPath)
}

// datasetPayload is the cached wire form of a resolved dataset. Hashing it
// gives the dataset hash that chains into geometry and artifact keys, so the
// same data loaded from different encodings hashes identically.
type datasetPayload struct {
	Points []chart.Point `json:"points,omitempty"`
	Slices []chart.Slice `json:"slices,omitempty"`
}

// Data shapes for dataset parsing and cache keys: line and bar charts
// consume points, pie charts consume slices.
const (
	shapePoints = "points"
	shapeSlices = "slices"
)

// dataShape returns the shape the definition's chart kind consumes.
func dataShape(def *chartfile.Definition) string {
	if def.ChartKind() == chart.KindPie {
		return shapeSlices
	}
	return shapePoints
}

// LoadDatasetWithCacheInfo resolves the definition's data with caching and
// returns the dataset content hash and cache hit info. Only remote datasets
// are cached: inline entries are already in memory, and local files are
// cheaper to reread than to keep fresh.
func (r *Runner) LoadDatasetWithCacheInfo(ctx context.Context, def *chartfile.Definition, opts Options) ([]chart.Point, []chart.Slice, string, bool, error) {
	r.applyLogger(&opts)

	source := "inline"
	if def.Data.File != "" {
		source = def.Data.File
	}
	start := time.Now()
	observability.Pipeline().OnDatasetStart(ctx, source)

	payload, data, hit, err := r.resolveDataset(ctx, def, opts)
	observability.Pipeline().OnDatasetComplete(ctx, source,
		len(payload.Points)+len(payload.Slices), time.Since(start), err)
	if err != nil {
		return nil, nil, "", false, err
	}
	return payload.Points, payload.Slices, cache.Hash(data), hit, nil
}

// LoadDataset is a convenience wrapper that calls LoadDatasetWithCacheInfo
// and discards the dataset hash and cache hit info.
func (r *Runner) LoadDataset(ctx context.Context, def *chartfile.Definition, opts Options) ([]chart.Point, []chart.Slice, error) {
	points, slices, _, _, err := r.LoadDatasetWithCacheInfo(ctx, def, opts)
	return points, slices, err
}

// resolveDataset loads the dataset and returns it alongside its canonical
// wire form. Remote datasets round-trip through the cache.
func (r *Runner) resolveDataset(ctx context.Context, def *chartfile.Definition, opts Options) (datasetPayload, []byte, bool, error) {
	// Inline entries skip loading entirely.
	if def.Data.Inline() {
		var payload datasetPayload
		if dataShape(def) == shapeSlices {
			payload.Slices = def.Data.InlineSlices()
		} else {
			payload.Points = def.Data.InlinePoints()
		}
		data, err := json.Marshal(payload)
		return payload, data, false, err
	}

	ref := def.Data.File
	remote := httputil.IsURL(ref)

	var cacheKey string
	if remote {
		cacheKey = r.Keyer.DatasetKey(ref, cache.DatasetKeyOpts{Kind: dataShape(def)})
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				var payload datasetPayload
				if err := json.Unmarshal(data, &payload); err == nil {
					observability.Cache().OnHit(ctx, "dataset")
					return payload, data, true, nil
				}
				// Fall through and reload on deserialization failure.
			}
			observability.Cache().OnMiss(ctx, "dataset")
		}
	}

	src := r.datasetSource(opts)
	var payload datasetPayload
	var err error
	if dataShape(def) == shapeSlices {
		payload.Slices, err = src.Slices(ctx, ref)
	} else {
		payload.Points, err = src.Points(ctx, ref)
	}
	if err != nil {
		return datasetPayload{}, nil, false, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return datasetPayload{}, nil, false, fmt.Errorf("serialize dataset: %w", err)
	}
	if remote {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLDataset); err == nil {
			observability.Cache().OnWrite(ctx, "dataset", len(data))
		}
	}
	return payload, data, false, nil
}

// datasetSource builds the dataset source for one run. The fetcher shares
// the runner's cache so remote responses are reused across runs.
func (r *Runner) datasetSource(opts Options) *dataset.Source {
	fetcher := httputil.NewFetcher(r.Cache, r.Keyer, opts.Logger)
	fetcher.SetRefresh(opts.Refresh)
	if opts.RemoteOnly {
		return dataset.NewRemoteSource(fetcher, opts.Logger)
	}
	baseDir := opts.BaseDir
	if baseDir == "" && opts.DefinitionPath != "" {
		baseDir = filepath.Dir(opts.DefinitionPath)
	}
	return dataset.NewSource(fetcher, baseDir, opts.Logger)
}

// Geometry computes drawing primitives for the definition's chart kind.
// Geometry is never cached: recomputing it is cheaper than a cache probe.
func (r *Runner) Geometry(ctx context.Context, def *chartfile.Definition, points []chart.Point, slices []chart.Slice, size geom.Size) ([]chart.Primitive, error) {
	start := time.Now()
	observability.Pipeline().OnGeometryStart(ctx, def.Kind, len(points)+len(slices))

	prims, err := buildGeometry(def, points, slices, size)
	observability.Pipeline().OnGeometryComplete(ctx, def.Kind, len(prims), time.Since(start), err)
	return prims, err
}

// RenderWithCacheInfo encodes primitives in the requested formats with
// caching and returns cache hit info. The datasetHash chains every upstream
// input into the artifact keys; when it is empty (a standalone render of
// primitives with unknown provenance) caching is skipped entirely.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, prims []chart.Primitive, size geom.Size, def *chartfile.Definition, datasetHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts, hit, err := r.renderCached(ctx, prims, size, def, datasetHash, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo without a
// dataset hash, rendering uncached.
func (r *Runner) Render(ctx context.Context, prims []chart.Primitive, size geom.Size, def *chartfile.Definition, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, prims, size, def, "", opts)
	return artifacts, err
}

func (r *Runner) renderCached(ctx context.Context, prims []chart.Primitive, size geom.Size, def *chartfile.Definition, datasetHash string, opts Options) (map[string][]byte, bool, error) {
	useCache := datasetHash != ""

	var parentHash string
	if useCache {
		parentHash = r.Keyer.GeometryKey(datasetHash, geometryKeyOpts(def, size))
	}

	// Try to get all formats from cache.
	if useCache && !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(parentHash, opts.ArtifactKeyOpts(format, def))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	// Render all formats.
	rendered, err := renderFormats(ctx, prims, size, def, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format.
	if useCache {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(parentHash, opts.ArtifactKeyOpts(format, def))
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
				observability.Cache().OnWrite(ctx, "artifact", len(data))
			}
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
