// Package cache provides content-addressed caching for the render pipeline.
//
// The pipeline caches three kinds of intermediate results:
//   - http: raw responses for remote dataset fetches
//   - datasets: parsed and normalized data loaded from URLs
//   - artifacts: encoded output bytes (SVG, PNG, PDF, JSON, terminal)
//
// Geometry itself is recomputed on every run: at chart scale it costs
// microseconds, so memoizing it buys nothing. Its key still exists because
// it chains the dataset hash and every geometry input into the artifact
// keys, so a change anywhere upstream (data, chart kind, surface size,
// style) invalidates the cached artifacts. Backends:
//   - file: directory-based cache for CLI usage
//   - redis: shared cache for multi-instance server deployments
//   - null: no-op cache for tests and --no-cache runs
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached pipeline stages.
const (
	// TTLDataset is how long parsed remote datasets are cached.
	// Matches TTLHTTP: remote data can change without any local signal,
	// so parsed results must not outlive the raw responses they came from.
	TTLDataset = time.Hour

	// TTLArtifact is how long rendered output bytes are cached.
	// Artifact keys chain every upstream input, so entries never go
	// stale; the TTL only bounds disk growth.
	TTLArtifact = 24 * time.Hour

	// TTLHTTP is how long fetched remote dataset responses are cached.
	TTLHTTP = time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether
	// the key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DatasetKeyOpts are the inputs that affect dataset parsing.
type DatasetKeyOpts struct {
	Kind string `json:"kind"`
}

// GeometryKeyOpts are the inputs that affect primitive computation.
type GeometryKeyOpts struct {
	Kind         string  `json:"kind"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Color        string  `json:"color"`
	Palette      string  `json:"palette"`
	StrokeWidth  float64 `json:"stroke_width"`
	MarkerRadius float64 `json:"marker_radius"`
	BarWidth     float64 `json:"bar_width"`
	CornerRadius float64 `json:"corner_radius"`
}

// ArtifactKeyOpts are the inputs that affect output encoding.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Title      string  `json:"title"`
	Background string  `json:"background"`
	Scale      float64 `json:"scale"`
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
}

// Keyer generates cache keys for pipeline stages.
// Implementations must be deterministic: identical inputs produce
// identical keys across processes.
type Keyer interface {
	// HTTPKey generates a key for remote dataset response caching.
	HTTPKey(namespace, key string) string

	// DatasetKey generates a key for a parsed dataset.
	// The source identifies the raw data (path plus content hash).
	DatasetKey(source string, opts DatasetKeyOpts) string

	// GeometryKey generates a key for computed drawing primitives.
	GeometryKey(datasetHash string, opts GeometryKeyOpts) string

	// ArtifactKey generates a key for encoded output bytes.
	ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates keys by hashing stage inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for remote dataset response caching.
// The namespace keeps responses from different hosts separate.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// DatasetKey generates a key for a parsed dataset.
func (k *DefaultKeyer) DatasetKey(source string, opts DatasetKeyOpts) string {
	return hashKey("dataset", source, opts)
}

// GeometryKey generates a key for computed drawing primitives.
func (k *DefaultKeyer) GeometryKey(datasetHash string, opts GeometryKeyOpts) string {
	return hashKey("geometry", datasetHash, opts)
}

// ArtifactKey generates a key for encoded output bytes.
func (k *DefaultKeyer) ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", geometryHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
