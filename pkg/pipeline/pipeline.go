// Package pipeline provides the core render pipeline for Chartkit.
//
// This package implements the complete definition → dataset → geometry →
// render pipeline that can be used by CLI and API components. By centralizing
// this logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Definition: Load and validate the chart definition (TOML or JSON)
//  2. Dataset: Resolve data from inline entries, local files, or URLs
//  3. Geometry: Compute drawing primitives for the chart kind
//  4. Render: Encode primitives in the requested output formats
//
// Each stage can be run independently or as part of the complete pipeline.
// Remote datasets and rendered artifacts are cached; geometry is recomputed
// on every run because it costs microseconds at chart scale, but its cache
// key chains every upstream input into the artifact keys.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DefinitionPath: "revenue.toml",
//	    Formats:        []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load and validate the definition only
//	def, err := runner.LoadDefinition(opts)
//
//	// Resolve data with an existing definition
//	points, slices, err := runner.LoadDataset(ctx, def, opts)
//
//	// Compute primitives with resolved data
//	prims, err := runner.Geometry(ctx, def, points, slices, size)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kritika1265/chartkit/pkg/cache"
	"github.com/kritika1265/chartkit/pkg/chart"
	"github.com/kritika1265/chartkit/pkg/chartfile"
	apperrors "github.com/kritika1265/chartkit/pkg/errors"
	"github.com/kritika1265/chartkit/pkg/geom"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default surface width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default surface height in pixels.
	DefaultHeight = 600.0

	// DefaultScale is the default PNG supersampling factor.
	DefaultScale = 2.0

	// DefaultTermCols is the default terminal canvas width in cells.
	DefaultTermCols = 80

	// DefaultTermRows is the default terminal canvas height in cells.
	DefaultTermRows = 24
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatTerm = "term"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatTerm: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Definition options. Exactly one of DefinitionPath or Definition
	// must be set; a pre-parsed Definition takes precedence.
	DefinitionPath string                `json:"definition_path,omitempty"`
	Definition     *chartfile.Definition `json:"definition,omitempty"`

	// Dataset options
	Refresh bool `json:"refresh,omitempty"` // bypass cached remote data and artifacts

	// Surface options. Non-zero values override the definition.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`     // PNG supersampling factor
	TermCols int      `json:"term_cols,omitempty"` // terminal canvas width in cells
	TermRows int      `json:"term_rows,omitempty"` // terminal canvas height in cells

	// Runtime options (not serialized)
	BaseDir    string      `json:"-"` // resolves relative data files; defaults to the definition's directory
	RemoteOnly bool        `json:"-"` // reject local data file references (server policy)
	Logger     *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Definition is the loaded chart definition.
	Definition *chartfile.Definition

	// Points holds the resolved series for line and bar charts.
	Points []chart.Point

	// Slices holds the resolved series for pie charts.
	Slices []chart.Slice

	// DatasetHash is the content hash of the resolved dataset.
	DatasetHash string

	// Size is the resolved surface size.
	Size geom.Size

	// Primitives is the computed geometry.
	Primitives []chart.Primitive

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntryCount     int
	PrimitiveCount int
	DatasetTime    time.Duration
	GeometryTime   time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DatasetHit bool // Whether the parsed dataset came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, term)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.DefinitionPath == "" && o.Definition == nil {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "definition_path or definition is required")
	}
	if o.Width < 0 || o.Height < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidSurface,
			"surface dimensions cannot be negative: %gx%g", o.Width, o.Height)
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.TermCols <= 0 {
		o.TermCols = DefaultTermCols
	}
	if o.TermRows <= 0 {
		o.TermRows = DefaultTermRows
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// SurfaceSize resolves the render surface dimensions. Explicit options win
// over the definition, which wins over the package defaults.
func (o *Options) SurfaceSize(def *chartfile.Definition) geom.Size {
	size := geom.Size{Width: DefaultWidth, Height: DefaultHeight}
	if def != nil {
		if def.Width > 0 {
			size.Width = float64(def.Width)
		}
		if def.Height > 0 {
			size.Height = float64(def.Height)
		}
	}
	if o.Width > 0 {
		size.Width = o.Width
	}
	if o.Height > 0 {
		size.Height = o.Height
	}
	return size
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Scale and terminal size only key the formats they affect, so tuning one
// format does not invalidate the cached artifacts of the others.
func (o *Options) ArtifactKeyOpts(format string, def *chartfile.Definition) cache.ArtifactKeyOpts {
	ko := cache.ArtifactKeyOpts{
		Format:     format,
		Title:      def.Title,
		Background: def.Style.Background,
	}
	switch format {
	case FormatPNG:
		ko.Scale = o.Scale
	case FormatTerm:
		ko.Cols = o.TermCols
		ko.Rows = o.TermRows
	}
	return ko
}
