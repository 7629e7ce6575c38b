// Package dataset loads chart data from local files and remote URLs.
//
// A dataset reference is either a filesystem path (absolute, or relative
// to the chart definition) or an http(s) URL. The payload format is
// selected by file extension: .csv, .json, and .yaml/.yml are supported.
// Loaded values are validated to be finite so geometry math downstream
// never sees NaN or infinities.
package dataset

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kritika1265/chartkit/pkg/chart"
	apperrors "github.com/kritika1265/chartkit/pkg/errors"
	"github.com/kritika1265/chartkit/pkg/httputil"
)

// Format identifies a dataset payload encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat resolves the payload format from a reference's file
// extension. URL references use the extension of the URL path.
func DetectFormat(ref string) (Format, error) {
	ext := strings.ToLower(path.Ext(ref))
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidDataset,
		"unsupported dataset format %q (want .csv, .json, or .yaml)", ext)
}

// Source resolves dataset references to decoded chart data.
type Source struct {
	fetcher    *httputil.Fetcher
	baseDir    string
	allowLocal bool
	logger     *log.Logger
}

// NewSource creates a source that resolves local paths relative to
// baseDir and fetches URLs through fetcher. A nil fetcher gets an
// uncached default; a nil logger discards output.
func NewSource(fetcher *httputil.Fetcher, baseDir string, logger *log.Logger) *Source {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if fetcher == nil {
		fetcher = httputil.NewFetcher(nil, nil, logger)
	}
	return &Source{fetcher: fetcher, baseDir: baseDir, allowLocal: true, logger: logger}
}

// NewRemoteSource creates a source that only accepts URL references.
// Local paths are rejected, which keeps server-side rendering from
// reading files off the host.
func NewRemoteSource(fetcher *httputil.Fetcher, logger *log.Logger) *Source {
	s := NewSource(fetcher, "", logger)
	s.allowLocal = false
	return s
}

// Points loads an ordered series for line and bar charts.
func (s *Source) Points(ctx context.Context, ref string) ([]chart.Point, error) {
	data, format, err := s.read(ctx, ref)
	if err != nil {
		return nil, err
	}
	pts, err := DecodePoints(data, format)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "decode %s", ref)
	}
	s.logger.Debug("dataset loaded", "ref", ref, "format", format, "points", len(pts))
	return pts, nil
}

// Slices loads labeled values for pie charts.
func (s *Source) Slices(ctx context.Context, ref string) ([]chart.Slice, error) {
	data, format, err := s.read(ctx, ref)
	if err != nil {
		return nil, err
	}
	sls, err := DecodeSlices(data, format)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "decode %s", ref)
	}
	s.logger.Debug("dataset loaded", "ref", ref, "format", format, "slices", len(sls))
	return sls, nil
}

func (s *Source) read(ctx context.Context, ref string) ([]byte, Format, error) {
	format, err := DetectFormat(ref)
	if err != nil {
		return nil, "", err
	}

	if httputil.IsURL(ref) {
		data, err := s.fetcher.Get(ctx, ref)
		if err != nil {
			return nil, "", err
		}
		return data, format, nil
	}

	if !s.allowLocal {
		return nil, "", apperrors.New(apperrors.ErrCodeInvalidPath,
			"local dataset path %q not allowed, use an http(s) URL", ref)
	}

	p := ref
	if !filepath.IsAbs(p) && s.baseDir != "" {
		p = filepath.Join(s.baseDir, p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", apperrors.New(apperrors.ErrCodeFileNotFound, "dataset file not found: %s", p)
		}
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "read dataset %s", p)
	}
	return data, format, nil
}
