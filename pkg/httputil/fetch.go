package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kritika1265/chartkit/pkg/cache"
	apperrors "github.com/kritika1265/chartkit/pkg/errors"
	"github.com/kritika1265/chartkit/pkg/observability"
)

// maxBodySize caps fetched dataset bodies. Chart datasets are tens of
// points; anything near this limit is a misconfigured reference.
const maxBodySize = 32 << 20 // 32 MiB

// defaultTimeout bounds a single fetch attempt.
const defaultTimeout = 30 * time.Second

// IsURL reports whether ref names a remote dataset rather than a local
// file path.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Fetcher retrieves remote dataset bodies with response caching and
// retry. The zero value is not usable; construct with [NewFetcher].
type Fetcher struct {
	client     *http.Client
	cache      cache.Cache
	keyer      cache.Keyer
	logger     *log.Logger
	retryDelay time.Duration
	refresh    bool
}

// NewFetcher creates a fetcher backed by the given cache.
// A nil cache disables response caching, a nil keyer selects the
// default keyer, and a nil logger discards log output.
func NewFetcher(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Fetcher{
		client:     &http.Client{Timeout: defaultTimeout},
		cache:      c,
		keyer:      keyer,
		logger:     logger,
		retryDelay: 500 * time.Millisecond,
	}
}

// SetRefresh controls whether cached responses are skipped. With refresh
// enabled every Get hits the network; fresh responses still repopulate
// the cache.
func (f *Fetcher) SetRefresh(refresh bool) {
	f.refresh = refresh
}

// Get returns the response body for rawURL, serving from the cache when
// a fresh entry exists. Transient failures (network errors, 5xx, 429)
// are retried with backoff; client errors are returned immediately.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "invalid dataset URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidPath, "unsupported URL scheme %q", u.Scheme)
	}

	key := f.keyer.HTTPKey(u.Host, rawURL)
	if !f.refresh {
		if data, hit, err := f.cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnHit(ctx, "http")
			f.logger.Debug("dataset fetch cache hit", "url", rawURL, "bytes", len(data))
			return data, nil
		}
		observability.Cache().OnMiss(ctx, "http")
	}

	var body []byte
	err = Retry(ctx, 3, f.retryDelay, func() error {
		var fetchErr error
		body, fetchErr = f.fetch(ctx, u)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(ctx, key, body, cache.TTLHTTP); err == nil {
		observability.Cache().OnWrite(ctx, "http", len(body))
	}
	return body, nil
}

// fetch performs one GET attempt, classifying failures as retryable or
// permanent.
func (f *Fetcher) fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	observability.HTTP().OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	observability.HTTP().OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))
	f.logger.Debug("dataset fetch", "url", u.String(), "status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Millisecond))

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
		if err != nil {
			return nil, &RetryableError{Err: err}
		}
		if len(body) > maxBodySize {
			return nil, fmt.Errorf("dataset at %s exceeds %d byte limit", u, maxBodySize)
		}
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: fmt.Errorf("GET %s: %s", u, resp.Status)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.New(apperrors.ErrCodeFileNotFound, "dataset not found at %s", u)
	default:
		return nil, fmt.Errorf("GET %s: %s", u, resp.Status)
	}
}
