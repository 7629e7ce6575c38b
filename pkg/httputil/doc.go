// Package httputil provides HTTP utilities for remote dataset access.
//
// # Overview
//
// Chart definitions may reference datasets by URL instead of a local file.
// This package provides the infrastructure for fetching them:
//
//   - [Fetcher]: Cached, retrying HTTP GET for dataset bodies
//   - [Retry]: Automatic retry with exponential backoff
//
// # Fetching
//
// [Fetcher] wraps an http.Client with a response cache and retry policy.
// Responses are cached under keys derived from the request URL so repeated
// renders of the same remote dataset skip the network entirely:
//
//	f := httputil.NewFetcher(c, keyer, logger)
//	data, err := f.Get(ctx, "https://data.example.com/revenue.csv")
//
// Remote data can change without any local signal, so fetched responses use
// a shorter TTL than the rest of the pipeline cache.
//
// # Retry
//
// [Retry] re-runs an operation for transient failures only. Wrap errors
// that should trigger another attempt in [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Other errors (4xx client errors, malformed URLs) are returned immediately.
// The delay doubles after each failed attempt.
package httputil
