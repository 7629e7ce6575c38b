// Package observability decouples the chart pipeline from metrics and
// tracing backends.
//
// The pipeline, cache, and dataset fetcher emit events through small
// hook interfaces instead of importing an instrumentation framework.
// Every hook defaults to a no-op, so library code calls them
// unconditionally. A binary that wants telemetry registers its own
// implementations once at startup:
//
//	observability.SetPipelineHooks(promPipelineHooks{})
//	observability.SetCacheHooks(promCacheHooks{})
//
// and the libraries report what they are doing:
//
//	observability.Cache().OnHit(ctx, "artifact")
//
// Hook implementations must be safe for concurrent use: renders encode
// formats in parallel and the server overlaps requests. They should
// also return quickly, because cache hooks sit on the render hot path.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives one start/complete pair per pipeline stage.
// The complete event carries the stage error, so a hook sees failures
// as well as successes.
type PipelineHooks interface {
	// OnDatasetStart fires before a dataset is resolved. source is the
	// file path or URL, or "inline" for embedded data.
	OnDatasetStart(ctx context.Context, source string)

	// OnDatasetComplete fires after resolution with the entry count.
	OnDatasetComplete(ctx context.Context, source string, count int, duration time.Duration, err error)

	// OnGeometryStart fires before primitives are computed for a chart
	// kind ("line", "bar", "pie") with the dataset entry count.
	OnGeometryStart(ctx context.Context, kind string, count int)

	// OnGeometryComplete fires after computation with the primitive count.
	OnGeometryComplete(ctx context.Context, kind string, primitives int, duration time.Duration, err error)

	// OnRenderStart fires before artifacts are encoded.
	OnRenderStart(ctx context.Context, formats []string)

	// OnRenderComplete fires after every requested format finished.
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache traffic events. The scope identifies which
// layer was consulted: "http" for fetched responses, "dataset" for
// parsed remote data, "artifact" for rendered outputs.
type CacheHooks interface {
	OnHit(ctx context.Context, scope string)
	OnMiss(ctx context.Context, scope string)
	OnWrite(ctx context.Context, scope string, size int)
}

// HTTPHooks receives events for remote dataset fetches.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError fires for transport failures; HTTP error statuses arrive
	// through OnResponse instead.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPipelineHooks ignores all pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDatasetStart(context.Context, string) {}
func (NoopPipelineHooks) OnDatasetComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnGeometryStart(context.Context, string, int) {}
func (NoopPipelineHooks) OnGeometryComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnHit(context.Context, string)        {}
func (NoopCacheHooks) OnMiss(context.Context, string)       {}
func (NoopCacheHooks) OnWrite(context.Context, string, int) {}

// NoopHTTPHooks ignores all HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string) {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error) {}

// The registry holds one atomic slot per hook kind. A nil slot means
// no hooks are registered and the accessor returns the no-op
// implementation. Reads outnumber writes by orders of magnitude, so
// the slots are lock-free rather than mutex-guarded.
var (
	pipelineHooks atomic.Pointer[PipelineHooks]
	cacheHooks    atomic.Pointer[CacheHooks]
	httpHooks     atomic.Pointer[HTTPHooks]
)

// SetPipelineHooks registers h for pipeline events. Call it once at
// startup, before the first render; nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.Store(&h)
	}
}

// SetCacheHooks registers h for cache events; nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.Store(&h)
	}
}

// SetHTTPHooks registers h for HTTP events; nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpHooks.Store(&h)
	}
}

// Pipeline returns the registered pipeline hooks, or a no-op.
func Pipeline() PipelineHooks {
	if h := pipelineHooks.Load(); h != nil {
		return *h
	}
	return NoopPipelineHooks{}
}

// Cache returns the registered cache hooks, or a no-op.
func Cache() CacheHooks {
	if h := cacheHooks.Load(); h != nil {
		return *h
	}
	return NoopCacheHooks{}
}

// HTTP returns the registered HTTP hooks, or a no-op.
func HTTP() HTTPHooks {
	if h := httpHooks.Load(); h != nil {
		return *h
	}
	return NoopHTTPHooks{}
}

// Reset drops all registered hooks. Tests use it to restore the no-op
// defaults between cases.
func Reset() {
	pipelineHooks.Store(nil)
	cacheHooks.Store(nil)
	httpHooks.Store(nil)
}
