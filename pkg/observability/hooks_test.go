package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

// countingCacheHooks records how often each event fired.
type countingCacheHooks struct {
	mu     sync.Mutex
	hits   int
	misses int
	writes int
}

func (c *countingCacheHooks) OnHit(context.Context, string) {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func (c *countingCacheHooks) OnMiss(context.Context, string) {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
}

func (c *countingCacheHooks) OnWrite(context.Context, string, int) {
	c.mu.Lock()
	c.writes++
	c.mu.Unlock()
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestRegisteredHooksReceiveEvents(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	counting := &countingCacheHooks{}
	SetCacheHooks(counting)

	ctx := context.Background()
	Cache().OnHit(ctx, "artifact")
	Cache().OnHit(ctx, "dataset")
	Cache().OnMiss(ctx, "http")
	Cache().OnWrite(ctx, "artifact", 2048)

	if counting.hits != 2 || counting.misses != 1 || counting.writes != 1 {
		t.Errorf("events = %d hits, %d misses, %d writes; want 2, 1, 1",
			counting.hits, counting.misses, counting.writes)
	}
}

func TestResetRestoresNoops(t *testing.T) {
	SetPipelineHooks(stubPipelineHooks{})
	SetCacheHooks(&countingCacheHooks{})
	SetHTTPHooks(stubHTTPHooks{})

	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("after Reset Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("after Reset Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("after Reset HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	counting := &countingCacheHooks{}
	SetCacheHooks(counting)
	SetCacheHooks(nil)

	if Cache() != counting {
		t.Errorf("Cache() = %T, want the previously registered hooks", Cache())
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	// Exercised under -race: readers call hooks while writers swap them.
	var wg sync.WaitGroup
	ctx := context.Background()
	for range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 100 {
				SetCacheHooks(&countingCacheHooks{})
			}
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				Cache().OnHit(ctx, "artifact")
				Cache().OnMiss(ctx, "artifact")
			}
		}()
	}
	wg.Wait()
}

func TestNoopHooksAcceptAllEvents(t *testing.T) {
	ctx := context.Background()

	var p PipelineHooks = NoopPipelineHooks{}
	p.OnDatasetStart(ctx, "https://data.example.com/revenue.csv")
	p.OnDatasetComplete(ctx, "https://data.example.com/revenue.csv", 12, time.Millisecond, nil)
	p.OnGeometryStart(ctx, "pie", 6)
	p.OnGeometryComplete(ctx, "pie", 6, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg", "png"})
	p.OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, nil)

	var h HTTPHooks = NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "data.example.com", "/revenue.csv")
	h.OnResponse(ctx, "GET", "data.example.com", "/revenue.csv", 200, time.Millisecond)
	h.OnError(ctx, "GET", "data.example.com", "/revenue.csv", context.DeadlineExceeded)
}

type stubPipelineHooks struct{ NoopPipelineHooks }
type stubHTTPHooks struct{ NoopHTTPHooks }
