package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

// recorder counts events of every category.
type recorder struct {
	NoopPipelineHooks
	NoopCacheHooks
	NoopHTTPHooks

	mu         sync.Mutex
	candidates int
	tyable     int
	routes     []string
}

func (r *recorder) OnSearchStart(context.Context, string, int)                  {}
func (r *recorder) OnSearchComplete(context.Context, int, time.Duration, error) {}

func (r *recorder) OnCandidate(_ context.Context, tyable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates++
	if tyable {
		r.tyable++
	}
}

func (r *recorder) OnRequest(_ context.Context, _, route string, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	Pipeline().OnBuildStart(ctx, "turkshead")
	Pipeline().OnAnalyzeComplete(ctx, 1, 3, time.Millisecond, nil)
	Search().OnCandidate(ctx, true)
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnRequest(ctx, "GET", "/v1/turkshead", 200, time.Millisecond)

	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Errorf("Search() = %T, want NoopSearchHooks", Search())
	}
}

func TestRegister(t *testing.T) {
	t.Cleanup(Reset)
	r := &recorder{}
	Register(r)

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Search().OnCandidate(ctx, i%2 == 0)
		}()
	}
	wg.Wait()
	HTTP().OnRequest(ctx, "POST", "/v1/synthesize", 200, time.Millisecond)

	if r.candidates != 8 || r.tyable != 4 {
		t.Errorf("candidates = %d, tyable = %d, want 8 and 4", r.candidates, r.tyable)
	}
	if len(r.routes) != 1 || r.routes[0] != "/v1/synthesize" {
		t.Errorf("routes = %v", r.routes)
	}
	if Pipeline() != PipelineHooks(r) || Cache() != CacheHooks(r) {
		t.Error("Register did not install every category")
	}

	Reset()
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("after Reset HTTP() = %T", HTTP())
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)
	r := &recorder{}
	SetSearchHooks(r)
	SetSearchHooks(nil)
	SetCacheHooks(nil)

	if Search() != SearchHooks(r) {
		t.Error("SetSearchHooks(nil) replaced the hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
}
