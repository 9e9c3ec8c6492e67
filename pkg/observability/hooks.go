// Package observability carries instrumentation events out of the knot
// packages without tying them to a metrics backend.
//
// Four hook interfaces cover the events turkshead emits: [PipelineHooks] for
// build, analyze and render stages, [SearchHooks] for layer synthesis,
// [CacheHooks] for result caching and [HTTPHooks] for served requests. Each
// defaults to a no-op. [Prometheus] implements all four, and [Register]
// installs such a backend in one call:
//
//	m := observability.NewPrometheus(prometheus.NewRegistry())
//	observability.Register(m)
//	defer observability.Reset()
//
// Emitters fetch the current hooks at the call site:
//
//	observability.Search().OnSearchStart(ctx, layers, candidates)
//	observability.Search().OnSearchComplete(ctx, found, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the knot pipeline.
type PipelineHooks interface {
	// OnBuildStart and OnBuildComplete bracket knot construction from
	// points, TH parameters or a layer search.
	OnBuildStart(ctx context.Context, source string)
	OnBuildComplete(ctx context.Context, source string, knots int, duration time.Duration, err error)

	// OnAnalyzeStart and OnAnalyzeComplete bracket decomposition and
	// crossing classification of one knot.
	OnAnalyzeStart(ctx context.Context, pivots int)
	OnAnalyzeComplete(ctx context.Context, strands, crossings int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// SearchHooks receives events from layer synthesis.
type SearchHooks interface {
	OnSearchStart(ctx context.Context, layers string, candidates int)
	// OnCandidate is called once per evaluated candidate, from worker
	// goroutines.
	OnCandidate(ctx context.Context, tyable bool)
	// OnSearchComplete reports the number of distinct knots found.
	OnSearchComplete(ctx context.Context, found int, duration time.Duration, err error)
}

// CacheHooks receives events from the pipeline cache. keyType names the
// cached stage, e.g. "synthesis" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records a served request. route is the matched pattern, not
	// the raw path, to keep label cardinality bounded.
	OnRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// Hooks is implemented by backends that observe every event category.
type Hooks interface {
	PipelineHooks
	SearchHooks
	CacheHooks
	HTTPHooks
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnAnalyzeStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnAnalyzeComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, string, int)                  {}
func (NoopSearchHooks) OnCandidate(context.Context, bool)                           {}
func (NoopSearchHooks) OnSearchComplete(context.Context, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// slot holds the current implementation of one hook interface.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
}

func newSlot[T any](def T) *slot[T] { return &slot[T]{cur: def, def: def} }

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// set installs h unless it is nil.
func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.def
	s.mu.Unlock()
}

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	searchSlot   = newSlot[SearchHooks](NoopSearchHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks installs h for pipeline events. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h) }

// SetSearchHooks installs h for layer search events. A nil h is ignored.
func SetSearchHooks(h SearchHooks) { searchSlot.set(h) }

// SetCacheHooks installs h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h) }

// SetHTTPHooks installs h for server events. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h) }

// Register installs h for every event category.
func Register(h Hooks) {
	SetPipelineHooks(h)
	SetSearchHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Search() SearchHooks     { return searchSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

// Reset restores the no-op hooks.
func Reset() {
	pipelineSlot.reset()
	searchSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
