package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "turkshead"

// Prometheus implements every hook interface by recording Prometheus metrics.
type Prometheus struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	knotsBuilt    prometheus.Counter

	searches       prometheus.Counter
	candidates     *prometheus.CounterVec
	searchFound    prometheus.Histogram
	searchDuration prometheus.Histogram

	cacheOps *prometheus.CounterVec

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ Hooks = (*Prometheus)(nil)

// NewPrometheus creates the collectors and registers them with reg.
// It panics if any collector is already registered, as prometheus.MustRegister does.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"stage"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Pipeline stages that returned an error.",
		}, []string{"stage"}),
		knotsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "knots_built_total",
			Help:      "Knots produced by the build stage.",
		}),
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Layer searches started.",
		}),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_candidates_total",
			Help:      "Layer search candidates evaluated, by tyability.",
		}, []string{"tyable"}),
		searchFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_found_knots",
			Help:      "Distinct knots found per layer search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of layer searches.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache operations by key type and result.",
		}, []string{"key_type", "result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of served HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		p.stageDuration, p.stageErrors, p.knotsBuilt,
		p.searches, p.candidates, p.searchFound, p.searchDuration,
		p.cacheOps,
		p.requests, p.requestDuration,
	)
	return p
}

func (p *Prometheus) stage(name string, d time.Duration, err error) {
	p.stageDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		p.stageErrors.WithLabelValues(name).Inc()
	}
}

func (p *Prometheus) OnBuildStart(context.Context, string) {}

func (p *Prometheus) OnBuildComplete(_ context.Context, _ string, knots int, d time.Duration, err error) {
	p.stage("build", d, err)
	p.knotsBuilt.Add(float64(knots))
}

func (p *Prometheus) OnAnalyzeStart(context.Context, int) {}

func (p *Prometheus) OnAnalyzeComplete(_ context.Context, _, _ int, d time.Duration, err error) {
	p.stage("analyze", d, err)
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	p.stage("render", d, err)
}

func (p *Prometheus) OnSearchStart(context.Context, string, int) {
	p.searches.Inc()
}

func (p *Prometheus) OnCandidate(_ context.Context, tyable bool) {
	p.candidates.WithLabelValues(strconv.FormatBool(tyable)).Inc()
}

func (p *Prometheus) OnSearchComplete(_ context.Context, found int, d time.Duration, _ error) {
	p.searchFound.Observe(float64(found))
	p.searchDuration.Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, _ int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
}

func (p *Prometheus) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
