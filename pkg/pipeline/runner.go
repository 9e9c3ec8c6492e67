package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/turkshead/pkg/cache"
	"github.com/matzehuels/turkshead/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → analyze → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	result := &Result{
		RunID:  uuid.NewString(),
		Source: opts.Source(),
	}
	logger := r.Logger.With("run", result.RunID[:8])

	// Stage 1: Build
	hooks.OnBuildStart(ctx, string(result.Source))
	buildStart := time.Now()
	built, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	if err != nil {
		hooks.OnBuildComplete(ctx, string(result.Source), 0, result.Stats.BuildTime, err)
		return nil, fmt.Errorf("build: %w", err)
	}
	hooks.OnBuildComplete(ctx, string(result.Source), len(built.Knots), result.Stats.BuildTime, nil)
	result.Synthesis = built.Synthesis
	result.CacheInfo.BuildHit = buildHit

	knots := built.Knots
	if opts.Limit > 0 && len(knots) > opts.Limit {
		knots = knots[:opts.Limit]
	}
	result.Stats.KnotCount = len(knots)

	logger.Info("built knots",
		"source", result.Source,
		"knots", len(built.Knots),
		"cached", buildHit,
		"duration", result.Stats.BuildTime)

	// Stage 2: Analyze
	analyzeStart := time.Now()
	result.Knots = make([]KnotResult, len(knots))
	for i, n := range knots {
		a, err := r.analyze(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("analyze: %w", err)
		}
		result.Knots[i].Analysis = a
		result.Stats.Strands += a.Strands.Count()
		result.Stats.Crossings += a.Crossings.Len()
	}
	result.Stats.AnalyzeTime = time.Since(analyzeStart)

	logger.Info("analyzed knots",
		"strands", result.Stats.Strands,
		"crossings", result.Stats.Crossings,
		"duration", result.Stats.AnalyzeTime)

	// Stage 3: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	for i := range result.Knots {
		artifacts, hits, err := r.RenderWithCacheInfo(ctx, result.Knots[i].Analysis, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Knots[i].Artifacts = artifacts
		result.CacheInfo.RenderHits += hits
	}
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", result.CacheInfo.RenderHits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) analyze(ctx context.Context, n Named) (*Analysis, error) {
	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, n.Knot.Len())
	start := time.Now()
	a, err := Analyze(n.Name, n.Knot)
	if err != nil {
		hooks.OnAnalyzeComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnAnalyzeComplete(ctx, a.Strands.Count(), a.Crossings.Len(), time.Since(start), nil)
	r.Logger.Debug("analyzed knot",
		"name", n.Name,
		"pivots", n.Knot.Len(),
		"strands", a.Strands.Count(),
		"crossings", a.Crossings.Len())
	return a, nil
}

// RenderWithCacheInfo renders one analysis with caching and returns how many
// artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, a *Analysis, opts Options) (map[string][]byte, int, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, 0, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(a.Knot.Key(), opts.ArtifactKeyOpts(format, a.Name))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	hits := len(artifacts)
	if len(missing) == 0 {
		return artifacts, hits, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, a, sub)
	if err != nil {
		return nil, 0, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(a.Knot.Key(), opts.ArtifactKeyOpts(format, a.Name))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return artifacts, hits, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
