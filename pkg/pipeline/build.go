package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/turkshead/pkg/cache"
	errs "github.com/matzehuels/turkshead/pkg/errors"
	knotio "github.com/matzehuels/turkshead/pkg/io"
	"github.com/matzehuels/turkshead/pkg/knot"
	"github.com/matzehuels/turkshead/pkg/knot/factory"
)

// Named is a knot with its display name.
type Named struct {
	Name string
	Knot *knot.Knot
}

// Built is the output of the build stage.
type Built struct {
	Source    knotio.DefinitionKind
	Knots     []Named
	Synthesis *factory.Synthesis // set for layer sources
}

// Build constructs the knots of the configured source without touching the
// cache.
func Build(ctx context.Context, opts Options) (*Built, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}
	b := &Built{Source: opts.Source()}
	switch b.Source {
	case knotio.KindPoints:
		k, err := knot.New(opts.Points)
		if err != nil {
			return nil, errs.FromKnot(err, "points")
		}
		b.Knots = []Named{{Name: opts.Name, Knot: k}}
	case knotio.KindTurksHead:
		k, err := factory.TurksHead(opts.Leads, opts.Bights)
		if err != nil {
			return nil, errs.FromKnot(err, "turkshead")
		}
		b.Knots = []Named{{Name: opts.Name, Knot: k}}
	case knotio.KindLayers:
		s, err := factory.Synthesize(ctx, opts.Layers, opts.SynthesisOptions())
		if err != nil {
			return nil, errs.FromKnot(err, "synthesize %s", opts.Layers)
		}
		b.setSynthesis(opts.Name, s)
	}
	return b, nil
}

func (b *Built) setSynthesis(name string, s *factory.Synthesis) {
	b.Synthesis = s
	b.Knots = make([]Named, len(s.Knots))
	for i, f := range s.Knots {
		b.Knots[i] = Named{Name: fmt.Sprintf("%s#%d", name, i+1), Knot: f.Knot}
	}
}

// BuildWithCacheInfo builds the configured source. Layer searches are read
// from and written to the cache; the boolean reports a cache hit.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*Built, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}
	if opts.Source() != knotio.KindLayers {
		b, err := Build(ctx, opts)
		return b, false, err
	}

	cacheKey := r.Keyer.SynthesisKey(opts.Layers.Sorted().String(), cache.SynthesisKeyOpts{
		SingleStrand: opts.SingleStrand,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if s, err := knotio.ReadSynthesis(bytes.NewReader(data)); err == nil {
				b := &Built{Source: knotio.KindLayers}
				b.setSynthesis(opts.Name, s)
				return b, true, nil
			}
			r.Logger.Debug("discarding unreadable cache entry", "key", cacheKey)
		}
	}

	b, err := Build(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := knotio.WriteSynthesis(b.Synthesis, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.SynthesisTTL); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		}
	}
	return b, false, nil
}
