package factory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/turkshead/pkg/knot"
	"github.com/matzehuels/turkshead/pkg/knot/perm"
	"github.com/matzehuels/turkshead/pkg/lattice"
	"github.com/matzehuels/turkshead/pkg/observability"
)

var (
	// ErrLayerSearchExhausted is returned when no candidate of a layer search
	// ties (or, with SingleStrand, none ties into a single strand).
	ErrLayerSearchExhausted = errors.New("factory: no tyable knot for these layers")

	// ErrSearchTooLarge is returned when the candidate count exceeds
	// Options.MaxCandidates.
	ErrSearchTooLarge = errors.New("factory: search space too large")
)

// Options configures Synthesize.
type Options struct {
	// SingleStrand keeps only knots that tie with one cord.
	SingleStrand bool
	// Workers is the number of goroutines evaluating candidates.
	// Defaults to runtime.GOMAXPROCS(0).
	Workers int
	// MaxCandidates refuses searches larger than this. Zero means no limit.
	MaxCandidates int
	// Hooks receives search events. Defaults to observability.Search().
	Hooks observability.SearchHooks
}

// Found is one knot produced by a layer search.
type Found struct {
	Knot    *knot.Knot
	Strands int
}

// Synthesis is the outcome of a layer search.
type Synthesis struct {
	Layers     Layers
	Candidates int     // size of the search space
	Tyable     int     // candidates that tied, before dedup and strand filtering
	Knots      []Found // distinct knots, sorted by key
}

// row is the per-layer search state: the candidate offset sets within one
// section and how they replicate.
type row struct {
	height   int
	sections int
	size     int
	choices  [][]int
}

func plan(layers Layers) []row {
	total := layers.Total()
	rows := make([]row, len(layers))
	for i, l := range layers.Sorted() {
		g := perm.GCD(total, l.Count)
		size := total / g
		rows[i] = row{
			height:   l.Height,
			sections: g,
			size:     size,
			choices:  perm.Combinations(size, l.Count/g, 0),
		}
	}
	return rows
}

// SearchSpace returns the number of candidates Synthesize evaluates for
// layers, or an error if the layers are invalid.
func SearchSpace(layers Layers) (int, error) {
	if err := layers.Validate(); err != nil {
		return 0, err
	}
	n := 1
	for _, r := range plan(layers) {
		n *= len(r.choices)
	}
	return n, nil
}

// assemble builds the candidate pivots for one choice per row. The bottom row
// holds total pivots; row slots sit at x = height%2 + 2j.
func assemble(total int, rows []row, pick []int) []lattice.Point {
	pts := make([]lattice.Point, 0, 2*total)
	for j := range total {
		pts = append(pts, lattice.Pt(2*j, 0))
	}
	for i, r := range rows {
		for s := range r.sections {
			for _, off := range r.choices[pick[i]] {
				j := s*r.size + off
				pts = append(pts, lattice.Pt(r.height%2+2*j, r.height))
			}
		}
	}
	return pts
}

// Synthesize searches every placement the layers allow and returns the knots
// that tie. Candidates failing with a tyability error are skipped; any other
// error aborts the search. The result is identical for every worker count.
//
// Returns ErrInvalidLayer or ErrNonDivisibleLayer before searching, and
// ErrLayerSearchExhausted (with an empty, non-nil Synthesis) when nothing
// survives.
func Synthesize(ctx context.Context, layers Layers, opts Options) (*Synthesis, error) {
	candidates, err := SearchSpace(layers)
	if err != nil {
		return nil, err
	}
	if opts.MaxCandidates > 0 && candidates > opts.MaxCandidates {
		return nil, fmt.Errorf("%w: %d candidates, limit %d", ErrSearchTooLarge, candidates, opts.MaxCandidates)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	hooks := opts.Hooks
	if hooks == nil {
		hooks = observability.Search()
	}

	start := time.Now()
	hooks.OnSearchStart(ctx, layers.String(), candidates)

	rows := plan(layers)
	total := layers.Total()
	sets := make([][]int, len(rows))
	for i, r := range rows {
		sets[i] = perm.Seq(len(r.choices))
	}

	var (
		mu     sync.Mutex
		found  = make(map[string]Found)
		tyable int
	)

	g, gctx := errgroup.WithContext(ctx)
	picks := make(chan []int, workers*2)

	g.Go(func() error {
		defer close(picks)
		for pick := range perm.Product(sets) {
			select {
			case picks <- pick:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range workers {
		g.Go(func() error {
			for pick := range picks {
				f, ok, err := evaluate(assemble(total, rows, pick))
				if err != nil {
					return err
				}
				hooks.OnCandidate(gctx, ok)
				if !ok {
					continue
				}
				mu.Lock()
				tyable++
				if !opts.SingleStrand || f.Strands == 1 {
					found[f.Knot.Key()] = f
				}
				mu.Unlock()
			}
			return nil
		})
	}

	err = g.Wait()
	res := &Synthesis{Layers: layers, Candidates: candidates, Tyable: tyable}
	if err == nil {
		res.Knots = make([]Found, 0, len(found))
		for _, f := range found {
			res.Knots = append(res.Knots, f)
		}
		slices.SortFunc(res.Knots, func(a, b Found) int { return cmp.Compare(a.Knot.Key(), b.Knot.Key()) })
		if len(res.Knots) == 0 {
			err = fmt.Errorf("%w: %v", ErrLayerSearchExhausted, layers)
		}
	}
	hooks.OnSearchComplete(ctx, len(res.Knots), time.Since(start), err)
	if err != nil && !errors.Is(err, ErrLayerSearchExhausted) {
		return nil, err
	}
	return res, err
}

// evaluate decomposes one candidate. ok is false when it does not tie.
func evaluate(pts []lattice.Point) (f Found, ok bool, err error) {
	k, err := knot.New(pts)
	if err != nil {
		return Found{}, false, err
	}
	strands, err := knot.Decompose(k, nil)
	if knot.IsNotTyable(err) {
		return Found{}, false, nil
	}
	if err != nil {
		return Found{}, false, err
	}
	return Found{Knot: k, Strands: strands.Count()}, true, nil
}
