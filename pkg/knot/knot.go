package knot

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/turkshead/pkg/lattice"
)

// Knot is a normalized, immutable set of pivots.
//
// The zero value is not usable; build knots with [New].
type Knot struct {
	pivots []lattice.Point
	index  map[lattice.Point]int
	xmod   int
	ymax   int
	valid  bool
}

// Normalize returns a translated, sorted, duplicate-free copy of points whose
// lower left corner is (0,0). The input slice is not modified.
//
// Returns ErrEmptyKnot for an empty input, ErrMalformedPoint if any point has
// an odd coordinate sum, and ErrNoLowerLeftCorner if no point sits at the
// minimum x and minimum y together.
func Normalize(points []lattice.Point) ([]lattice.Point, error) {
	if len(points) == 0 {
		return nil, ErrEmptyKnot
	}
	minX, minY := points[0].X, points[0].Y
	for _, p := range points {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPoint, p)
		}
		minX, minY = min(minX, p.X), min(minY, p.Y)
	}
	if !slices.Contains(points, lattice.Pt(minX, minY)) {
		return nil, fmt.Errorf("%w: nothing at (%d,%d)", ErrNoLowerLeftCorner, minX, minY)
	}

	out := make([]lattice.Point, len(points))
	for i, p := range points {
		out[i] = p.Add(-minX, -minY)
	}
	lattice.Sort(out)
	return slices.Compact(out), nil
}

// New normalizes points and builds a knot from them.
//
// An invalid knot (odd pivot count, or pivot count different from the
// horizontal period) is still returned; Valid reports the condition and
// operations that need tyability fail on their own.
func New(points []lattice.Point) (*Knot, error) {
	pivots, err := Normalize(points)
	if err != nil {
		return nil, err
	}

	k := &Knot{
		pivots: pivots,
		index:  make(map[lattice.Point]int, len(pivots)),
	}
	maxX := 0
	for i, p := range pivots {
		k.index[p] = i
		maxX = max(maxX, p.X)
		k.ymax = max(k.ymax, p.Y)
	}
	// The period must clear the span: +1 for odd spans, +2 for even ones.
	k.xmod = maxX + 2 - maxX%2
	k.valid = len(pivots)%2 == 0 && k.xmod == len(pivots)
	return k, nil
}

// MustNew is like New but panics on error. Intended for tests and fixed
// literals.
func MustNew(points []lattice.Point) *Knot {
	k, err := New(points)
	if err != nil {
		panic(err)
	}
	return k
}

// Pivots returns a copy of the pivots in row-major order.
func (k *Knot) Pivots() []lattice.Point { return slices.Clone(k.pivots) }

// Len returns the number of pivots.
func (k *Knot) Len() int { return len(k.pivots) }

// XModulus returns the horizontal period.
func (k *Knot) XModulus() int { return k.xmod }

// YMax returns the largest pivot y-coordinate.
func (k *Knot) YMax() int { return k.ymax }

// Valid reports whether the pivot count is even and equal to the period.
func (k *Knot) Valid() bool { return k.valid }

// Contains reports whether p is a pivot.
func (k *Knot) Contains(p lattice.Point) bool {
	_, ok := k.index[p]
	return ok
}

// Lines returns the wrapped line identities of p under this knot's period.
func (k *Knot) Lines(p lattice.Point) (minus, plus int) {
	return lattice.Lines(p, k.xmod, true)
}

// Slope returns the diagonal shared by p1 and p2 under this knot's period.
func (k *Knot) Slope(p1, p2 lattice.Point) lattice.Slope {
	return lattice.SlopeBetween(p1, p2, k.xmod)
}

// Key returns the canonical form of the knot: its sorted pivots joined by ';'.
// Two knots are equal iff their keys are equal.
func (k *Knot) Key() string {
	parts := make([]string, len(k.pivots))
	for i, p := range k.pivots {
		parts[i] = p.Key()
	}
	return strings.Join(parts, ";")
}

// Equal reports whether both knots have the same normalized pivots.
func (k *Knot) Equal(o *Knot) bool {
	if k == nil || o == nil {
		return k == o
	}
	return slices.Equal(k.pivots, o.pivots)
}

func (k *Knot) String() string {
	return fmt.Sprintf("Knot%v(mod %d)", k.pivots, k.xmod)
}
