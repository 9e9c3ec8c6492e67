package knot

import (
	"fmt"

	"github.com/matzehuels/turkshead/pkg/lattice"
)

// Circuit is the closed sequence of pivots one cord visits. Consecutive pivots
// alternate between slope +1 and slope -1 diagonals, starting with +1; the last
// pivot connects back to the first.
type Circuit []lattice.Point

// Len returns the number of pivots on the circuit.
func (c Circuit) Len() int { return len(c) }

// Edge is one diagonal run of a cord between two consecutive pivots.
type Edge struct {
	Circuit int           `json:"circuit"` // index of the circuit in its decomposition
	Index   int           `json:"index"`   // position of From within the circuit
	From    lattice.Point `json:"from"`
	To      lattice.Point `json:"to"`
	Slope   lattice.Slope `json:"slope"`
}

// Edges returns the circuit's edges in walk order, including the closing edge
// from the last pivot back to the first. Slopes alternate +1, -1, ...
func (c Circuit) Edges() []Edge {
	if len(c) < 2 {
		return nil
	}
	edges := make([]Edge, len(c))
	slope := lattice.Up
	for i, p := range c {
		edges[i] = Edge{Index: i, From: p, To: c[(i+1)%len(c)], Slope: slope}
		slope = slope.Flip()
	}
	return edges
}

// Line returns every pivot other than p on the diagonal of the given slope
// through p, in row-major order. p itself need not be a pivot.
func Line(k *Knot, p lattice.Point, s lattice.Slope) []lattice.Point {
	id := lattice.LineID(p, s, k.xmod)
	var out []lattice.Point
	for _, q := range k.pivots {
		if q != p && lattice.LineID(q, s, k.xmod) == id {
			out = append(out, q)
		}
	}
	return out
}

// Neighbor returns the single other pivot on p's diagonal of slope s.
// Returns ErrAmbiguousLine when the diagonal holds none or several.
func Neighbor(k *Knot, p lattice.Point, s lattice.Slope) (lattice.Point, error) {
	line := Line(k, p, s)
	if len(line) != 1 {
		return lattice.Point{}, fmt.Errorf("%w: %d pivots on the %v line through %v", ErrAmbiguousLine, len(line), s, p)
	}
	return line[0], nil
}

// Trace walks the cord through start, alternating slope +1 and slope -1
// diagonals, until it closes. start must be a pivot (ErrNotPivot).
//
// Returns an error matching both ErrNotTyable and ErrAmbiguousLine when some
// pivot on the way lacks exactly one neighbor in the required direction.
func Trace(k *Knot, start lattice.Point) (Circuit, error) {
	if !k.Contains(start) {
		return nil, fmt.Errorf("%w: %v", ErrNotPivot, start)
	}

	// Adjacency is a matching, so a valid walk closes within len(pivots) steps.
	limit := len(k.pivots) + 1
	c := Circuit{start}
	p, slope := start, lattice.Up
	for range limit {
		next, err := Neighbor(k, p, slope)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotTyable, err)
		}
		if next == start {
			return c, nil
		}
		c = append(c, next)
		p, slope = next, slope.Flip()
	}
	return nil, fmt.Errorf("%w: walk from %v did not close after %d steps", ErrNotTyable, start, limit)
}

// OnCircuit returns the non-pivot lattice points passed along c, in walk order,
// including the closing edge. It returns nil if any edge has no shared diagonal.
func OnCircuit(k *Knot, c Circuit) ([]lattice.Point, error) {
	var out []lattice.Point
	for _, e := range c.Edges() {
		if k.Slope(e.From, e.To) == lattice.None {
			return nil, nil
		}
		pts, err := PointsBetween(k, e.From, e.To)
		if err != nil {
			return nil, err
		}
		out = append(out, pts...)
	}
	return out, nil
}
