package knot

import (
	"github.com/matzehuels/turkshead/pkg/lattice"
)

// Strands is a knot's decomposition into circuits. Every pivot belongs to
// exactly one circuit; the number of circuits is the number of cords needed.
type Strands []Circuit

// Count returns the number of strands.
func (s Strands) Count() int { return len(s) }

// SingleStrand reports whether the whole knot is tied from one cord.
func (s Strands) SingleStrand() bool { return len(s) == 1 }

// Pivots returns every pivot of every circuit, circuit by circuit.
func (s Strands) Pivots() []lattice.Point {
	var out []lattice.Point
	for _, c := range s {
		out = append(out, c...)
	}
	return out
}

// Edges returns every edge of every circuit, tagged with its circuit index.
func (s Strands) Edges() []Edge {
	var out []Edge
	for i, c := range s {
		for _, e := range c.Edges() {
			e.Circuit = i
			out = append(out, e)
		}
	}
	return out
}

// Decompose traces circuits until every pivot is covered. The first circuit
// starts at start when given, otherwise at the first pivot in row-major order;
// each later circuit starts at the first pivot not yet visited.
//
// Decompose never returns a partial decomposition: any tracing failure is
// returned as is (matching ErrNotTyable).
func Decompose(k *Knot, start *lattice.Point) (Strands, error) {
	visited := make(map[lattice.Point]bool, len(k.pivots))
	var strands Strands

	next := func() (lattice.Point, bool) {
		for _, p := range k.pivots {
			if !visited[p] {
				return p, true
			}
		}
		return lattice.Point{}, false
	}

	p, ok := next()
	if start != nil {
		p, ok = *start, true
	}
	for ok {
		c, err := Trace(k, p)
		if err != nil {
			return nil, err
		}
		for _, q := range c {
			visited[q] = true
		}
		strands = append(strands, c)
		p, ok = next()
	}
	return strands, nil
}

// StrandCount returns the number of cords needed to tie k.
func StrandCount(k *Knot) (int, error) {
	s, err := Decompose(k, nil)
	if err != nil {
		return 0, err
	}
	return s.Count(), nil
}

// Tyable reports whether k decomposes into circuits without ambiguity.
func Tyable(k *Knot) bool {
	_, err := Decompose(k, nil)
	return err == nil
}
