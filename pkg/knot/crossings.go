package knot

import (
	"maps"
	"slices"

	"github.com/matzehuels/turkshead/pkg/lattice"
)

// Crossing is a lattice point passed by two or more cord segments.
type Crossing struct {
	Point lattice.Point `json:"point"`
	// Over is the slope of the segment drawn on top.
	Over lattice.Slope `json:"over"`
	// Edges lists every circuit edge through Point, in decomposition order.
	Edges []Edge `json:"edges"`
}

// Under returns the slope of the segment drawn underneath.
func (c Crossing) Under() lattice.Slope { return c.Over.Flip() }

// Crossings maps crossing points to their over/under assignment.
type Crossings struct {
	byPoint map[lattice.Point]*Crossing
}

// Len returns the number of crossings.
func (c *Crossings) Len() int { return len(c.byPoint) }

// At returns the crossing at p, if any.
func (c *Crossings) At(p lattice.Point) (Crossing, bool) {
	x, ok := c.byPoint[p]
	if !ok {
		return Crossing{}, false
	}
	return *x, true
}

// List returns all crossings in row-major order.
func (c *Crossings) List() []Crossing {
	pts := slices.SortedFunc(maps.Keys(c.byPoint), lattice.Compare)
	out := make([]Crossing, len(pts))
	for i, p := range pts {
		out[i] = *c.byPoint[p]
	}
	return out
}

// Rows returns the y-coordinates that hold crossings, ascending.
func (c *Crossings) Rows() []int {
	seen := make(map[int]bool)
	for p := range c.byPoint {
		seen[p.Y] = true
	}
	return slices.Sorted(maps.Keys(seen))
}

// Classify finds every lattice point crossed by two or more edges of the
// decomposition and assigns which edge passes over.
//
// Rows are processed bottom-up. The first row with crossings puts the slope +1
// segment on top; every further row flips the choice. On the classical
// Turks'-Head this yields the alternating over/under weave. The rule is a
// heuristic: irregular or multi-strand layouts may come out inconsistent.
func Classify(k *Knot, strands Strands) (*Crossings, error) {
	visits := make(map[lattice.Point][]Edge)
	for _, e := range strands.Edges() {
		pts, err := PointsBetween(k, e.From, e.To)
		if err != nil {
			return nil, err
		}
		for _, p := range pts {
			visits[p] = append(visits[p], e)
		}
	}

	rows := make(map[int][]lattice.Point)
	for p, edges := range visits {
		if len(edges) >= 2 {
			rows[p.Y] = append(rows[p.Y], p)
		}
	}

	out := &Crossings{byPoint: make(map[lattice.Point]*Crossing)}
	over := lattice.Up
	for _, y := range slices.Sorted(maps.Keys(rows)) {
		for _, p := range rows[y] {
			out.byPoint[p] = &Crossing{Point: p, Over: over, Edges: visits[p]}
		}
		over = over.Flip()
	}
	return out, nil
}
