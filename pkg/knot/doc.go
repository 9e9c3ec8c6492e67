// Package knot models Turks'-Head-style knots on the diagonal lattice and
// derives their topology.
//
// # Overview
//
// A [Knot] is a set of pivots: lattice points where the cord turns from one
// diagonal onto the other. Construction normalizes the set so its lower left
// corner sits at (0,0), sorts it row-major and derives the horizontal period
// (XModulus) and the height (YMax). Knots are immutable once built.
//
//	k, err := knot.New([]lattice.Point{
//	    {X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0},
//	    {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 4, Y: 2},
//	})
//
// # Tracing
//
// [Trace] walks from a pivot along the slope +1 diagonal to the only other
// pivot on it, then along slope -1, alternating until it returns to the start.
// A walk that finds zero or several pivots on a diagonal fails with
// [ErrNotTyable]. [Decompose] repeats the walk from the first unvisited pivot
// until every pivot belongs to exactly one circuit; the number of circuits is
// the number of cords needed to tie the pattern.
//
// # Paths and crossings
//
// [PointsBetween] enumerates the lattice points a cord passes between two
// pivots, wrapping across the horizontal seam. [PathBetween] returns the same
// walk as drawable polylines split at the seam. [Classify] finds every point
// passed by two or more cord segments and decides which segment is drawn on
// top, alternating row by row.
//
// The over/under rule is a heuristic. It reproduces the classical Turks'-Head
// weave on symmetric single-strand patterns; irregular or multi-strand layouts
// can come out inconsistent.
//
// # Determinism
//
// All traversals start from the first pivot in row-major order unless told
// otherwise, so the same knot always yields the same circuits in the same
// order.
package knot
