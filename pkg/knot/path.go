package knot

import (
	"fmt"

	"github.com/matzehuels/turkshead/pkg/lattice"
)

// MaxPathSteps is the minimum step bound of a walk along a diagonal. The
// bound of a knot is the larger of MaxPathSteps and YMax+2, since each step
// changes y by one and the walk stops on leaving the band.
const MaxPathSteps = 1 << 12

// pathLimit returns the step bound for walks in k.
func pathLimit(k *Knot) int {
	return max(MaxPathSteps, k.ymax+2)
}

// walk follows the diagonal of slope s from start, moving dir (+1 or -1) in x
// per step, until it lands on end (modulo the period) or leaves the open band
// (0, ymax). The returned points are unwrapped: x is not reduced, so seam
// crossings stay visible. The first element is start; when reached is true the
// last element is end.
func walk(k *Knot, start, end lattice.Point, s lattice.Slope, dir int) (pts []lattice.Point, reached bool, err error) {
	pts = []lattice.Point{start}
	x, y := start.X, start.Y
	limit := pathLimit(k)
	for range limit {
		x += dir
		y += int(s) * dir
		pts = append(pts, lattice.Pt(x, y))
		if lattice.Mod(x, k.xmod) == end.X && y == end.Y {
			return pts, true, nil
		}
		if y <= 0 || y >= k.ymax {
			return pts, false, nil
		}
	}
	return nil, false, fmt.Errorf("%w: %v to %v after %d steps", ErrNonterminatingPath, start, end, limit)
}

// resolve finds the direction in which the shared diagonal from start reaches
// end and returns the unwrapped walk. ok is false when the points share no
// diagonal.
func resolve(k *Knot, start, end lattice.Point) (pts []lattice.Point, ok bool, err error) {
	s := k.Slope(start, end)
	if s == lattice.None || start == end {
		return nil, false, nil
	}
	for _, dir := range []int{1, -1} {
		pts, reached, err := walk(k, start, end, s, dir)
		if err != nil {
			return nil, false, err
		}
		if reached {
			return pts, true, nil
		}
	}
	return nil, false, fmt.Errorf("%w: %v to %v along %v", ErrUnreachablePath, start, end, s)
}

// PointsBetween returns the lattice points strictly between start and end on
// their shared diagonal, in walk order, with x wrapped into [0, XModulus).
// It returns nil if the points share no diagonal.
//
// Returns ErrUnreachablePath if the diagonal leaves the knot's vertical band
// in both directions without meeting end.
func PointsBetween(k *Knot, start, end lattice.Point) ([]lattice.Point, error) {
	pts, ok, err := resolve(k, start, end)
	if err != nil || !ok {
		return nil, err
	}
	inner := pts[1 : len(pts)-1]
	out := make([]lattice.Point, len(inner))
	for i, p := range inner {
		out[i] = lattice.Pt(lattice.Mod(p.X, k.xmod), p.Y)
	}
	return out, nil
}

// PathBetween returns the polylines a renderer draws for the cord from p1 to
// p2, endpoints included. A path that stays inside one period is a single
// polyline. A path that crosses the horizontal seam is split in two, and each
// half carries a phantom point one step beyond the period (x = XModulus or
// x = -1) so the segment runs off the edge instead of stopping short of it.
//
// Returns nil if the points share no diagonal, ErrUnreachablePath as
// [PointsBetween] does, and ErrNonterminatingPath if the walk exceeds
// [MaxPathSteps].
func PathBetween(k *Knot, p1, p2 lattice.Point) ([][]lattice.Point, error) {
	pts, ok, err := resolve(k, p1, p2)
	if err != nil || !ok {
		return nil, err
	}

	period := func(x int) int { return floorDiv(x, k.xmod) }
	var runs [][]lattice.Point
	run := []lattice.Point{p1}
	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		pp, cp := period(prev.X), period(cur.X)
		if pp == cp {
			run = append(run, lattice.Pt(cur.X-cp*k.xmod, cur.Y))
			continue
		}
		// Close the current run with cur seen from prev's period, then open
		// the next one with prev seen from cur's period.
		run = append(run, lattice.Pt(cur.X-pp*k.xmod, cur.Y))
		runs = append(runs, run)
		run = []lattice.Point{
			lattice.Pt(prev.X-cp*k.xmod, prev.Y),
			lattice.Pt(cur.X-cp*k.xmod, cur.Y),
		}
	}
	return append(runs, run), nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
