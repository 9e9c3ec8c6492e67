package knot

import "errors"

var (
	// ErrEmptyKnot is returned by [New] and [Normalize] when no points are given.
	ErrEmptyKnot = errors.New("knot has no pivots")

	// ErrMalformedPoint is returned by [Normalize] when a point violates the
	// lattice constraint (x+y must be even).
	ErrMalformedPoint = errors.New("point violates lattice parity")

	// ErrNoLowerLeftCorner is returned by [Normalize] when no pivot sits at the
	// minimum x and minimum y of the set simultaneously.
	ErrNoLowerLeftCorner = errors.New("knot has no lower left corner")

	// ErrNotPivot is returned when a traversal is asked to start from a point
	// that is not one of the knot's pivots.
	ErrNotPivot = errors.New("point is not a pivot")

	// ErrAmbiguousLine is returned by [Neighbor] when a diagonal through a pivot
	// holds zero or more than one other pivot.
	ErrAmbiguousLine = errors.New("diagonal does not hold exactly one other pivot")

	// ErrNotTyable is returned by [Trace] and [Decompose] when a walk cannot be
	// completed. Errors carrying it also match [ErrAmbiguousLine] when that was
	// the cause.
	ErrNotTyable = errors.New("knot is not tyable")

	// ErrUnreachablePath is returned by [PointsBetween] and [PathBetween] when
	// the walk along a shared diagonal leaves the knot's vertical band without
	// reaching its target.
	ErrUnreachablePath = errors.New("path leaves the lattice band before reaching its end")

	// ErrNonterminatingPath is returned when a walk exceeds its step bound,
	// the larger of [MaxPathSteps] and YMax+2.
	ErrNonterminatingPath = errors.New("path walk exceeded step bound")
)

// IsNotTyable reports whether err is a tyability failure: the class of errors
// a search may discard per candidate.
func IsNotTyable(err error) bool {
	return errors.Is(err, ErrNotTyable) || errors.Is(err, ErrAmbiguousLine)
}
