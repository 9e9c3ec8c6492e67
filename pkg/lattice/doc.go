// Package lattice provides integer geometry on the diagonal lattice used to
// describe Turks'-Head-style knots.
//
// # Overview
//
// The lattice is a conventional integer grid rotated by 45 degrees: only points
// whose coordinate sum x+y is even are valid. Cords run along the two diagonal
// directions, slope +1 ([Up]) and slope -1 ([Down]). Horizontally the plane is
// periodic (a cylinder): x wraps around after a modulus supplied by the owning
// knot.
//
// # Line identities
//
// Every point lies on exactly one line of each slope. [Lines] returns the two
// identities (y+x, y-x); two points share a slope -1 line iff their first
// components agree, and a slope +1 line iff their second components agree.
// With wrapping enabled both identities are reduced modulo the period, so lines
// that leave the right edge re-enter on the left.
//
// The modulus is always passed explicitly. Points do not know which knot they
// belong to.
//
// # Degenerate points
//
// On some symmetric layouts two points can share both diagonals at once.
// [SlopeBetween] resolves that case by comparing y-coordinates. The rule is a
// heuristic with no topological proof behind it; callers should treat results
// for such pairs as unverified.
package lattice
