package lattice

import (
	"cmp"
	"fmt"
	"slices"
)

// Slope is the direction of a diagonal line: [Up] (+1) or [Down] (-1).
// The zero value means "no shared line".
type Slope int

const (
	// Down is the slope -1 diagonal (x+y constant).
	Down Slope = -1
	// None marks two points that share no diagonal.
	None Slope = 0
	// Up is the slope +1 diagonal (y-x constant).
	Up Slope = 1
)

// Flip returns the opposite diagonal. None stays None.
func (s Slope) Flip() Slope { return -s }

func (s Slope) String() string {
	switch s {
	case Up:
		return "+1"
	case Down:
		return "-1"
	default:
		return "0"
	}
}

// Point is a lattice coordinate. Equality is by value.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Valid reports whether p satisfies the lattice constraint (x+y even).
func (p Point) Valid() bool { return (p.X+p.Y)%2 == 0 }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Key returns the canonical "x,y" form used for hashing and deduplication.
func (p Point) Key() string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// Compare orders points row-major: ascending y, then ascending x.
func Compare(a, b Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

// Less reports whether a precedes b in row-major order.
func Less(a, b Point) bool { return Compare(a, b) < 0 }

// Sort sorts points in place in row-major order.
func Sort(pts []Point) { slices.SortFunc(pts, Compare) }

// Mod returns a modulo m in the range [0, m). For m <= 0 it returns a unchanged.
func Mod(a, m int) int {
	if m <= 0 {
		return a
	}
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// Lines returns the two diagonal-line identities through p: minus (y+x) for
// the slope -1 line and plus (y-x) for the slope +1 line. When wrap is true
// both are reduced modulo modulus.
func Lines(p Point, modulus int, wrap bool) (minus, plus int) {
	minus, plus = p.Y+p.X, p.Y-p.X
	if wrap {
		minus, plus = Mod(minus, modulus), Mod(plus, modulus)
	}
	return minus, plus
}

// LineID returns the identity of the line of the given slope through p,
// wrapped modulo modulus.
func LineID(p Point, s Slope, modulus int) int {
	minus, plus := Lines(p, modulus, true)
	if s == Up {
		return plus
	}
	return minus
}

// SlopeBetween returns the slope of the diagonal shared by p1 and p2 under the
// given modulus, or None when they share no line.
//
// When the points share both diagonals the result is decided by y: Up if p2
// lies above p1, Down otherwise. This is a heuristic.
func SlopeBetween(p1, p2 Point, modulus int) Slope {
	m1, pl1 := Lines(p1, modulus, true)
	m2, pl2 := Lines(p2, modulus, true)
	down, up := m1 == m2, pl1 == pl2
	switch {
	case down && up:
		if p2.Y > p1.Y {
			return Up
		}
		return Down
	case down:
		return Down
	case up:
		return Up
	}
	return None
}

// Degenerate reports whether p1 and p2 share both diagonals under modulus,
// the case [SlopeBetween] can only resolve heuristically.
func Degenerate(p1, p2 Point, modulus int) bool {
	m1, pl1 := Lines(p1, modulus, true)
	m2, pl2 := Lines(p2, modulus, true)
	return m1 == m2 && pl1 == pl2
}
