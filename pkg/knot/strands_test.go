package knot

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/turkshead/pkg/lattice"
)

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func TestTraceTurksHead(t *testing.T) {
	k := mustKnot(t, turksHead(2, 3))
	c, err := Trace(k, lattice.Pt(0, 0))
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	want := Circuit{
		lattice.Pt(0, 0), lattice.Pt(2, 2), lattice.Pt(4, 0),
		lattice.Pt(0, 2), lattice.Pt(2, 0), lattice.Pt(4, 2),
	}
	if !slices.Equal(c, want) {
		t.Errorf("Trace = %v, want %v", c, want)
	}
}

func TestTraceNotPivot(t *testing.T) {
	k := mustKnot(t, turksHead(2, 3))
	if _, err := Trace(k, lattice.Pt(1, 1)); !errors.Is(err, ErrNotPivot) {
		t.Errorf("Trace from non-pivot error = %v, want ErrNotPivot", err)
	}
}

func TestTraceNotTyable(t *testing.T) {
	k := mustKnot(t, []lattice.Point{lattice.Pt(0, 0), lattice.Pt(2, 0), lattice.Pt(1, 1)})
	_, err := Trace(k, lattice.Pt(0, 0))
	if !errors.Is(err, ErrNotTyable) {
		t.Errorf("error = %v, want ErrNotTyable", err)
	}
	if !errors.Is(err, ErrAmbiguousLine) {
		t.Errorf("error = %v, want it to wrap ErrAmbiguousLine", err)
	}
	if !IsNotTyable(err) {
		t.Error("IsNotTyable = false")
	}
}

func TestNeighborAmbiguous(t *testing.T) {
	// Three pivots on one slope +1 diagonal.
	k := mustKnot(t, []lattice.Point{lattice.Pt(0, 0), lattice.Pt(1, 1), lattice.Pt(2, 2), lattice.Pt(4, 0)})
	if got := Line(k, lattice.Pt(0, 0), lattice.Up); len(got) != 2 {
		t.Fatalf("Line = %v, want two pivots", got)
	}
	if _, err := Neighbor(k, lattice.Pt(0, 0), lattice.Up); !errors.Is(err, ErrAmbiguousLine) {
		t.Errorf("Neighbor error = %v, want ErrAmbiguousLine", err)
	}
}

func TestDecomposeTwoStrands(t *testing.T) {
	k := mustKnot(t, turksHead(2, 4))
	s, err := Decompose(k, nil)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	want := Strands{
		{lattice.Pt(0, 0), lattice.Pt(2, 2), lattice.Pt(4, 0), lattice.Pt(6, 2)},
		{lattice.Pt(2, 0), lattice.Pt(4, 2), lattice.Pt(6, 0), lattice.Pt(0, 2)},
	}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("Decompose = %v, want %v", s, want)
	}
	if s.SingleStrand() {
		t.Error("SingleStrand = true, want false")
	}
}

func TestDecomposeFromStart(t *testing.T) {
	k := mustKnot(t, turksHead(2, 4))
	start := lattice.Pt(2, 0)
	s, err := Decompose(k, &start)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if s[0][0] != start {
		t.Errorf("first circuit starts at %v, want %v", s[0][0], start)
	}
	if s[1][0] != lattice.Pt(0, 0) {
		t.Errorf("second circuit starts at %v, want (0,0)", s[1][0])
	}
}

func TestStrandCountMatchesGCD(t *testing.T) {
	for leads := 1; leads <= 7; leads++ {
		for bights := 1; bights <= 7; bights++ {
			k := mustKnot(t, turksHead(leads, bights))
			n, err := StrandCount(k)
			if err != nil {
				t.Errorf("TH(%d,%d): %v", leads, bights, err)
				continue
			}
			if want := gcd(leads, bights); n != want {
				t.Errorf("StrandCount(TH(%d,%d)) = %d, want %d", leads, bights, n, want)
			}
		}
	}
}

func TestDecomposeCompleteness(t *testing.T) {
	for _, pts := range [][]lattice.Point{turksHead(2, 3), turksHead(3, 6), turksHead(4, 6), turksHead(5, 5)} {
		k := mustKnot(t, pts)
		s, err := Decompose(k, nil)
		if err != nil {
			t.Fatalf("Decompose(%v): %v", k, err)
		}
		got := s.Pivots()
		lattice.Sort(got)
		if !slices.Equal(got, k.Pivots()) {
			t.Errorf("circuits cover %v, want each of %v exactly once", got, k.Pivots())
		}
	}
}

func TestDecomposeDeterministic(t *testing.T) {
	k1 := mustKnot(t, turksHead(3, 6))
	k2 := mustKnot(t, turksHead(3, 6))
	a, err := Decompose(k1, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Decompose(k2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Decompose not deterministic:\n%v\n%v", a, b)
	}
}

func TestDecomposeInvalidKnot(t *testing.T) {
	k := mustKnot(t, []lattice.Point{lattice.Pt(0, 0), lattice.Pt(2, 0), lattice.Pt(1, 1)})
	if k.Valid() {
		t.Fatal("knot with three pivots should be invalid")
	}
	s, err := Decompose(k, nil)
	if !errors.Is(err, ErrNotTyable) {
		t.Errorf("Decompose error = %v, want ErrNotTyable", err)
	}
	if s != nil {
		t.Errorf("Decompose returned partial result %v", s)
	}
	if Tyable(k) {
		t.Error("Tyable = true, want false")
	}
}

func TestCircuitEdges(t *testing.T) {
	c := Circuit{lattice.Pt(0, 0), lattice.Pt(2, 2), lattice.Pt(4, 0), lattice.Pt(6, 2)}
	edges := c.Edges()
	if len(edges) != 4 {
		t.Fatalf("len(Edges) = %d, want 4", len(edges))
	}
	last := edges[3]
	if last.From != lattice.Pt(6, 2) || last.To != lattice.Pt(0, 0) || last.Slope != lattice.Down {
		t.Errorf("closing edge = %+v", last)
	}
	if edges[0].Slope != lattice.Up || edges[1].Slope != lattice.Down {
		t.Errorf("slopes should alternate starting with +1: %+v", edges)
	}
}
