package knot

import (
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/turkshead/pkg/lattice"
)

// turksHead builds the two-row pattern without going through the factory
// package, which depends on this one.
func turksHead(leads, bights int) []lattice.Point {
	var pts []lattice.Point
	for i := range bights {
		pts = append(pts, lattice.Pt(2*i, 0), lattice.Pt(leads%2+2*i, leads))
	}
	return pts
}

func mustKnot(t *testing.T, pts []lattice.Point) *Knot {
	t.Helper()
	k, err := New(pts)
	if err != nil {
		t.Fatalf("New(%v): %v", pts, err)
	}
	return k
}

func TestNormalize(t *testing.T) {
	in := []lattice.Point{lattice.Pt(5, 3), lattice.Pt(3, 3), lattice.Pt(4, 4), lattice.Pt(3, 3)}
	orig := slices.Clone(in)

	got, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := []lattice.Point{lattice.Pt(0, 0), lattice.Pt(2, 0), lattice.Pt(1, 1)}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize = %v, want %v", got, want)
	}
	if !slices.Equal(in, orig) {
		t.Errorf("Normalize modified its input: %v", in)
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name string
		pts  []lattice.Point
		want error
	}{
		{"empty", nil, ErrEmptyKnot},
		{"odd sum", []lattice.Point{lattice.Pt(0, 0), lattice.Pt(1, 0)}, ErrMalformedPoint},
		{"no corner", []lattice.Point{lattice.Pt(2, 0), lattice.Pt(0, 2)}, ErrNoLowerLeftCorner},
		{"odd corner", []lattice.Point{lattice.Pt(1, 1), lattice.Pt(2, 2)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.pts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Normalize error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, pts := range [][]lattice.Point{
		turksHead(2, 3),
		turksHead(5, 4),
		{lattice.Pt(7, 9), lattice.Pt(9, 9), lattice.Pt(8, 12), lattice.Pt(11, 11)},
	} {
		k1 := mustKnot(t, pts)
		k2 := mustKnot(t, k1.Pivots())
		if !k1.Equal(k2) || k1.XModulus() != k2.XModulus() || k1.YMax() != k2.YMax() {
			t.Errorf("renormalizing %v changed it to %v", k1, k2)
		}
	}
}

func TestNewDerivedFields(t *testing.T) {
	tests := []struct {
		name       string
		pts        []lattice.Point
		xmod, ymax int
		valid      bool
	}{
		{"TH(2,3)", turksHead(2, 3), 6, 2, true},
		{"TH(3,4)", turksHead(3, 4), 8, 3, true},
		{"odd count", []lattice.Point{lattice.Pt(0, 0), lattice.Pt(2, 0), lattice.Pt(1, 1)}, 4, 1, false},
		{"count differs from period", []lattice.Point{lattice.Pt(0, 0), lattice.Pt(4, 0)}, 6, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := mustKnot(t, tt.pts)
			if k.XModulus() != tt.xmod {
				t.Errorf("XModulus = %d, want %d", k.XModulus(), tt.xmod)
			}
			if k.YMax() != tt.ymax {
				t.Errorf("YMax = %d, want %d", k.YMax(), tt.ymax)
			}
			if k.Valid() != tt.valid {
				t.Errorf("Valid = %v, want %v", k.Valid(), tt.valid)
			}
		})
	}
}

func TestKnotInvariants(t *testing.T) {
	k := mustKnot(t, []lattice.Point{lattice.Pt(3, 5), lattice.Pt(5, 5), lattice.Pt(4, 6), lattice.Pt(6, 6)})
	pivots := k.Pivots()
	if pivots[0] != lattice.Pt(0, 0) {
		t.Errorf("first pivot = %v, want (0,0)", pivots[0])
	}
	if !slices.IsSortedFunc(pivots, lattice.Compare) {
		t.Errorf("pivots not row-major: %v", pivots)
	}
	for _, p := range pivots {
		if !p.Valid() {
			t.Errorf("pivot %v violates parity", p)
		}
	}
}

func TestKeyAndEqual(t *testing.T) {
	a := mustKnot(t, turksHead(2, 3))
	b := mustKnot(t, []lattice.Point{lattice.Pt(14, 12), lattice.Pt(10, 10), lattice.Pt(12, 10), lattice.Pt(14, 10), lattice.Pt(10, 12), lattice.Pt(12, 12)})
	if !a.Equal(b) || a.Key() != b.Key() {
		t.Errorf("translated knots should be equal: %s vs %s", a.Key(), b.Key())
	}
	if a.Key() != "0,0;2,0;4,0;0,2;2,2;4,2" {
		t.Errorf("Key = %q", a.Key())
	}
	c := mustKnot(t, turksHead(2, 4))
	if a.Equal(c) {
		t.Error("TH(2,3) and TH(2,4) should differ")
	}
}
