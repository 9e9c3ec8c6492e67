package lattice

import (
	"slices"
	"testing"
)

func TestPointValid(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(1, 1), true},
		{Pt(2, 0), true},
		{Pt(1, 0), false},
		{Pt(-1, 1), true},
		{Pt(-1, 0), false},
		{Pt(-3, -2), false},
	}
	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct{ a, m, want int }{
		{5, 3, 2},
		{-1, 6, 5},
		{-6, 6, 0},
		{7, 0, 7},
		{-4, -2, -4},
	}
	for _, tt := range tests {
		if got := Mod(tt.a, tt.m); got != tt.want {
			t.Errorf("Mod(%d, %d) = %d, want %d", tt.a, tt.m, got, tt.want)
		}
	}
}

func TestLines(t *testing.T) {
	minus, plus := Lines(Pt(4, 2), 6, false)
	if minus != 6 || plus != -2 {
		t.Errorf("Lines unwrapped = (%d, %d), want (6, -2)", minus, plus)
	}
	minus, plus = Lines(Pt(4, 2), 6, true)
	if minus != 0 || plus != 4 {
		t.Errorf("Lines wrapped = (%d, %d), want (0, 4)", minus, plus)
	}
}

func TestSlopeBetween(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		mod    int
		want   Slope
	}{
		{"rising", Pt(0, 0), Pt(2, 2), 6, Up},
		{"falling", Pt(2, 2), Pt(4, 0), 6, Down},
		{"rising across seam", Pt(4, 0), Pt(0, 2), 6, Up},
		{"unrelated", Pt(0, 0), Pt(2, 0), 6, None},
		{"falling unwrapped only via modulus", Pt(4, 2), Pt(0, 0), 6, Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlopeBetween(tt.p1, tt.p2, tt.mod); got != tt.want {
				t.Errorf("SlopeBetween(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

// Points sharing both diagonals are resolved by comparing y. This pins the
// heuristic's current behaviour; it is not a statement of topological
// correctness.
func TestSlopeBetween_DegenerateKnownLimitation(t *testing.T) {
	a, b := Pt(0, 0), Pt(0, 4)
	if !Degenerate(a, b, 4) {
		t.Fatalf("Degenerate(%v, %v, 4) = false, want true", a, b)
	}
	if got := SlopeBetween(a, b, 4); got != Up {
		t.Errorf("SlopeBetween(lower, upper) = %v, want %v", got, Up)
	}
	if got := SlopeBetween(b, a, 4); got != Down {
		t.Errorf("SlopeBetween(upper, lower) = %v, want %v", got, Down)
	}
}

func TestSortRowMajor(t *testing.T) {
	pts := []Point{Pt(2, 2), Pt(4, 0), Pt(0, 2), Pt(0, 0)}
	Sort(pts)
	want := []Point{Pt(0, 0), Pt(4, 0), Pt(0, 2), Pt(2, 2)}
	if !slices.Equal(pts, want) {
		t.Errorf("Sort = %v, want %v", pts, want)
	}
}

func TestSlopeFlip(t *testing.T) {
	if Up.Flip() != Down || Down.Flip() != Up || None.Flip() != None {
		t.Error("Flip should swap Up and Down and keep None")
	}
}
