package factory

import (
	"errors"
	"fmt"

	"github.com/matzehuels/turkshead/pkg/knot"
	"github.com/matzehuels/turkshead/pkg/lattice"
)

// ErrInvalidParameter is returned for non-positive Turks'-Head parameters.
var ErrInvalidParameter = errors.New("factory: leads and bights must be positive")

// TurksHeadPoints returns the pivots of TH(leads, bights) before
// normalization.
func TurksHeadPoints(leads, bights int) ([]lattice.Point, error) {
	if leads <= 0 || bights <= 0 {
		return nil, fmt.Errorf("%w: TH(%d,%d)", ErrInvalidParameter, leads, bights)
	}
	pts := make([]lattice.Point, 0, 2*bights)
	for i := range bights {
		pts = append(pts, lattice.Pt(2*i, 0))
	}
	for i := range bights {
		pts = append(pts, lattice.Pt(leads%2+2*i, leads))
	}
	return pts, nil
}

// TurksHead builds the Turks'-Head knot TH(leads, bights).
func TurksHead(leads, bights int) (*knot.Knot, error) {
	pts, err := TurksHeadPoints(leads, bights)
	if err != nil {
		return nil, err
	}
	return knot.New(pts)
}
