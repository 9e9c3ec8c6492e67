package pipeline

import (
	errs "github.com/matzehuels/turkshead/pkg/errors"
	knotio "github.com/matzehuels/turkshead/pkg/io"
	"github.com/matzehuels/turkshead/pkg/knot"
	"github.com/matzehuels/turkshead/pkg/lattice"
)

// Analysis is a knot decomposed into strands with its crossings classified.
type Analysis struct {
	Name      string
	Knot      *knot.Knot
	Strands   knot.Strands
	Crossings *knot.Crossings
	// OnCircuit holds, per strand, every non-pivot lattice point its circuit
	// passes, in walk order.
	OnCircuit [][]lattice.Point
}

// Analyze decomposes k and classifies its crossings. Knots that cannot be
// tied fail with a NOT_TYABLE or AMBIGUOUS_LINE error.
func Analyze(name string, k *knot.Knot) (*Analysis, error) {
	strands, err := knot.Decompose(k, nil)
	if err != nil {
		return nil, errs.FromKnot(err, "decompose %s", name)
	}
	crossings, err := knot.Classify(k, strands)
	if err != nil {
		return nil, errs.FromKnot(err, "classify %s", name)
	}
	a := &Analysis{
		Name:      name,
		Knot:      k,
		Strands:   strands,
		Crossings: crossings,
		OnCircuit: make([][]lattice.Point, len(strands)),
	}
	for i, c := range strands {
		pts, err := knot.OnCircuit(k, c)
		if err != nil {
			return nil, errs.FromKnot(err, "strand %d of %s", i, name)
		}
		a.OnCircuit[i] = pts
	}
	return a, nil
}

// Doc returns the JSON document for the analysis.
func (a *Analysis) Doc() *knotio.Analysis {
	doc := knotio.NewAnalysis(a.Name, a.Knot, a.Strands, a.Crossings)
	doc.OnCircuit = a.OnCircuit
	return doc
}
