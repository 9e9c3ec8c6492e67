package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/turkshead/pkg/knot"
	"github.com/matzehuels/turkshead/pkg/knot/factory"
)

// ReadKnot decodes a knot document and rebuilds the knot from its pivots.
// Derived fields in the document (key, modulus, validity) are ignored.
func ReadKnot(r io.Reader) (string, *knot.Knot, error) {
	var doc KnotDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return "", nil, fmt.Errorf("decode: %w", err)
	}
	k, err := knot.New(doc.Pivots)
	if err != nil {
		return "", nil, fmt.Errorf("knot %q: %w", doc.Name, err)
	}
	return doc.Name, k, nil
}

// ReadAnalysis decodes an analysis document. The knot is not re-analyzed.
func ReadAnalysis(r io.Reader) (*Analysis, error) {
	var a Analysis
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &a, nil
}

// ReadSynthesis decodes a synthesis document back into a result, rebuilding
// every knot.
func ReadSynthesis(r io.Reader) (*factory.Synthesis, error) {
	var doc SynthesisDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	s := &factory.Synthesis{
		Layers:     doc.Layers,
		Candidates: doc.Candidates,
		Tyable:     doc.Tyable,
		Knots:      make([]factory.Found, len(doc.Knots)),
	}
	for i, f := range doc.Knots {
		k, err := knot.New(f.Pivots)
		if err != nil {
			return nil, fmt.Errorf("knot %d: %w", i, err)
		}
		s.Knots[i] = factory.Found{Knot: k, Strands: f.Strands}
	}
	return s, nil
}
