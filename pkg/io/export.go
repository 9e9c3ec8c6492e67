package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/turkshead/pkg/knot"
	"github.com/matzehuels/turkshead/pkg/knot/factory"
	"github.com/matzehuels/turkshead/pkg/lattice"
)

// KnotDoc is the JSON form of a knot.
type KnotDoc struct {
	Name     string          `json:"name,omitempty"`
	Key      string          `json:"key"`
	XModulus int             `json:"x_modulus"`
	YMax     int             `json:"y_max"`
	Valid    bool            `json:"valid"`
	Pivots   []lattice.Point `json:"pivots"`
}

// CrossingDoc is the JSON form of one crossing.
type CrossingDoc struct {
	Point lattice.Point `json:"point"`
	Over  lattice.Slope `json:"over"`
}

// Analysis is the JSON form of a decomposed knot with its crossings.
type Analysis struct {
	KnotDoc
	StrandCount int               `json:"strand_count"`
	Strands     [][]lattice.Point `json:"strands"`
	Crossings   []CrossingDoc     `json:"crossings"`
	// OnCircuit lists, per strand, the crossings it passes in order.
	OnCircuit [][]lattice.Point `json:"on_circuit,omitempty"`
}

// SynthesisDoc is the JSON form of a layer search result.
type SynthesisDoc struct {
	Layers     factory.Layers `json:"layers"`
	Candidates int            `json:"candidates"`
	Tyable     int            `json:"tyable"`
	Knots      []FoundDoc     `json:"knots"`
}

// FoundDoc is one knot of a SynthesisDoc.
type FoundDoc struct {
	Key     string          `json:"key"`
	Strands int             `json:"strands"`
	Pivots  []lattice.Point `json:"pivots"`
}

// NewKnotDoc describes k.
func NewKnotDoc(name string, k *knot.Knot) KnotDoc {
	return KnotDoc{
		Name:     name,
		Key:      k.Key(),
		XModulus: k.XModulus(),
		YMax:     k.YMax(),
		Valid:    k.Valid(),
		Pivots:   k.Pivots(),
	}
}

// NewAnalysis describes k with its decomposition and crossings.
func NewAnalysis(name string, k *knot.Knot, strands knot.Strands, crossings *knot.Crossings) *Analysis {
	a := &Analysis{
		KnotDoc:     NewKnotDoc(name, k),
		StrandCount: strands.Count(),
		Strands:     make([][]lattice.Point, len(strands)),
		Crossings:   []CrossingDoc{},
	}
	for i, c := range strands {
		a.Strands[i] = []lattice.Point(c)
	}
	if crossings != nil {
		for _, c := range crossings.List() {
			a.Crossings = append(a.Crossings, CrossingDoc{Point: c.Point, Over: c.Over})
		}
	}
	return a
}

// NewSynthesisDoc describes a layer search result.
func NewSynthesisDoc(s *factory.Synthesis) *SynthesisDoc {
	doc := &SynthesisDoc{
		Layers:     s.Layers,
		Candidates: s.Candidates,
		Tyable:     s.Tyable,
		Knots:      make([]FoundDoc, len(s.Knots)),
	}
	for i, f := range s.Knots {
		doc.Knots[i] = FoundDoc{Key: f.Knot.Key(), Strands: f.Strands, Pivots: f.Knot.Pivots()}
	}
	return doc
}

func writeJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteKnot encodes k as indented JSON.
func WriteKnot(name string, k *knot.Knot, w io.Writer) error {
	return writeJSON(NewKnotDoc(name, k), w)
}

// WriteAnalysis encodes an analysis as indented JSON.
func WriteAnalysis(a *Analysis, w io.Writer) error {
	return writeJSON(a, w)
}

// WriteSynthesis encodes a layer search result as indented JSON.
func WriteSynthesis(s *factory.Synthesis, w io.Writer) error {
	return writeJSON(NewSynthesisDoc(s), w)
}

// ExportJSON writes any of the documents above to a file at path.
func ExportJSON(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeJSON(v, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
