package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/turkshead/pkg/lattice"
)

// Pair is a point written as a two-element array.
type Pair [2]int

// Point converts the pair.
func (p Pair) Point() lattice.Point { return lattice.Pt(p[0], p[1]) }

// ParsePoints decodes a point list in any of the accepted JSON shapes.
func ParsePoints(data []byte) ([]lattice.Point, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decode points: empty input")
	}

	if data[0] == '{' {
		var doc struct {
			Pivots json.RawMessage `json:"pivots"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode points: %w", err)
		}
		if doc.Pivots == nil {
			return nil, fmt.Errorf("decode points: object has no \"pivots\" field")
		}
		return ParsePoints(doc.Pivots)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode points: %w", err)
	}
	pts := make([]lattice.Point, len(raw))
	for i, r := range raw {
		p, err := parsePoint(r)
		if err != nil {
			return nil, fmt.Errorf("decode points: element %d: %w", i, err)
		}
		pts[i] = p
	}
	return pts, nil
}

func parsePoint(r json.RawMessage) (lattice.Point, error) {
	r = bytes.TrimSpace(r)
	if len(r) > 0 && r[0] == '[' {
		var pair []int
		if err := json.Unmarshal(r, &pair); err != nil {
			return lattice.Point{}, err
		}
		if len(pair) != 2 {
			return lattice.Point{}, fmt.Errorf("want [x, y], got %d values", len(pair))
		}
		return lattice.Pt(pair[0], pair[1]), nil
	}
	var p lattice.Point
	if err := json.Unmarshal(r, &p); err != nil {
		return lattice.Point{}, err
	}
	return p, nil
}

// ReadPoints decodes a point list from r. ReadPoints does not close r.
func ReadPoints(r io.Reader) ([]lattice.Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read points: %w", err)
	}
	return ParsePoints(data)
}

// ImportPoints reads a point list from the file at path, or from stdin when
// path is "-".
func ImportPoints(path string) ([]lattice.Point, error) {
	if path == "-" {
		return ReadPoints(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPoints(f)
}
