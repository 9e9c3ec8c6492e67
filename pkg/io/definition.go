package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/turkshead/pkg/knot/factory"
	"github.com/matzehuels/turkshead/pkg/lattice"
)

// ErrInvalidDefinition is returned for definitions that name no source or
// more than one.
var ErrInvalidDefinition = errors.New("invalid knot definition")

// DefinitionKind names how a Definition builds its knots.
type DefinitionKind string

const (
	KindPoints    DefinitionKind = "points"
	KindTurksHead DefinitionKind = "turkshead"
	KindLayers    DefinitionKind = "layers"
)

// TurksHeadDef holds Turks'-Head parameters.
type TurksHeadDef struct {
	Leads  int `json:"leads" toml:"leads"`
	Bights int `json:"bights" toml:"bights"`
}

// Definition describes one knot source. Exactly one of Points, TurksHead and
// Layers must be set.
type Definition struct {
	Name         string              `json:"name" toml:"name"`
	Points       []Pair              `json:"points,omitempty" toml:"points,omitempty"`
	TurksHead    *TurksHeadDef       `json:"turkshead,omitempty" toml:"turkshead,omitempty"`
	Layers       []factory.LayerSpec `json:"layers,omitempty" toml:"layers,omitempty"`
	SingleStrand bool                `json:"single_strand,omitempty" toml:"single_strand,omitempty"`
}

// Kind reports which source the definition uses. It assumes Validate passed.
func (d *Definition) Kind() DefinitionKind {
	switch {
	case d.TurksHead != nil:
		return KindTurksHead
	case len(d.Layers) > 0:
		return KindLayers
	default:
		return KindPoints
	}
}

// Validate checks that exactly one source is set.
func (d *Definition) Validate() error {
	n := 0
	if len(d.Points) > 0 {
		n++
	}
	if d.TurksHead != nil {
		n++
	}
	if len(d.Layers) > 0 {
		n++
	}
	switch n {
	case 0:
		return fmt.Errorf("%w %q: set one of points, turkshead, layers", ErrInvalidDefinition, d.Name)
	case 1:
		return nil
	default:
		return fmt.Errorf("%w %q: points, turkshead and layers are exclusive", ErrInvalidDefinition, d.Name)
	}
}

// PointList returns the explicit points.
func (d *Definition) PointList() []lattice.Point {
	pts := make([]lattice.Point, len(d.Points))
	for i, p := range d.Points {
		pts[i] = p.Point()
	}
	return pts
}

// ParseDefinition decodes a definition in the given format ("toml" or "json").
func ParseDefinition(data []byte, format string) (*Definition, error) {
	var d Definition
	switch strings.ToLower(format) {
	case "toml":
		md, err := toml.Decode(string(data), &d)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown keys %v", ErrInvalidDefinition, undecoded)
		}
	case "json":
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidDefinition, format)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDefinition reads a definition file, choosing the format by extension.
// Files without a .json extension are read as TOML.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	format := "toml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	d, err := ParseDefinition(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// WriteDefinition encodes d as TOML.
func WriteDefinition(d *Definition, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(d); err != nil {
		f.Close()
		return fmt.Errorf("encode toml: %w", err)
	}
	return f.Close()
}
