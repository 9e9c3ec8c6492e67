package factory

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/turkshead/pkg/knot/perm"
)

var (
	// ErrInvalidLayer is returned for a layer with a non-positive count or
	// height, or for two layers at the same height.
	ErrInvalidLayer = errors.New("factory: invalid layer")

	// ErrNonDivisibleLayer is returned when a layer count shares no divisor
	// greater than one with the total, so the row cannot tile evenly.
	ErrNonDivisibleLayer = errors.New("factory: layer count does not divide the total")
)

// LayerSpec asks for Count pivots on the row at Height.
type LayerSpec struct {
	Count  int `json:"count" toml:"count"`
	Height int `json:"height" toml:"height"`
}

func (l LayerSpec) String() string { return fmt.Sprintf("%d@%d", l.Count, l.Height) }

// Layers is an ordered layer synthesis request.
type Layers []LayerSpec

// Total returns the sum of all counts, which is also the bottom row size.
func (ls Layers) Total() int {
	total := 0
	for _, l := range ls {
		total += l.Count
	}
	return total
}

// String formats the layers as comma-separated count@height pairs, the form
// ParseLayers accepts.
func (ls Layers) String() string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.String()
	}
	return strings.Join(parts, ",")
}

// Validate checks each layer and that every row can tile the total evenly.
func (ls Layers) Validate() error {
	if len(ls) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidLayer)
	}
	heights := make(map[int]bool, len(ls))
	for _, l := range ls {
		if l.Count <= 0 || l.Height <= 0 {
			return fmt.Errorf("%w: %v needs positive count and height", ErrInvalidLayer, l)
		}
		if heights[l.Height] {
			return fmt.Errorf("%w: height %d used twice", ErrInvalidLayer, l.Height)
		}
		heights[l.Height] = true
	}
	total := ls.Total()
	for _, l := range ls {
		if perm.GCD(total, l.Count) < 2 {
			return fmt.Errorf("%w: %d pivots against a total of %d", ErrNonDivisibleLayer, l.Count, total)
		}
	}
	return nil
}

// Sorted returns a copy ordered by height.
func (ls Layers) Sorted() Layers {
	out := slices.Clone(ls)
	slices.SortFunc(out, func(a, b LayerSpec) int { return a.Height - b.Height })
	return out
}

// ParseLayers parses a comma-separated list of count@height pairs such as
// "3@1,3@2". Whitespace around pairs is ignored.
func ParseLayers(s string) (Layers, error) {
	var ls Layers
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, h, ok := strings.Cut(part, "@")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not count@height", ErrInvalidLayer, part)
		}
		count, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return nil, fmt.Errorf("%w: count in %q: %v", ErrInvalidLayer, part, err)
		}
		height, err := strconv.Atoi(strings.TrimSpace(h))
		if err != nil {
			return nil, fmt.Errorf("%w: height in %q: %v", ErrInvalidLayer, part, err)
		}
		ls = append(ls, LayerSpec{Count: count, Height: height})
	}
	if len(ls) == 0 {
		return nil, fmt.Errorf("%w: empty layer list", ErrInvalidLayer)
	}
	return ls, nil
}
