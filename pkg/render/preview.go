package render

import (
	"strings"

	"github.com/matzehuels/turkshead/pkg/knot"
	"github.com/matzehuels/turkshead/pkg/lattice"
)

// Preview glyphs.
const (
	GlyphPivot    = 'o'
	GlyphCrossing = 'X'
	GlyphRising   = '/'
	GlyphFalling  = '\\'
	GlyphEmpty    = '.'
)

// Preview draws one period of the knot as text, top row first. Pivots,
// crossings and cord points get their glyphs; other lattice points are dots
// and off-lattice cells are blank. Trailing blanks are trimmed.
//
// strands and crossings may be nil, in which case only pivots are drawn.
func Preview(k *knot.Knot, strands knot.Strands, crossings *knot.Crossings) string {
	cords := make(map[lattice.Point]lattice.Slope)
	for _, e := range strands.Edges() {
		pts, err := knot.PointsBetween(k, e.From, e.To)
		if err != nil {
			continue
		}
		for _, p := range pts {
			cords[p] = k.Slope(e.From, e.To)
		}
	}

	lines := make([]string, 0, k.YMax()+1)
	for y := k.YMax(); y >= 0; y-- {
		row := make([]rune, k.XModulus())
		for x := range row {
			p := lattice.Pt(x, y)
			row[x] = glyph(k, p, cords, crossings)
		}
		lines = append(lines, strings.TrimRight(string(row), " "))
	}
	return strings.Join(lines, "\n")
}

func glyph(k *knot.Knot, p lattice.Point, cords map[lattice.Point]lattice.Slope, crossings *knot.Crossings) rune {
	if !p.Valid() {
		return ' '
	}
	if k.Contains(p) {
		return GlyphPivot
	}
	if crossings != nil {
		if _, ok := crossings.At(p); ok {
			return GlyphCrossing
		}
	}
	switch cords[p] {
	case lattice.Up:
		return GlyphRising
	case lattice.Down:
		return GlyphFalling
	}
	return GlyphEmpty
}
