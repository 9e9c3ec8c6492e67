package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/turkshead/pkg/knot"
	"github.com/matzehuels/turkshead/pkg/lattice"
)

// DefaultPalette colors strands in order, cycling when there are more
// strands than colors.
var DefaultPalette = []string{
	"#2a9d8f", "#e76f51", "#264653", "#e9c46a", "#8e44ad", "#f4a261", "#3a86ff", "#6a994e",
}

// Options configures DOT generation.
type Options struct {
	// Scale is the distance between lattice units in inches. Default 0.5.
	Scale float64
	// Crossings dashes under segments and marks crossing points.
	Crossings bool
	// Grid draws every lattice point of the period as a faint dot.
	Grid bool
	// Palette overrides DefaultPalette.
	Palette []string
	// Title is drawn as the graph label.
	Title string
}

func (o *Options) setDefaults() {
	if o.Scale <= 0 {
		o.Scale = 0.5
	}
	if len(o.Palette) == 0 {
		o.Palette = DefaultPalette
	}
}

// StrandColor returns the palette color for strand i.
func (o Options) StrandColor(i int) string {
	o.setDefaults()
	return o.Palette[i%len(o.Palette)]
}

type dotWriter struct {
	buf   bytes.Buffer
	opts  Options
	nodes map[lattice.Point]bool
}

func nodeID(p lattice.Point) string { return fmt.Sprintf("%q", "p"+p.Key()) }

func (w *dotWriter) node(p lattice.Point, attrs string) {
	if w.nodes[p] {
		return
	}
	w.nodes[p] = true
	x, y := float64(p.X)*w.opts.Scale, float64(p.Y)*w.opts.Scale
	fmt.Fprintf(&w.buf, "  %s [pos=\"%.3f,%.3f!\"%s];\n", nodeID(p), x, y, attrs)
}

// ToDOT converts a decomposed knot to Graphviz DOT. Every point carries a
// pinned position, so the result must be laid out with neato; the graph
// attribute layout=neato selects it.
//
// crossings may be nil. Returns an error if a strand edge cannot be resolved
// into a path.
func ToDOT(k *knot.Knot, strands knot.Strands, crossings *knot.Crossings, opts Options) (string, error) {
	opts.setDefaults()
	w := &dotWriter{opts: opts, nodes: make(map[lattice.Point]bool)}

	w.buf.WriteString("graph K {\n")
	w.buf.WriteString("  layout=neato;\n")
	w.buf.WriteString("  bgcolor=\"transparent\";\n")
	w.buf.WriteString("  splines=false;\n")
	if opts.Title != "" {
		fmt.Fprintf(&w.buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	w.buf.WriteString("  node [shape=point, width=0, height=0, label=\"\"];\n")
	w.buf.WriteString("  edge [penwidth=3];\n\n")

	for _, p := range k.Pivots() {
		w.node(p, ", shape=circle, width=0.12, height=0.12, style=filled, fillcolor=black")
	}
	if crossings != nil && opts.Crossings {
		for _, c := range crossings.List() {
			w.node(c.Point, ", shape=circle, width=0.06, height=0.06, color=gray")
		}
	}
	if opts.Grid {
		for y := 0; y <= k.YMax(); y++ {
			for x := range k.XModulus() {
				if p := lattice.Pt(x, y); p.Valid() {
					w.node(p, ", width=0.02, height=0.02, color=lightgray")
				}
			}
		}
	}
	w.buf.WriteString("\n")

	for i, c := range strands {
		color := opts.StrandColor(i)
		for _, e := range c.Edges() {
			runs, err := knot.PathBetween(k, e.From, e.To)
			if err != nil {
				return "", fmt.Errorf("strand %d edge %v-%v: %w", i, e.From, e.To, err)
			}
			for _, run := range runs {
				w.run(k, run, color, crossings)
			}
		}
	}

	w.buf.WriteString("}\n")
	return w.buf.String(), nil
}

// run draws one polyline as unit segments.
func (w *dotWriter) run(k *knot.Knot, run []lattice.Point, color string, crossings *knot.Crossings) {
	for i := 1; i < len(run); i++ {
		a, b := run[i-1], run[i]
		w.node(a, "")
		w.node(b, "")
		attrs := []string{fmt.Sprintf("color=%q", color)}
		if w.opts.Crossings && crossings != nil && under(k, a, b, crossings) {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&w.buf, "  %s -- %s [%s];\n", nodeID(a), nodeID(b), strings.Join(attrs, ", "))
	}
}

// under reports whether the unit segment a-b passes beneath a crossing at
// either end.
func under(k *knot.Knot, a, b lattice.Point, crossings *knot.Crossings) bool {
	s := stepSlope(a, b)
	for _, p := range []lattice.Point{a, b} {
		wrapped := lattice.Pt(lattice.Mod(p.X, k.XModulus()), p.Y)
		if c, ok := crossings.At(wrapped); ok && c.Under() == s {
			return true
		}
	}
	return false
}

func stepSlope(a, b lattice.Point) lattice.Slope {
	if (b.X-a.X)*(b.Y-a.Y) > 0 {
		return lattice.Up
	}
	return lattice.Down
}
