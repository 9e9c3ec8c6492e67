// Package render draws lattice knots.
//
// # Overview
//
// Three outputs are supported:
//
//   - [ToDOT]: Graphviz source with every lattice point pinned at its
//     coordinate, one color per strand
//   - [RenderSVG], [RenderPNG]: the DOT source rendered in-process with
//     go-graphviz
//   - [Preview]: a plain-text grid for terminals
//
// # Usage
//
//	dot, err := render.ToDOT(k, strands, crossings, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Seams
//
// Cords that leave the right edge of the period re-enter on the left. Each
// edge is drawn from the polylines knot.PathBetween returns, so a cord that
// crosses the seam runs one step past the edge on both sides instead of
// jumping across the drawing.
//
// # Crossings
//
// With Options.Crossings set, the two unit segments of the under cord at each
// crossing are drawn dashed, and crossings get a small marker.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
// No Graphviz installation is required.
package render
