// Package pkg provides the core libraries for Turkshead lattice knots.
//
// # Overview
//
// Turkshead models a decorative knot as a set of pivot points on a diagonal
// lattice wrapped around a cylinder. Cords run along the diagonals and turn
// at pivots. From the pivots alone the libraries trace every cord, split the
// knot into strands, decide which cord passes over at each crossing, and
// search layered families for new knots that tie.
//
// # Architecture
//
// The typical data flow:
//
//	Points / TH(leads, bights) / layers
//	         ↓
//	    [knot/factory] (build or synthesize knots)
//	         ↓
//	    [knot] (trace, decompose, classify crossings)
//	         ↓
//	    [render] (DOT, SVG, PNG, text preview)
//
// [pipeline] runs these stages with caching for the CLI and the HTTP API.
//
// # Quick Start
//
//	k, _ := factory.TurksHead(3, 4)
//	strands, _ := knot.Decompose(k, nil)
//	crossings, _ := knot.Classify(k, strands)
//	fmt.Print(render.Preview(k, strands, crossings))
//
// # Package Organization
//
// ## Model
//
// [lattice] - Points, slopes and wrapped diagonal lines.
//
// [knot] - Knots, circuits, strands and crossings. Tracing fails with
// [knot.ErrNotTyable] when a diagonal does not hold exactly one pivot.
//
// [knot/factory] - Turks'-Head construction and layer synthesis.
//
// [knot/perm] - Lazy Cartesian products used by the layer search.
//
// ## Output
//
// [io] - JSON documents, point lists and TOML/JSON knot definitions.
//
// [render] - Graphviz DOT generation and SVG/PNG rendering, plus a plain
// text preview.
//
// ## Infrastructure
//
// [pipeline] - Build → analyze → render with caching, used by CLI and API.
//
// [cache] - File, Redis, MongoDB and null caches behind one interface.
//
// [errors] - Error codes, classification and input limits.
//
// [observability] - Hook interfaces with a Prometheus implementation.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/knot/...     # Specific package
//	go test -run Example       # Examples only
//
// [lattice]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/lattice
// [knot]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/knot
// [knot/factory]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/knot/factory
// [knot/perm]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/knot/perm
// [io]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/buildinfo
// [knot.ErrNotTyable]: https://pkg.go.dev/github.com/matzehuels/turkshead/pkg/knot#ErrNotTyable
package pkg
