// Package factory generates lattice knots: the classical two-row Turks'-Head
// and knots synthesized from a stack of pivot layers.
//
// # Turks'-Head
//
// [TurksHead] places bights pivots on the bottom row and bights pivots on
// row leads, offset by one when leads is odd. The result always ties, and it
// decomposes into gcd(leads, bights) strands.
//
// # Layer synthesis
//
// A [Layers] request lists rows as (count, height) pairs. Their counts sum to
// total, which is also the number of pivots on the implicit bottom row. Each
// row is split into gcd(total, count) equal sections; one choice of offsets
// inside a section is replicated across all sections, which keeps the row
// periodic. [Synthesize] tries every combination of row choices, keeps the
// candidates that tie, and returns them deduplicated and sorted by their
// canonical key.
//
//	layers, _ := factory.ParseLayers("3@3")
//	res, err := factory.Synthesize(ctx, layers, factory.Options{Workers: 4})
//
// The search is sharded across worker goroutines. Results do not depend on
// the worker count.
package factory
