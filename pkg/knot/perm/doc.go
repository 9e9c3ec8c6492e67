// Package perm provides the combinatorial building blocks used by the knot
// factory: index sequences, greatest common divisors, binomial coefficients,
// k-combinations and lazy Cartesian products.
//
// # Overview
//
// Layer synthesis places a fixed number of pivots into each lattice row and
// tries every combination of row placements. The number of candidates is the
// product of one binomial coefficient per row, so it grows quickly:
//
//	rows (3 of 6), (2 of 6), (3 of 6)  ->  20 × 15 × 20 = 6000 candidates
//
// [Combinations] enumerates the placements of a single row in lexicographic
// order, and [Product] streams the Cartesian product of several rows without
// materializing it. [ProductSize] reports the candidate count up front so
// callers can refuse searches that are too large.
//
// # Determinism
//
// Every function returns its results in a fixed order. Two calls with the same
// arguments produce identical sequences, which keeps synthesis output stable
// across runs and worker counts.
package perm
