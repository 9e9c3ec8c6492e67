// Package io reads and writes knots, analyses, synthesis results, and knot
// definition files.
//
// # Point lists
//
// [ReadPoints] accepts three JSON shapes, so hand-written files stay short:
//
//	[[0,0],[2,2],[4,0]]
//	[{"x":0,"y":0},{"x":2,"y":2}]
//	{"pivots":[[0,0],[2,2]]}
//
// # Documents
//
// [WriteKnot], [WriteAnalysis] and [WriteSynthesis] emit indented JSON. Their
// readers rebuild the knot through knot.New, so a document that was edited
// by hand is normalized and checked like any other input.
//
// An analysis document looks like:
//
//	{
//	  "name": "TH(2,3)",
//	  "key": "0,0;2,0;4,0;0,2;2,2;4,2",
//	  "x_modulus": 6,
//	  "y_max": 2,
//	  "pivots": [{"x":0,"y":0}, ...],
//	  "strands": [[{"x":0,"y":0},{"x":2,"y":2}, ...]],
//	  "crossings": [{"point":{"x":1,"y":1},"over":1}, ...]
//	}
//
// # Definitions
//
// A [Definition] names one way of building a knot: explicit points, a
// Turks'-Head, or a layer synthesis request. Definitions are TOML or JSON:
//
//	name = "th-3-4"
//
//	[turkshead]
//	leads = 3
//	bights = 4
//
// or
//
//	name = "two-rows"
//	single_strand = true
//
//	[[layers]]
//	count = 3
//	height = 1
//
//	[[layers]]
//	count = 3
//	height = 2
package io
