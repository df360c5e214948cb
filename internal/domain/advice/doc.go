// Package advice scores the strategic quality of a complete layout with a
// fixed set of heuristic rules: fast cards low, two-character cards out of
// the top row, sibling cards apart, and large cards at the bottom edges.
//
// The engine is diagnostic only. It never proposes a layout.
package advice
