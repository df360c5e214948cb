// Package memorize runs the memorize-then-recall drill over a finished
// layout. A test freezes a copy of the board, and each submission is scored
// zone by zone against that copy.
package memorize
