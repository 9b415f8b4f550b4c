// Package cmp supplies the default key ordering every engine in this module
// falls back to when a caller doesn't need anything fancier than Go's
// built-in operators: Compare, built on the same Ordered constraint as the
// standard library's cmp package but with NaN given a total, reflexive
// order so it can serve as a [github.com/kvgrove/grove/ds.Comparator]
// without breaking a tree's BST invariant.
package cmp

import "cmp"

// Ordered is an alias for the standard library's cmp.Ordered: any type with
// the < <= >= > operators.
type Ordered = cmp.Ordered

// Compare returns -1, 0, or +1 as x is less than, equal to, or greater than
// y. Unlike the raw < operator, a NaN compares equal to itself and less
// than every non-NaN value, which is what lets Compare[float64] serve
// directly as a ds.Comparator[float64]: a tree ordered by a Comparator that
// violates reflexivity on NaN would misplace it on every subsequent lookup.
func Compare[T Ordered](x, y T) int {
	xNaN := isNaN(x)
	yNaN := isNaN(y)

	switch {
	case xNaN && yNaN:
		return 0
	case xNaN:
		return -1
	case yNaN:
		return 1
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// isNaN reports whether x is a NaN, without importing math: the only
// values for which a Go equality comparison is never reflexive are floats
// holding NaN, so x != x is sufficient and works for every Ordered type.
func isNaN[T Ordered](x T) bool {
	return x != x
}
