// Package container defines the capability every sequence container in this
// module (Vector, List) exposes regardless of its storage layout, plus two
// sort helpers built against that capability alone.
//
// The engines (the trees, the hash tables, the treap, the skip list) don't
// implement Container: they hold key-value pairs over a comparable key and
// expose Foreach (the trees, the treap and the skip list also Keys/Values),
// which is a different contract from the one Container describes. Container
// exists for containers that only ever held one generic T — Vector and
// List — so GetSortedValues can read any of them back in order without
// depending on how each stores its elements internally.
package container

import (
	"cmp"
	"slices"

	"github.com/kvgrove/grove/ds"
)

// --------------------------------------------------------------------------------
// Base Container Interface

// Container is satisfied by any sequence container that can report its
// size, clear itself, and hand back a snapshot of its elements.
//
// Vector and List both implement it:
//
//	var _ container.Container[int] = (*vector.Vector[int])(nil)
//	var _ container.Container[int] = (*list.List[int])(nil)
type Container[T any] interface {
	// Empty reports whether the container holds no elements.
	Empty() bool

	// Size returns the number of elements currently held.
	Size() int

	// Clear removes every element, resetting the container to empty.
	Clear()

	// Values returns a snapshot of every element. Order is whatever the
	// container's own iteration order is — head-to-tail order for List,
	// index order for Vector.
	Values() []T

	// String renders the container for logging and test failure messages.
	String() string
}

// --------------------------------------------------------------------------------
// Sort helpers

// GetSortedValues reads c's elements and returns them sorted by T's natural
// order, leaving c itself untouched. If c holds fewer than two elements the
// unsorted snapshot is returned as-is, since there is nothing to sort.
func GetSortedValues[T cmp.Ordered](c Container[T]) []T {
	values := c.Values()
	if len(values) < 2 {
		return values
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return sorted
}

// GetSortedValuesFunc is GetSortedValues for element types with no natural
// order, ordering the snapshot with the supplied Comparator instead.
func GetSortedValuesFunc[T any](c Container[T], compare ds.Comparator[T]) []T {
	values := c.Values()
	if len(values) < 2 {
		return values
	}

	sorted := slices.Clone(values)
	slices.SortFunc(sorted, compare)

	return sorted
}
