// Package vector implements an amortized-growth dense sequence container.
//
// Elements live in a single contiguous slice the Vector manages itself
// rather than delegating growth to append: capacity starts at 4, doubles
// while it is at most 12, and grows by 1.5x thereafter, always growing to
// at least the space a pending insertion needs in one step. A Vector
// tracks whether it is known to be sorted (by the comparator last passed
// to Sort); every mutating operation except Update clears that flag, since
// Update only overwrites values already in position. Not thread-safe.
package vector

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kvgrove/grove/container"
	"github.com/kvgrove/grove/ds"
)

const initialCapacity = 4

const doublingCeiling = 12

// Config holds the optional destructor a Vector is built with, run once
// per owned element released without being returned to the caller
// (Delete, Clear, Free). Unlink never invokes it.
type Config[T any] struct {
	Destroy ds.Destructor[T]
}

// Vector manages a growable, index-addressed sequence of values.
type Vector[T any] struct {
	data    []T
	sorted  bool
	destroy ds.Destructor[T]
}

// New creates an empty Vector.
func New[T any](cfg Config[T]) *Vector[T] {
	return &Vector[T]{
		data:    make([]T, 0, initialCapacity),
		sorted:  true,
		destroy: cfg.Destroy,
	}
}

var _ container.Container[int] = (*Vector[int])(nil)

// Len returns the number of elements stored.
func (v *Vector[T]) Len() int { return len(v.data) }

// Size returns the number of elements stored, satisfying container.Container.
func (v *Vector[T]) Size() int { return len(v.data) }

// Empty reports whether the Vector holds no elements.
func (v *Vector[T]) Empty() bool { return len(v.data) == 0 }

// Cap returns the Vector's current underlying capacity.
func (v *Vector[T]) Cap() int { return cap(v.data) }

// Sorted reports whether the Vector is known to be sorted by the
// comparator last passed to Sort. Any mutation other than Update clears
// this.
func (v *Vector[T]) Sorted() bool { return v.sorted }

// Clear removes every element, running the destructor (if configured) on
// each, and resets the Vector to empty. Time complexity: O(n).
func (v *Vector[T]) Clear() {
	if v.destroy != nil {
		for _, e := range v.data {
			v.destroy(e)
		}
	}

	v.data = make([]T, 0, initialCapacity)
	v.sorted = true
}

// Free releases the Vector, running the destructor on every remaining
// element. Idempotent.
func (v *Vector[T]) Free() { v.Clear() }

// growTo ensures capacity for at least minCap elements, growing in the
// spec's policy: double while at most doublingCeiling, 1.5x thereafter,
// never growing by less than the caller's immediate need.
func (v *Vector[T]) growTo(minCap int) {
	if cap(v.data) >= minCap {
		return
	}

	newCap := cap(v.data)
	if newCap == 0 {
		newCap = initialCapacity
	}

	for newCap < minCap {
		if newCap <= doublingCeiling {
			newCap *= 2
		} else {
			newCap += newCap / 2
		}
	}

	grown := make([]T, len(v.data), newCap)
	copy(grown, v.data)
	v.data = grown
}

// Select returns the element at index and true, or the zero value and
// false if index is out of range. Time complexity: O(1).
func (v *Vector[T]) Select(index int) (T, bool) {
	if index < 0 || index >= len(v.data) {
		var zero T

		return zero, false
	}

	return v.data[index], true
}

// Append adds value at the end. Time complexity: amortized O(1).
func (v *Vector[T]) Append(value T) {
	v.growTo(len(v.data) + 1)
	v.data = append(v.data, value)
	v.sorted = false
}

// Insert splices values into the Vector starting at index, shifting
// existing elements at or after index to the right. Returns false if
// index is out of [0, Len()]. Time complexity: O(n).
func (v *Vector[T]) Insert(index int, values ...T) bool {
	if index < 0 || index > len(v.data) {
		return false
	}

	if len(values) == 0 {
		return true
	}

	v.growTo(len(v.data) + len(values))

	v.data = append(v.data, values...) // extend length; contents overwritten below
	copy(v.data[index+len(values):], v.data[index:len(v.data)-len(values)])
	copy(v.data[index:], values)
	v.sorted = false

	return true
}

// Update overwrites the elements at [index, index+len(values)) in place
// without changing Len(). Returns false if the range does not fit within
// the current bounds; Len() is never incremented by Update, even on
// overwrite, per this module's Open Question resolution.
func (v *Vector[T]) Update(index int, values ...T) bool {
	if index < 0 || index+len(values) > len(v.data) {
		return false
	}

	copy(v.data[index:], values)

	return true
}

// Unlink removes the element at index and returns it without invoking the
// destructor, transferring ownership back to the caller. Returns
// (zero, false) if index is out of range. Time complexity: O(n).
func (v *Vector[T]) Unlink(index int) (T, bool) {
	if index < 0 || index >= len(v.data) {
		var zero T

		return zero, false
	}

	value := v.data[index]
	v.data = slices.Delete(v.data, index, index+1)
	v.sorted = false

	return value, true
}

// Delete removes the element at index, running the destructor on it.
// Returns true if index was in range. Time complexity: O(n).
func (v *Vector[T]) Delete(index int) bool {
	value, ok := v.Unlink(index)
	if !ok {
		return false
	}

	if v.destroy != nil {
		v.destroy(value)
	}

	return true
}

// Values returns a copy of every stored element in index order.
// Time complexity: O(n).
func (v *Vector[T]) Values() []T {
	out := make([]T, len(v.data))
	copy(out, v.data)

	return out
}

// Sort orders the Vector's elements in place using cmp and marks it
// sorted. Time complexity: O(n log n).
func (v *Vector[T]) Sort(cmp ds.Comparator[T]) {
	slices.SortFunc(v.data, cmp)
	v.sorted = true
}

// String returns a short summary of the Vector's length and capacity.
func (v *Vector[T]) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Vector[len=%d cap=%d]", len(v.data), cap(v.data))

	return sb.String()
}

// --------------------------------------------------------------------------------
// Iterator

// Iterator is a stateful bidirectional cursor over a Vector, addressed by
// slice index.
type Iterator[T any] struct {
	vec   *Vector[T]
	index int
}

var _ container.ReverseIteratorWithIndex[int] = (*Iterator[int])(nil)

// Iterator returns a new cursor positioned before the first element.
func (v *Vector[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{vec: v, index: -1}
}

// Next advances the iterator and reports whether an element is now
// current.
func (it *Iterator[T]) Next() bool {
	if it.index >= len(it.vec.data) {
		return false
	}

	it.index++

	return it.index < len(it.vec.data)
}

// Prev moves the iterator backward and reports whether an element is now
// current.
func (it *Iterator[T]) Prev() bool {
	if it.index < 0 {
		return false
	}

	it.index--

	return it.index >= 0
}

// Value returns the current element. Only valid after Next/Prev/First/
// Last returned true.
func (it *Iterator[T]) Value() T { return it.vec.data[it.index] }

// Index returns the current element's position.
func (it *Iterator[T]) Index() int { return it.index }

// Begin resets the iterator to before the first element.
func (it *Iterator[T]) Begin() { it.index = -1 }

// End resets the iterator to past the last element.
func (it *Iterator[T]) End() { it.index = len(it.vec.data) }

// First moves directly to the first element.
func (it *Iterator[T]) First() bool {
	it.Begin()

	return it.Next()
}

// Last moves directly to the last element.
func (it *Iterator[T]) Last() bool {
	it.End()

	return it.Prev()
}
