// Package container provides generic iterator interfaces for traversing container data structures.
// It includes forward and reverse iterators for indexed sequence containers, enabling
// flexible and type-safe iteration over Vector and List.
package container

// IteratorWithIndex defines a generic, stateful iterator for ordered containers with indexed elements.
//
// This interface allows forward traversal of a container using integer indices. It maintains an
// internal cursor that can be moved to specific positions or advanced incrementally.
//
// Example usage:
//
//	type IntSlice []int
//	func (s IntSlice) Next() bool { ... }
//	func (s IntSlice) Value() int { ... }
//	// Implement other methods similarly...
type IteratorWithIndex[T any] interface {
	// Next advances the iterator to the next element and returns true if a next element exists.
	// On the first call, it positions the iterator at the first element if the container is non-empty.
	// The current index and value can then be retrieved with Index() and Value().
	Next() bool

	// Value returns the current element's value without modifying the iterator's state.
	Value() T

	// Index returns the current element's index without modifying the iterator's state.
	Index() int

	// Begin resets the iterator to its initial state, positioning it before the first element.
	// Call Next() to move to the first element if it exists.
	Begin()

	// First moves the iterator directly to the first element and returns true if one exists.
	// The first element's index and value can then be retrieved with Index() and Value().
	First() bool
}

// ReverseIteratorWithIndex extends IteratorWithIndex with reverse traversal capabilities.
//
// This interface adds methods for backward iteration, including moving to the last element
// and traversing to previous elements.
//
// It embeds IteratorWithIndex[T] to inherit its forward traversal methods.
type ReverseIteratorWithIndex[T any] interface {
	// Prev moves the iterator to the previous element and returns true if a previous element exists.
	// The previous element's index and value can then be retrieved with Index() and Value().
	Prev() bool

	// End positions the iterator past the last element (one-past-the-end).
	// Call Prev() to move to the last element if it exists.
	End()

	// Last moves the iterator directly to the last element and returns true if one exists.
	// The last element's index and value can then be retrieved with Index() and Value().
	Last() bool

	IteratorWithIndex[T]
}
