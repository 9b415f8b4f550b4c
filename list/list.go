// Package list implements a doubly linked sequence container.
//
// Nodes are plain prev/next links with no sentinel; head and tail are
// tracked directly on the List. A sorted flag (set by New, Clear and Sort,
// cleared by PushBack, PushFront and InsertAt; removals leave it as it is)
// lets callers tell whether a prior Sort call is still valid. Not
// thread-safe.
package list

import (
	"fmt"
	"strings"

	"github.com/kvgrove/grove/container"
	"github.com/kvgrove/grove/ds"
)

// node is a single element of the list.
type node[T any] struct {
	value T
	prev  *node[T]
	next  *node[T]
}

// Config holds the optional destructor a List is built with, run once per
// owned element released without being returned to the caller (Delete,
// Clear, Free). Unlink never invokes it.
type Config[T any] struct {
	Destroy ds.Destructor[T]
}

// List manages a doubly linked sequence of values.
type List[T any] struct {
	head    *node[T]
	tail    *node[T]
	len     int
	sorted  bool
	destroy ds.Destructor[T]
}

// New creates an empty List.
func New[T any](cfg Config[T]) *List[T] {
	return &List[T]{sorted: true, destroy: cfg.Destroy}
}

var _ container.Container[int] = (*List[int])(nil)

// Len returns the number of elements stored.
func (l *List[T]) Len() int { return l.len }

// Size returns the number of elements stored, satisfying container.Container.
func (l *List[T]) Size() int { return l.len }

// Empty reports whether the List holds no elements.
func (l *List[T]) Empty() bool { return l.len == 0 }

// Sorted reports whether the List is known to be sorted by the comparator
// last passed to Sort. PushBack, PushFront and InsertAt clear this;
// removing elements does not.
func (l *List[T]) Sorted() bool { return l.sorted }

// Clear removes every element, running the destructor (if configured) on
// each, and resets the List to empty. Time complexity: O(n).
func (l *List[T]) Clear() {
	if l.destroy != nil {
		for n := l.head; n != nil; n = n.next {
			l.destroy(n.value)
		}
	}

	l.head, l.tail = nil, nil
	l.len = 0
	l.sorted = true
}

// Free releases the List, running the destructor on every remaining
// element. Idempotent.
func (l *List[T]) Free() { l.Clear() }

// PushBack appends value at the tail. Time complexity: O(1).
func (l *List[T]) PushBack(value T) {
	n := &node[T]{value: value, prev: l.tail}

	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}

	l.tail = n
	l.len++
	l.sorted = false
}

// PushFront prepends value at the head. Time complexity: O(1).
func (l *List[T]) PushFront(value T) {
	n := &node[T]{value: value, next: l.head}

	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}

	l.head = n
	l.len++
	l.sorted = false
}

// PopBack removes and returns the tail element. Returns (zero, false) if
// the List is empty. Time complexity: O(1).
func (l *List[T]) PopBack() (T, bool) {
	if l.tail == nil {
		var zero T

		return zero, false
	}

	n := l.tail
	l.tail = n.prev

	if l.tail != nil {
		l.tail.next = nil
	} else {
		l.head = nil
	}

	l.len--

	return n.value, true
}

// PopFront removes and returns the head element. Returns (zero, false) if
// the List is empty. Time complexity: O(1).
func (l *List[T]) PopFront() (T, bool) {
	if l.head == nil {
		var zero T

		return zero, false
	}

	n := l.head
	l.head = n.next

	if l.head != nil {
		l.head.prev = nil
	} else {
		l.tail = nil
	}

	l.len--

	return n.value, true
}

// nodeAt walks to the node at index, or nil if index is out of range.
// Walks from whichever end is closer. Time complexity: O(n).
func (l *List[T]) nodeAt(index int) *node[T] {
	if index < 0 || index >= l.len {
		return nil
	}

	if index <= l.len/2 {
		n := l.head
		for range index {
			n = n.next
		}

		return n
	}

	n := l.tail
	for range l.len - 1 - index {
		n = n.prev
	}

	return n
}

// Select returns the element at index and true, or the zero value and
// false if index is out of range. Time complexity: O(n).
func (l *List[T]) Select(index int) (T, bool) {
	n := l.nodeAt(index)
	if n == nil {
		var zero T

		return zero, false
	}

	return n.value, true
}

// InsertAt splices value into the List immediately before index (index ==
// Len() appends at the tail). Returns false if index is out of
// [0, Len()]. Time complexity: O(n).
func (l *List[T]) InsertAt(index int, value T) bool {
	if index < 0 || index > l.len {
		return false
	}

	switch {
	case index == l.len:
		l.PushBack(value)
	case index == 0:
		l.PushFront(value)
	default:
		at := l.nodeAt(index)
		n := &node[T]{value: value, prev: at.prev, next: at}
		at.prev.next = n
		at.prev = n
		l.len++
		l.sorted = false
	}

	return true
}

// Unlink removes the element at index and returns it without invoking the
// destructor, transferring ownership back to the caller. Returns
// (zero, false) if index is out of range. Time complexity: O(n).
func (l *List[T]) Unlink(index int) (T, bool) {
	n := l.nodeAt(index)
	if n == nil {
		var zero T

		return zero, false
	}

	switch {
	case n == l.head && n == l.tail:
		l.head, l.tail = nil, nil
	case n == l.head:
		l.head = n.next
		l.head.prev = nil
	case n == l.tail:
		l.tail = n.prev
		l.tail.next = nil
	default:
		n.prev.next = n.next
		n.next.prev = n.prev
	}

	l.len--

	return n.value, true
}

// Delete removes the element at index, running the destructor on it.
// Returns true if index was in range. Time complexity: O(n).
func (l *List[T]) Delete(index int) bool {
	value, ok := l.Unlink(index)
	if !ok {
		return false
	}

	if l.destroy != nil {
		l.destroy(value)
	}

	return true
}

// Values returns every stored element in list order. Time complexity:
// O(n).
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.len)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.value)
	}

	return out
}

// Foreach visits every element in list order, calling visit(value) for
// each. If visit returns false, iteration stops immediately and Foreach
// returns false; otherwise Foreach returns true once every element has
// been visited. Must not mutate the list. Time complexity: O(n).
func (l *List[T]) Foreach(visit func(T) bool) bool {
	for n := l.head; n != nil; n = n.next {
		if !visit(n.value) {
			return false
		}
	}

	return true
}

// Sort orders the List's elements in place using cmp via a stable merge
// sort (O(n log n)) and marks the List sorted. A prior source's O(n^2)
// insertion sort is deliberately not reproduced here.
func (l *List[T]) Sort(cmp ds.Comparator[T]) {
	l.head = mergeSort(l.head, cmp)

	var prev *node[T]

	n := l.head
	for n != nil {
		n.prev = prev
		prev = n
		n = n.next
	}

	l.tail = prev
	l.sorted = true
}

func mergeSort[T any](head *node[T], cmp ds.Comparator[T]) *node[T] {
	if head == nil || head.next == nil {
		return head
	}

	middle := splitList(head)
	left := mergeSort(head, cmp)
	right := mergeSort(middle, cmp)

	return mergeLists(left, right, cmp)
}

// splitList detaches and returns the second half of the list rooted at
// head, using the slow/fast pointer technique.
func splitList[T any](head *node[T]) *node[T] {
	slow, fast := head, head.next
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}

	middle := slow.next
	slow.next = nil

	if middle != nil {
		middle.prev = nil
	}

	return middle
}

// mergeLists merges two already-sorted node chains, taking from a on ties
// to keep the sort stable.
func mergeLists[T any](a, b *node[T], cmp ds.Comparator[T]) *node[T] {
	dummy := &node[T]{}
	tail := dummy

	for a != nil && b != nil {
		if cmp(a.value, b.value) <= 0 {
			tail.next = a
			a = a.next
		} else {
			tail.next = b
			b = b.next
		}

		tail = tail.next
	}

	if a != nil {
		tail.next = a
	} else {
		tail.next = b
	}

	return dummy.next
}

// String returns a short summary of the List's length.
func (l *List[T]) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "List[len=%d]", l.len)

	return sb.String()
}

// --------------------------------------------------------------------------------
// Iterator

type iterState int8

const (
	stateBegin iterState = iota
	stateBetween
	stateEnd
)

// Iterator is a stateful bidirectional cursor over a List.
type Iterator[T any] struct {
	list  *List[T]
	node  *node[T]
	index int
	state iterState
}

var _ container.ReverseIteratorWithIndex[int] = (*Iterator[int])(nil)

// Iterator returns a new cursor positioned before the first element.
func (l *List[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{list: l, state: stateBegin, index: -1}
}

// Next advances the iterator and reports whether an element is now
// current.
func (it *Iterator[T]) Next() bool {
	switch it.state {
	case stateBegin:
		if it.list.head == nil {
			it.state = stateEnd

			return false
		}

		it.node = it.list.head
		it.index = 0
		it.state = stateBetween

		return true
	case stateBetween:
		if it.node.next == nil {
			it.state = stateEnd
			it.node = nil

			return false
		}

		it.node = it.node.next
		it.index++

		return true
	default:
		return false
	}
}

// Prev moves the iterator backward and reports whether an element is now
// current.
func (it *Iterator[T]) Prev() bool {
	switch it.state {
	case stateEnd:
		if it.list.tail == nil {
			it.state = stateBegin

			return false
		}

		it.node = it.list.tail
		it.index = it.list.len - 1
		it.state = stateBetween

		return true
	case stateBetween:
		if it.node.prev == nil {
			it.state = stateBegin
			it.node = nil
			it.index = -1

			return false
		}

		it.node = it.node.prev
		it.index--

		return true
	default:
		return false
	}
}

// Value returns the current element. Only valid after Next/Prev/First/
// Last returned true.
func (it *Iterator[T]) Value() T { return it.node.value }

// Index returns the current element's position.
func (it *Iterator[T]) Index() int { return it.index }

// Begin resets the iterator to before the first element.
func (it *Iterator[T]) Begin() {
	it.state = stateBegin
	it.node = nil
	it.index = -1
}

// End resets the iterator to past the last element.
func (it *Iterator[T]) End() {
	it.state = stateEnd
	it.node = nil
	it.index = it.list.len
}

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
