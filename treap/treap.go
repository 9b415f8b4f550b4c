// Package treap implements a randomized binary search tree for ordered
// key-value storage, combining BST order on keys with max-heap order on a
// caller-supplied priority.
//
// Every node's priority is computed once, at insertion, by the
// caller-supplied Priority callback (typically a random or hashed value).
// Insertion rotates the new leaf upward while its parent's priority is
// lower, restoring heap order; deletion rotates the higher-priority child
// up repeatedly until the target node has at most one child, then unlinks
// it. The combination gives an expected O(log n) height without any
// explicit balance bookkeeping. Not thread-safe.
//
// Reference: [Seidel and Aragon 1996], "Randomized Search Trees".
package treap

import (
	"fmt"
	"strings"

	"github.com/kvgrove/grove/ds"
)

// Node is a single element of the tree.
type Node[K comparable, V any] struct {
	key      K
	value    V
	priority uint64
	parent   *Node[K, V]
	left     *Node[K, V]
	right    *Node[K, V]
}

// Key returns the node's key.
func (n *Node[K, V]) Key() K { return n.key }

// Value returns the node's value.
func (n *Node[K, V]) Value() V { return n.value }

// Priority returns the node's heap priority.
func (n *Node[K, V]) Priority() uint64 { return n.priority }

// Left returns the node's left child, or nil.
func (n *Node[K, V]) Left() *Node[K, V] { return n.left }

// Right returns the node's right child, or nil.
func (n *Node[K, V]) Right() *Node[K, V] { return n.right }

// Parent returns the node's parent, or nil at the root.
func (n *Node[K, V]) Parent() *Node[K, V] { return n.parent }

// Config holds the callbacks a Tree is built with. Comparator and Priority
// are both required; KeyDestroy and ValDestroy are optional and run once
// per owned key/value released without being returned to the caller
// (Delete, Clear, Free). Unlink never invokes them.
type Config[K comparable, V any] struct {
	Comparator ds.Comparator[K]
	Priority   ds.Priority[K]
	KeyDestroy ds.Destructor[K]
	ValDestroy ds.Destructor[V]
}

// Tree manages a treap of key-value pairs.
type Tree[K comparable, V any] struct {
	root       *Node[K, V]
	len        int
	comparator ds.Comparator[K]
	priority   ds.Priority[K]
	keyDestroy ds.Destructor[K]
	valDestroy ds.Destructor[V]
}

// New creates a treap using cfg.Comparator and cfg.Priority. Returns
// ds.ErrNilComparator or ds.ErrNilPriority if either is nil.
func New[K comparable, V any](cfg Config[K, V]) (*Tree[K, V], error) {
	if cfg.Comparator == nil {
		return nil, ds.ErrNilComparator
	}

	if cfg.Priority == nil {
		return nil, ds.ErrNilPriority
	}

	return &Tree[K, V]{
		comparator: cfg.Comparator,
		priority:   cfg.Priority,
		keyDestroy: cfg.KeyDestroy,
		valDestroy: cfg.ValDestroy,
	}, nil
}

// Len returns the number of keys stored in the tree.
func (t *Tree[K, V]) Len() int { return t.len }

// Clear removes every node, running destructors on each owned key and
// value, and resets the tree to empty. Time complexity: O(n).
func (t *Tree[K, V]) Clear() {
	t.destroySubtree(t.root)
	t.root = nil
	t.len = 0
}

// Free releases the tree, running destructors on every remaining key and
// value. Idempotent.
func (t *Tree[K, V]) Free() { t.Clear() }

func (t *Tree[K, V]) destroySubtree(n *Node[K, V]) {
	if n == nil {
		return
	}

	t.destroySubtree(n.left)
	t.destroySubtree(n.right)

	if t.keyDestroy != nil {
		t.keyDestroy(n.key)
	}

	if t.valDestroy != nil {
		t.valDestroy(n.value)
	}
}

// Select returns the value stored under key and true, or the zero value and
// false if key is absent. Time complexity: expected O(log n).
func (t *Tree[K, V]) Select(key K) (V, bool) {
	if n := t.lookup(key); n != nil {
		return n.value, true
	}

	var zero V

	return zero, false
}

// Insert stores key/value if key is not already present, assigning it
// priority cfg.Priority(key) and rotating it upward while it outranks its
// parent.
//
// On success, returns (pointer to the newly stored value, true); ownership
// of key and value transfers to the tree. On a duplicate key, the existing
// stored value is left untouched and Insert returns (pointer to it, false).
// A nil key is always rejected. Time complexity: expected O(log n).
func (t *Tree[K, V]) Insert(key K, value V) (*V, bool) {
	if ds.IsNilKey(key) {
		return nil, false
	}

	prio := t.priority(key)

	if t.root == nil {
		t.root = &Node[K, V]{key: key, value: value, priority: prio}
		t.len++

		return &t.root.value, true
	}

	node, parent := t.root, (*Node[K, V])(nil)

	var c int

	for node != nil {
		parent = node
		c = t.comparator(key, node.key)

		switch {
		case c == 0:
			return &node.value, false
		case c < 0:
			node = node.left
		default:
			node = node.right
		}
	}

	n := &Node[K, V]{key: key, value: value, priority: prio, parent: parent}
	if c < 0 {
		parent.left = n
	} else {
		parent.right = n
	}

	t.len++

	for n.parent != nil && n.parent.priority < n.priority {
		if n.parent.left == n {
			t.rotateRight(n.parent)
		} else {
			t.rotateLeft(n.parent)
		}
	}

	return &n.value, true
}

// Delete removes key, running destructors on its stored key and value.
// Returns true if key was present. Time complexity: expected O(log n).
func (t *Tree[K, V]) Delete(key K) bool {
	n := t.lookup(key)
	if n == nil {
		return false
	}

	k, v := t.unlinkNode(n)

	if t.keyDestroy != nil {
		t.keyDestroy(k)
	}

	if t.valDestroy != nil {
		t.valDestroy(v)
	}

	return true
}

// Unlink removes key and returns its stored key and value without invoking
// destructors, transferring ownership back to the caller. Returns
// (zero, zero, false) if key is absent. Time complexity: expected O(log n).
func (t *Tree[K, V]) Unlink(key K) (K, V, bool) {
	n := t.lookup(key)
	if n == nil {
		var zk K

		var zv V

		return zk, zv, false
	}

	k, v := t.unlinkNode(n)

	return k, v, true
}

// unlinkNode rotates down the higher-priority child of n until n has at
// most one child, then unlinks it.
func (t *Tree[K, V]) unlinkNode(n *Node[K, V]) (K, V) {
	k, v := n.key, n.value

	for n.left != nil && n.right != nil {
		if n.left.priority > n.right.priority {
			t.rotateRight(n)
		} else {
			t.rotateLeft(n)
		}
	}

	child := n.left
	if child == nil {
		child = n.right
	}

	t.replaceNode(n, child)
	t.len--

	return k, v
}

// Foreach visits every key in strictly ascending order, calling
// visit(key, value) for each. If visit returns false, iteration stops
// immediately and Foreach returns false; otherwise Foreach returns true
// once every key has been visited. Must not mutate the tree.
// Time complexity: O(n).
func (t *Tree[K, V]) Foreach(visit ds.VisitFunc[K, V]) bool {
	n := t.minNode(t.root)
	for n != nil {
		if !visit(n.key, n.value) {
			return false
		}

		n = t.successor(n)
	}

	return true
}

// Keys returns every key in ascending order. Time complexity: O(n).
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.len)
	t.Foreach(func(k K, _ V) bool {
		keys = append(keys, k)

		return true
	})

	return keys
}

// Values returns every value in ascending-key order. Time complexity: O(n).
func (t *Tree[K, V]) Values() []V {
	vals := make([]V, 0, t.len)
	t.Foreach(func(_ K, v V) bool {
		vals = append(vals, v)

		return true
	})

	return vals
}

// String returns an ASCII-art rendering of the tree, keyed by fmt's
// default formatting of each key.
func (t *Tree[K, V]) String() string {
	if t.root == nil {
		return "Treap[]"
	}

	var sb strings.Builder

	sb.WriteString("Treap\n")
	t.output(t.root, "", true, &sb)

	return sb.String()
}

func (t *Tree[K, V]) output(n *Node[K, V], prefix string, tail bool, sb *strings.Builder) {
	if n.right != nil {
		next := prefix + ternary(tail, "│   ", "    ")
		t.output(n.right, next, false, sb)
	}

	sb.WriteString(prefix)
	sb.WriteString(ternary(tail, "└── ", "┌── "))
	fmt.Fprintf(sb, "%v (prio %d)\n", n.key, n.priority)

	if n.left != nil {
		next := prefix + ternary(tail, "    ", "│   ")
		t.output(n.left, next, true, sb)
	}
}

func ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}

	return b
}

// --------------------------------------------------------------------------------
// Internal BST mechanics

func (t *Tree[K, V]) lookup(key K) *Node[K, V] {
	n := t.root
	for n != nil {
		switch c := t.comparator(key, n.key); {
		case c == 0:
			return n
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}

	return nil
}

func (t *Tree[K, V]) minNode(n *Node[K, V]) *Node[K, V] {
	if n == nil {
		return nil
	}

	for n.left != nil {
		n = n.left
	}

	return n
}

func (t *Tree[K, V]) successor(n *Node[K, V]) *Node[K, V] {
	if n.right != nil {
		return t.minNode(n.right)
	}

	p := n.parent
	for p != nil && n == p.right {
		n = p
		p = p.parent
	}

	return p
}

func (t *Tree[K, V]) replaceNode(old, new *Node[K, V]) {
	if old.parent == nil {
		t.root = new
	} else if old.parent.left == old {
		old.parent.left = new
	} else {
		old.parent.right = new
	}

	if new != nil {
		new.parent = old.parent
	}
}

func (t *Tree[K, V]) rotateLeft(pivot *Node[K, V]) *Node[K, V] {
	r := pivot.right
	t.replaceNode(pivot, r)

	pivot.right = r.left
	if pivot.right != nil {
		pivot.right.parent = pivot
	}

	r.left = pivot
	pivot.parent = r

	return r
}

func (t *Tree[K, V]) rotateRight(pivot *Node[K, V]) *Node[K, V] {
	l := pivot.left
	t.replaceNode(pivot, l)

	pivot.left = l.right
	if pivot.left != nil {
		pivot.left.parent = pivot
	}

	l.right = pivot
	pivot.parent = l

	return l
}
