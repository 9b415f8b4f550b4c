// Package rbtree implements a red-black tree for ordered key-value storage.
//
// It is a self-balancing binary search tree offering O(log n) insertion,
// deletion, and lookup by maintaining the red-black invariants (no two
// adjacent red nodes; every root-to-nil path carries the same black
// height). Not thread-safe.
//
// Reference: https://en.wikipedia.org/wiki/Red%E2%80%93black_tree
package rbtree

import (
	"fmt"
	"strings"

	"github.com/kvgrove/grove/ds"
)

type color bool

const (
	black color = true
	red   color = false
)

// Node is a single element of the tree.
type Node[K comparable, V any] struct {
	key    K
	value  V
	color  color
	left   *Node[K, V]
	right  *Node[K, V]
	parent *Node[K, V]
}

// Key returns the node's key.
func (n *Node[K, V]) Key() K { return n.key }

// Value returns the node's value.
func (n *Node[K, V]) Value() V { return n.value }

// Left returns the node's left child, or nil.
func (n *Node[K, V]) Left() *Node[K, V] { return n.left }

// Right returns the node's right child, or nil.
func (n *Node[K, V]) Right() *Node[K, V] { return n.right }

// Parent returns the node's parent, or nil at the root.
func (n *Node[K, V]) Parent() *Node[K, V] { return n.parent }

// Config holds the callbacks a Tree is built with. Comparator is required;
// KeyDestroy and ValDestroy are optional and run once per owned key/value
// released without being returned to the caller (Delete, Clear, Free).
// Unlink never invokes them.
type Config[K comparable, V any] struct {
	Comparator ds.Comparator[K]
	KeyDestroy ds.Destructor[K]
	ValDestroy ds.Destructor[V]
}

// Tree manages a red-black tree of key-value pairs.
type Tree[K comparable, V any] struct {
	root       *Node[K, V]
	len        int
	comparator ds.Comparator[K]
	keyDestroy ds.Destructor[K]
	valDestroy ds.Destructor[V]
}

// New creates a red-black tree using cfg.Comparator. Returns
// ds.ErrNilComparator if cfg.Comparator is nil.
func New[K comparable, V any](cfg Config[K, V]) (*Tree[K, V], error) {
	if cfg.Comparator == nil {
		return nil, ds.ErrNilComparator
	}

	return &Tree[K, V]{
		comparator: cfg.Comparator,
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
// false if key is absent. Time complexity: O(log n).
func (t *Tree[K, V]) Select(key K) (V, bool) {
	if n := t.lookup(key); n != nil {
		return n.value, true
	}

	var zero V

	return zero, false
}

// Insert stores key/value if key is not already present.
//
// On success, returns (pointer to the newly stored value, true); ownership
// of key and value transfers to the tree. On a duplicate key, the existing
// stored value is left untouched and Insert returns (pointer to that
// existing value, false). A nil key is always rejected. Time complexity:
// O(log n).
func (t *Tree[K, V]) Insert(key K, value V) (*V, bool) {
	if ds.IsNilKey(key) {
		return nil, false
	}

	if t.root == nil {
		t.root = &Node[K, V]{key: key, value: value, color: black}
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

	n := &Node[K, V]{key: key, value: value, color: red, parent: parent}
	if c < 0 {
		parent.left = n
	} else {
		parent.right = n
	}

	t.rebalanceAfterInsert(n)
	t.len++

	return &n.value, true
}

// Delete removes key, running destructors on its stored key and value.
// Returns true if key was present. Time complexity: O(log n).
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
// (zero, zero, false) if key is absent. Time complexity: O(log n).
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

// unlinkNode removes n from the tree structure, rebalances, and returns its
// stored key/value.
func (t *Tree[K, V]) unlinkNode(n *Node[K, V]) (K, V) {
	k, v := n.key, n.value

	if n.left != nil && n.right != nil {
		pred := t.maxNode(n.left)
		n.key, n.value = pred.key, pred.value
		n = pred
	}

	child := n.left
	if child == nil {
		child = n.right
	}

	if n.color == black {
		n.color = colorOf(child)
		t.rebalanceAfterDelete(n)
	}

	t.replaceNode(n, child)

	if n.parent == nil && child != nil {
		child.color = black
	}

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
		return "RedBlackTree[]"
	}

	var sb strings.Builder

	sb.WriteString("RedBlackTree\n")
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
	fmt.Fprintf(sb, "%v\n", n.key)

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

func (t *Tree[K, V]) maxNode(n *Node[K, V]) *Node[K, V] {
	if n == nil {
		return nil
	}

	for n.right != nil {
		n = n.right
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

func (t *Tree[K, V]) rotateLeft(n *Node[K, V]) {
	r := n.right
	t.replaceNode(n, r)

	n.right = r.left
	if r.left != nil {
		r.left.parent = n
	}

	r.left = n
	n.parent = r
}

func (t *Tree[K, V]) rotateRight(n *Node[K, V]) {
	l := n.left
	t.replaceNode(n, l)

	n.left = l.right
	if l.right != nil {
		l.right.parent = n
	}

	l.right = n
	n.parent = l
}

func (t *Tree[K, V]) replaceNode(old, new *Node[K, V]) {
	if old.parent == nil {
		t.root = new
	} else if old == old.parent.left {
		old.parent.left = new
	} else {
		old.parent.right = new
	}

	if new != nil {
		new.parent = old.parent
	}
}

// --------------------------------------------------------------------------------
// Balance maintenance
//
// Both repairs walk upward from the node that just changed color, one level
// per iteration, stopping the moment a single recolor or rotation absorbs
// the violation instead of recursing back into a sibling function for every
// case.

// rebalanceAfterInsert restores the red-black invariants after n has been
// linked in as a red leaf. While n's parent is red it can only have a red
// uncle (recolor and retry one level up) or a black-or-absent uncle (at
// most two rotations, which always terminates the walk).
func (t *Tree[K, V]) rebalanceAfterInsert(n *Node[K, V]) {
	for {
		par := n.parent
		if par == nil {
			n.color = black

			return
		}

		if par.color == black {
			return
		}

		// par is red, and the root is always black, so par has a parent.
		gp := par.parent

		var uncle *Node[K, V]
		if par == gp.left {
			uncle = gp.right
		} else {
			uncle = gp.left
		}

		if colorOf(uncle) == red {
			par.color = black
			uncle.color = black
			gp.color = red
			n = gp

			continue
		}

		if n == par.right && par == gp.left {
			t.rotateLeft(par)
			n, par = par, n
		} else if n == par.left && par == gp.right {
			t.rotateRight(par)
			n, par = par, n
		}

		par.color = black
		gp.color = red

		if n == par.left {
			t.rotateRight(gp)
		} else {
			t.rotateLeft(gp)
		}

		return
	}
}

// rebalanceAfterDelete restores the invariants after n has taken the place
// of a removed black node, carrying an extra unit of "blackness" that must
// be pushed up, absorbed, or eliminated by rotation before the walk can
// stop.
func (t *Tree[K, V]) rebalanceAfterDelete(n *Node[K, V]) {
	for n.parent != nil {
		par := n.parent
		onLeft := n == par.left

		sib := par.right
		if !onLeft {
			sib = par.left
		}

		if colorOf(sib) == red {
			par.color = red
			sib.color = black

			if onLeft {
				t.rotateLeft(par)
				sib = par.right
			} else {
				t.rotateRight(par)
				sib = par.left
			}
		}

		near, far := sib.left, sib.right
		if !onLeft {
			near, far = sib.right, sib.left
		}

		if colorOf(near) == black && colorOf(far) == black {
			sib.color = red

			if par.color == red {
				par.color = black

				return
			}

			n = par

			continue
		}

		if colorOf(near) == red && colorOf(far) == black {
			near.color = black
			sib.color = red

			if onLeft {
				t.rotateRight(sib)
				sib = par.right
			} else {
				t.rotateLeft(sib)
				sib = par.left
			}
		}

		sib.color = par.color
		par.color = black

		if onLeft {
			sib.right.color = black
			t.rotateLeft(par)
		} else {
			sib.left.color = black
			t.rotateRight(par)
		}

		return
	}
}

// colorOf reports a node's color, treating a nil child as black per the
// red-black convention that every external leaf is black.
func colorOf[K comparable, V any](n *Node[K, V]) color {
	if n == nil {
		return black
	}

	return n.color
}
