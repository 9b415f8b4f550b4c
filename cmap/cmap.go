// Package cmap provides a single dynamically dispatched Map façade over
// every engine in this module: the two hash tables and the six search
// trees plus the skip list. A Map owns exactly one
// engine instance, chosen at construction, and forwards every operation to
// it; callers who don't need to pick an engine at runtime can use an
// engine package directly for its statically typed operations instead.
package cmap

import (
	"github.com/kvgrove/grove/avltree"
	"github.com/kvgrove/grove/chainhash"
	"github.com/kvgrove/grove/ds"
	"github.com/kvgrove/grove/openhash"
	"github.com/kvgrove/grove/prtree"
	"github.com/kvgrove/grove/rbtree"
	"github.com/kvgrove/grove/skiplist"
	"github.com/kvgrove/grove/splaytree"
	"github.com/kvgrove/grove/treap"
	"github.com/kvgrove/grove/wbtree"
)

// engine is the capability set every exported engine type in this module
// satisfies, and the set cmap.Map dispatches across.
type engine[K comparable, V any] interface {
	Clear()
	Select(key K) (V, bool)
	Insert(key K, value V) (*V, bool)
	Delete(key K) bool
	Unlink(key K) (K, V, bool)
	Foreach(visit ds.VisitFunc[K, V]) bool
	Free()
	Len() int
}

var (
	_ engine[int, int] = (*avltree.Tree[int, int])(nil)
	_ engine[int, int] = (*rbtree.Tree[int, int])(nil)
	_ engine[int, int] = (*wbtree.Tree[int, int])(nil)
	_ engine[int, int] = (*prtree.Tree[int, int])(nil)
	_ engine[int, int] = (*splaytree.Tree[int, int])(nil)
	_ engine[int, int] = (*treap.Tree[int, int])(nil)
	_ engine[int, int] = (*skiplist.List[int, int])(nil)
	_ engine[int, int] = (*chainhash.Table[int, int])(nil)
	_ engine[int, int] = (*openhash.Table[int, int])(nil)
)

// Map is a key-value container that dispatches every operation to one
// underlying engine, fixed at construction. Sorted reports whether that
// engine supports ascending-key iteration via Foreach: true for every
// ordered engine (all six trees plus the skip list), false for the two
// hash tables.
type Map[K comparable, V any] struct {
	engine engine[K, V]
	sorted bool
}

func wrap[K comparable, V any](e engine[K, V], sorted bool) *Map[K, V] {
	return &Map[K, V]{engine: e, sorted: sorted}
}

// Sorted reports whether Foreach visits keys in ascending order.
func (m *Map[K, V]) Sorted() bool { return m.sorted }

// Len returns the number of keys stored.
func (m *Map[K, V]) Len() int { return m.engine.Len() }

// Clear removes every entry, running destructors on each owned key and
// value.
func (m *Map[K, V]) Clear() { m.engine.Clear() }

// Free releases the underlying engine, running destructors on every
// remaining key and value. Idempotent.
func (m *Map[K, V]) Free() { m.engine.Free() }

// Select returns the value stored under key and true, or the zero value
// and false if key is absent.
func (m *Map[K, V]) Select(key K) (V, bool) { return m.engine.Select(key) }

// Insert stores key/value if key is not already present, returning
// (pointer to the stored value, true) on success or (pointer to the
// existing value, false) on a duplicate key.
func (m *Map[K, V]) Insert(key K, value V) (*V, bool) { return m.engine.Insert(key, value) }

// Delete removes key, running destructors on its stored key and value.
// Returns true if key was present.
func (m *Map[K, V]) Delete(key K) bool { return m.engine.Delete(key) }

// Unlink removes key and returns its stored key and value without
// invoking destructors, transferring ownership back to the caller.
func (m *Map[K, V]) Unlink(key K) (K, V, bool) { return m.engine.Unlink(key) }

// Foreach visits every entry, calling visit(key, value) for each. Ordered
// engines (Sorted() == true) visit keys in strictly ascending order; hash
// engines visit in arbitrary bucket/probe order. If visit returns false,
// iteration stops immediately and Foreach returns false.
func (m *Map[K, V]) Foreach(visit ds.VisitFunc[K, V]) bool { return m.engine.Foreach(visit) }

// NewAVL builds a Map backed by an AVL (height-balanced) tree.
func NewAVL[K comparable, V any](cfg avltree.Config[K, V]) (*Map[K, V], error) {
	t, err := avltree.New[K, V](cfg)
	if err != nil {
		return nil, err
	}

	return wrap[K, V](t, true), nil
}

// NewRedBlack builds a Map backed by a red-black tree.
func NewRedBlack[K comparable, V any](cfg rbtree.Config[K, V]) (*Map[K, V], error) {
	t, err := rbtree.New[K, V](cfg)
	if err != nil {
		return nil, err
	}

	return wrap[K, V](t, true), nil
}

// NewWeightBalanced builds a Map backed by a weight-balanced tree.
func NewWeightBalanced[K comparable, V any](cfg wbtree.Config[K, V]) (*Map[K, V], error) {
	t, err := wbtree.New[K, V](cfg)
	if err != nil {
		return nil, err
	}

	return wrap[K, V](t, true), nil
}

// NewPathReduction builds a Map backed by an internal path-reduction tree.
func NewPathReduction[K comparable, V any](cfg prtree.Config[K, V]) (*Map[K, V], error) {
	t, err := prtree.New[K, V](cfg)
	if err != nil {
		return nil, err
	}

	return wrap[K, V](t, true), nil
}

// NewSplay builds a Map backed by a splay tree.
func NewSplay[K comparable, V any](cfg splaytree.Config[K, V]) (*Map[K, V], error) {
	t, err := splaytree.New[K, V](cfg)
	if err != nil {
		return nil, err
	}

	return wrap[K, V](t, true), nil
}

// NewTreap builds a Map backed by a treap.
func NewTreap[K comparable, V any](cfg treap.Config[K, V]) (*Map[K, V], error) {
	t, err := treap.New[K, V](cfg)
	if err != nil {
		return nil, err
	}

	return wrap[K, V](t, true), nil
}

// NewSkipList builds a Map backed by a skip list.
func NewSkipList[K comparable, V any](cfg skiplist.Config[K, V]) (*Map[K, V], error) {
	l, err := skiplist.New[K, V](cfg)
	if err != nil {
		return nil, err
	}

	return wrap[K, V](l, true), nil
}

// NewChained builds a Map backed by a separate-chaining hash table.
func NewChained[K comparable, V any](cfg chainhash.Config[K, V]) (*Map[K, V], error) {
	tb, err := chainhash.New[K, V](cfg)
	if err != nil {
		return nil, err
	}

	return wrap[K, V](tb, false), nil
}

// NewOpenAddressing builds a Map backed by an open-addressing hash table.
func NewOpenAddressing[K comparable, V any](cfg openhash.Config[K, V]) (*Map[K, V], error) {
	tb, err := openhash.New[K, V](cfg)
	if err != nil {
		return nil, err
	}

	return wrap[K, V](tb, false), nil
}
