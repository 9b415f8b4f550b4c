// Package skiplist implements a probabilistic ordered key-value structure:
// a sequence of singly linked levels, each skipping more of the list than
// the one below, giving expected O(log n) search, insert, and delete
// without any rotation or rebalancing.
//
// The list has a sentinel head with MaxLevel forward slots. Every
// operation walks top-down: at each level it advances while the next
// key is less than the target, then descends, recording where it stepped
// down (the "update" array) so Insert/Delete can splice in or out at every
// level a node participates in. A new node's level count comes from the
// caller-supplied LevelFunc (typically geometric), clamped to the
// configured MaxLevel. Not thread-safe.
//
// Reference: [Pugh 1990], "Skip Lists: A Probabilistic Alternative to
// Balanced Trees".
package skiplist

import (
	"fmt"
	"strings"

	"github.com/kvgrove/grove/ds"
)

// MaxLevel is the hard cap on levels any list may be configured with.
const MaxLevel = 32

// node is a single element of the list.
type node[K comparable, V any] struct {
	key     K
	value   V
	prev    *node[K, V] // level-0 only; nil at the first real node
	forward []*node[K, V]
}

// Key returns the node's key.
func (n *node[K, V]) Key() K { return n.key }

// Value returns the node's value.
func (n *node[K, V]) Value() V { return n.value }

// Level returns the number of levels n participates in.
func (n *node[K, V]) Level() int { return len(n.forward) }

// Config holds the callbacks a List is built with. Comparator and
// LevelFunc are required; MaxLevel optionally lowers the hard cap of 32
// (values <= 0 or > MaxLevel default to MaxLevel). KeyDestroy and
// ValDestroy are optional and run once per owned key/value released
// without being returned to the caller (Delete, Clear, Free). Unlink
// never invokes them.
type Config[K comparable, V any] struct {
	Comparator ds.Comparator[K]
	LevelFunc  ds.LevelFunc
	MaxLevel   int
	KeyDestroy ds.Destructor[K]
	ValDestroy ds.Destructor[V]
}

// List manages a skip list of key-value pairs.
type List[K comparable, V any] struct {
	head       *node[K, V]
	level      int // number of levels currently in use, in [1, maxLevel]
	maxLevel   int
	len        int
	comparator ds.Comparator[K]
	levelFunc  ds.LevelFunc
	keyDestroy ds.Destructor[K]
	valDestroy ds.Destructor[V]
}

// New creates a skip list using cfg.Comparator and cfg.LevelFunc. Returns
// ds.ErrNilComparator or ds.ErrNilLevelFunc if either is nil.
func New[K comparable, V any](cfg Config[K, V]) (*List[K, V], error) {
	if cfg.Comparator == nil {
		return nil, ds.ErrNilComparator
	}

	if cfg.LevelFunc == nil {
		return nil, ds.ErrNilLevelFunc
	}

	maxLevel := cfg.MaxLevel
	if maxLevel <= 0 || maxLevel > MaxLevel {
		maxLevel = MaxLevel
	}

	return &List[K, V]{
		head:       &node[K, V]{forward: make([]*node[K, V], maxLevel)},
		level:      1,
		maxLevel:   maxLevel,
		comparator: cfg.Comparator,
		levelFunc:  cfg.LevelFunc,
		keyDestroy: cfg.KeyDestroy,
		valDestroy: cfg.ValDestroy,
	}, nil
}

// Len returns the number of keys stored in the list.
func (l *List[K, V]) Len() int { return l.len }

// TopLevel returns the highest level currently in use (the maximum level
// among stored nodes, or 1 when the list is empty).
func (l *List[K, V]) TopLevel() int { return l.level }

// Clear removes every node, running destructors on each owned key and
// value, and resets the list to empty. Time complexity: O(n).
func (l *List[K, V]) Clear() {
	for n := l.head.forward[0]; n != nil; {
		next := n.forward[0]

		if l.keyDestroy != nil {
			l.keyDestroy(n.key)
		}

		if l.valDestroy != nil {
			l.valDestroy(n.value)
		}

		n = next
	}

	for i := range l.head.forward {
		l.head.forward[i] = nil
	}

	l.level = 1
	l.len = 0
}

// Free releases the list, running destructors on every remaining key and
// value. Idempotent.
func (l *List[K, V]) Free() { l.Clear() }

// Select returns the value stored under key and true, or the zero value and
// false if key is absent. Time complexity: expected O(log n).
func (l *List[K, V]) Select(key K) (V, bool) {
	x := l.head

	for i := l.level - 1; i >= 0; i-- {
		for x.forward[i] != nil && l.comparator(x.forward[i].key, key) < 0 {
			x = x.forward[i]
		}
	}

	x = x.forward[0]
	if x != nil && l.comparator(x.key, key) == 0 {
		return x.value, true
	}

	var zero V

	return zero, false
}

// search walks top-down recording, at update[i], the last node at level i
// (possibly the head) whose key is less than key. Returns the update array
// and the level-0 node immediately following it (the candidate match, or
// nil).
func (l *List[K, V]) search(key K) ([]*node[K, V], *node[K, V]) {
	update := make([]*node[K, V], l.maxLevel)
	x := l.head

	for i := l.level - 1; i >= 0; i-- {
		for x.forward[i] != nil && l.comparator(x.forward[i].key, key) < 0 {
			x = x.forward[i]
		}

		update[i] = x
	}

	return update, x.forward[0]
}

// Insert stores key/value if key is not already present, at a level drawn
// from cfg.LevelFunc and clamped to the configured MaxLevel.
//
// On success, returns (pointer to the newly stored value, true); ownership
// of key and value transfers to the list. On a duplicate key, the existing
// stored value is left untouched and Insert returns (pointer to it, false).
// A nil key is always rejected. Time complexity: expected O(log n).
func (l *List[K, V]) Insert(key K, value V) (*V, bool) {
	if ds.IsNilKey(key) {
		return nil, false
	}

	update, candidate := l.search(key)
	if candidate != nil && l.comparator(candidate.key, key) == 0 {
		return &candidate.value, false
	}

	lvl := l.levelFunc()
	if lvl < 1 {
		lvl = 1
	}

	if lvl > l.maxLevel {
		lvl = l.maxLevel
	}

	if lvl > l.level {
		for i := l.level; i < lvl; i++ {
			update[i] = l.head
		}

		l.level = lvl
	}

	n := &node[K, V]{key: key, value: value, forward: make([]*node[K, V], lvl)}

	for i := range lvl {
		n.forward[i] = update[i].forward[i]
		update[i].forward[i] = n
	}

	if update[0] != l.head {
		n.prev = update[0]
	}

	if n.forward[0] != nil {
		n.forward[0].prev = n
	}

	l.len++

	return &n.value, true
}

// Delete removes key, running destructors on its stored key and value.
// Returns true if key was present. Time complexity: expected O(log n).
func (l *List[K, V]) Delete(key K) bool {
	k, v, ok := l.unlink(key)
	if !ok {
		return false
	}

	if l.keyDestroy != nil {
		l.keyDestroy(k)
	}

	if l.valDestroy != nil {
		l.valDestroy(v)
	}

	return true
}

// Unlink removes key and returns its stored key and value without invoking
// destructors, transferring ownership back to the caller. Returns
// (zero, zero, false) if key is absent. Time complexity: expected O(log n).
func (l *List[K, V]) Unlink(key K) (K, V, bool) {
	return l.unlink(key)
}

func (l *List[K, V]) unlink(key K) (K, V, bool) {
	update, x := l.search(key)
	if x == nil || l.comparator(x.key, key) != 0 {
		var zk K

		var zv V

		return zk, zv, false
	}

	for i := range x.forward {
		if update[i].forward[i] != x {
			break
		}

		update[i].forward[i] = x.forward[i]
	}

	if x.forward[0] != nil {
		x.forward[0].prev = x.prev
	}

	for l.level > 1 && l.head.forward[l.level-1] == nil {
		l.level--
	}

	l.len--

	return x.key, x.value, true
}

// Foreach visits every key in strictly ascending order, calling
// visit(key, value) for each. If visit returns false, iteration stops
// immediately and Foreach returns false; otherwise Foreach returns true
// once every key has been visited. Must not mutate the list.
// Time complexity: O(n).
func (l *List[K, V]) Foreach(visit ds.VisitFunc[K, V]) bool {
	for n := l.head.forward[0]; n != nil; n = n.forward[0] {
		if !visit(n.key, n.value) {
			return false
		}
	}

	return true
}

// Keys returns every key in ascending order. Time complexity: O(n).
func (l *List[K, V]) Keys() []K {
	keys := make([]K, 0, l.len)
	l.Foreach(func(k K, _ V) bool {
		keys = append(keys, k)

		return true
	})

	return keys
}

// Values returns every value in ascending-key order. Time complexity: O(n).
func (l *List[K, V]) Values() []V {
	vals := make([]V, 0, l.len)
	l.Foreach(func(_ K, v V) bool {
		vals = append(vals, v)

		return true
	})

	return vals
}

// String renders the list's level-0 chain as a flat, ordered sequence.
func (l *List[K, V]) String() string {
	var sb strings.Builder

	sb.WriteString("SkipList[")

	first := true

	l.Foreach(func(k K, _ V) bool {
		if !first {
			sb.WriteString(" ")
		}

		first = false

		fmt.Fprintf(&sb, "%v", k)

		return true
	})

	sb.WriteString("]")

	return sb.String()
}
