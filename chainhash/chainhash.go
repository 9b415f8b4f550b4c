// Package chainhash implements a separate-chaining hash table for
// key-value storage with no ordering guarantee across keys.
//
// The bucket array is sized from a fixed sequence of primes (see
// internal/hashsize); each bucket's chain is kept sorted by ascending
// stored hash, so lookup and insert can both early-terminate once a
// chain's hash exceeds the target instead of walking every collision.
// When the load factor crosses 2/3 the table grows to the next prime,
// rehashing every node — if that allocation were to fail, the table would
// simply stay at its old size and the triggering insert would still
// proceed, since a chain has no fixed capacity. Not thread-safe.
package chainhash

import (
	"fmt"
	"strings"

	"github.com/kvgrove/grove/ds"
	"github.com/kvgrove/grove/internal/hashsize"
)

// node is a single element of a bucket chain, ordered within its bucket by
// ascending hash.
type node[K comparable, V any] struct {
	key   K
	value V
	hash  uint64
	next  *node[K, V]
}

// Config holds the callbacks and sizing hint a Table is built with.
// Comparator and Hasher are both required; InitialSize is a hint for the
// expected key count (rounded up to the smallest adequate prime; <= 0
// defaults to the smallest prime). KeyDestroy and ValDestroy are optional
// and run once per owned key/value released without being returned to the
// caller (Delete, Clear, Free). Unlink never invokes them.
type Config[K comparable, V any] struct {
	Comparator  ds.Comparator[K]
	Hasher      ds.Hasher[K]
	InitialSize int
	KeyDestroy  ds.Destructor[K]
	ValDestroy  ds.Destructor[V]
}

// Table manages a chained hash table of key-value pairs.
type Table[K comparable, V any] struct {
	buckets    []*node[K, V]
	n          uint64
	len        int
	comparator ds.Comparator[K]
	hasher     ds.Hasher[K]
	keyDestroy ds.Destructor[K]
	valDestroy ds.Destructor[V]
}

// New creates a chained hash table using cfg.Comparator and cfg.Hasher.
// Returns ds.ErrNilComparator or ds.ErrNilHasher if either is nil.
func New[K comparable, V any](cfg Config[K, V]) (*Table[K, V], error) {
	if cfg.Comparator == nil {
		return nil, ds.ErrNilComparator
	}

	if cfg.Hasher == nil {
		return nil, ds.ErrNilHasher
	}

	n := hashsize.MinSize
	if cfg.InitialSize > 0 {
		n = hashsize.PrimeGEQ(uint64(cfg.InitialSize))
	}

	return &Table[K, V]{
		buckets:    make([]*node[K, V], n),
		n:          n,
		comparator: cfg.Comparator,
		hasher:     cfg.Hasher,
		keyDestroy: cfg.KeyDestroy,
		valDestroy: cfg.ValDestroy,
	}, nil
}

// Len returns the number of keys stored in the table.
func (tb *Table[K, V]) Len() int { return tb.len }

// Clear removes every entry, running destructors on each owned key and
// value, and resets the table's bucket array to the smallest configured
// size. Time complexity: O(n).
func (tb *Table[K, V]) Clear() {
	for _, head := range tb.buckets {
		for n := head; n != nil; {
			next := n.next

			if tb.keyDestroy != nil {
				tb.keyDestroy(n.key)
			}

			if tb.valDestroy != nil {
				tb.valDestroy(n.value)
			}

			n = next
		}
	}

	tb.n = hashsize.MinSize
	tb.buckets = make([]*node[K, V], tb.n)
	tb.len = 0
}

// Free releases the table, running destructors on every remaining key and
// value. Idempotent.
func (tb *Table[K, V]) Free() { tb.Clear() }

// Select returns the value stored under key and true, or the zero value and
// false if key is absent. Time complexity: O(1) amortized.
func (tb *Table[K, V]) Select(key K) (V, bool) {
	h := tb.hasher(key)

	for n := tb.buckets[h%tb.n]; n != nil && n.hash <= h; n = n.next {
		if n.hash == h && tb.comparator(n.key, key) == 0 {
			return n.value, true
		}
	}

	var zero V

	return zero, false
}

// findSlot reports the stored-value slot for key within its current
// bucket, if already present.
func (tb *Table[K, V]) findSlot(h uint64, key K) *V {
	for n := tb.buckets[h%tb.n]; n != nil && n.hash <= h; n = n.next {
		if n.hash == h && tb.comparator(n.key, key) == 0 {
			return &n.value
		}
	}

	return nil
}

// Insert stores key/value if key is not already present (by cfg.Comparator
// among same-hash collisions).
//
// On success, returns (pointer to the newly stored value, true); ownership
// of key and value transfers to the table. On a duplicate key, the
// existing stored value is left untouched and Insert returns (pointer to
// it, false). A nil key is always rejected. Time complexity: O(1)
// amortized.
func (tb *Table[K, V]) Insert(key K, value V) (*V, bool) {
	if ds.IsNilKey(key) {
		return nil, false
	}

	h := tb.hasher(key)

	if slot := tb.findSlot(h, key); slot != nil {
		return slot, false
	}

	if hashsize.ShouldGrow(uint64(tb.len)+1, tb.n) {
		tb.grow()
	}

	bi := h % tb.n

	var prev *node[K, V]

	cur := tb.buckets[bi]
	for cur != nil && cur.hash <= h {
		prev = cur
		cur = cur.next
	}

	n := &node[K, V]{key: key, value: value, hash: h, next: cur}
	if prev == nil {
		tb.buckets[bi] = n
	} else {
		prev.next = n
	}

	tb.len++

	return &n.value, true
}

// grow rehashes every node into a bucket array sized to the next prime,
// preserving per-bucket hash order. If the table is already at the largest
// configured prime, grow is a no-op and the table stays at its current
// (overloaded) size.
func (tb *Table[K, V]) grow() {
	newN := hashsize.PrimeGEQ(tb.n + 1)
	if newN == tb.n {
		return
	}

	newBuckets := make([]*node[K, V], newN)

	for _, head := range tb.buckets {
		for cur := head; cur != nil; {
			next := cur.next
			cur.next = nil

			bi := cur.hash % newN

			var prev *node[K, V]

			dst := newBuckets[bi]
			for dst != nil && dst.hash <= cur.hash {
				prev = dst
				dst = dst.next
			}

			cur.next = dst
			if prev == nil {
				newBuckets[bi] = cur
			} else {
				prev.next = cur
			}

			cur = next
		}
	}

	tb.buckets = newBuckets
	tb.n = newN
}

// Delete removes key, running destructors on its stored key and value.
// Returns true if key was present. Time complexity: O(1) amortized.
func (tb *Table[K, V]) Delete(key K) bool {
	k, v, ok := tb.unlink(key)
	if !ok {
		return false
	}

	if tb.keyDestroy != nil {
		tb.keyDestroy(k)
	}

	if tb.valDestroy != nil {
		tb.valDestroy(v)
	}

	return true
}

// Unlink removes key and returns its stored key and value without invoking
// destructors, transferring ownership back to the caller. Returns
// (zero, zero, false) if key is absent. Time complexity: O(1) amortized.
func (tb *Table[K, V]) Unlink(key K) (K, V, bool) {
	return tb.unlink(key)
}

func (tb *Table[K, V]) unlink(key K) (K, V, bool) {
	h := tb.hasher(key)
	bi := h % tb.n

	var prev *node[K, V]

	cur := tb.buckets[bi]
	for cur != nil && cur.hash <= h {
		if cur.hash == h && tb.comparator(cur.key, key) == 0 {
			if prev == nil {
				tb.buckets[bi] = cur.next
			} else {
				prev.next = cur.next
			}

			tb.len--

			return cur.key, cur.value, true
		}

		prev = cur
		cur = cur.next
	}

	var zk K

	var zv V

	return zk, zv, false
}

// Foreach visits every stored key/value pair in arbitrary (bucket and
// chain) order, calling visit(key, value) for each. If visit returns
// false, iteration stops immediately and Foreach returns false; otherwise
// Foreach returns true once every key has been visited. Must not mutate
// the table. Time complexity: O(n).
func (tb *Table[K, V]) Foreach(visit ds.VisitFunc[K, V]) bool {
	for _, head := range tb.buckets {
		for n := head; n != nil; n = n.next {
			if !visit(n.key, n.value) {
				return false
			}
		}
	}

	return true
}

// String returns a short summary of the table's size and load.
func (tb *Table[K, V]) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "ChainedHashTable[len=%d buckets=%d]", tb.len, tb.n)

	return sb.String()
}
