// Package openhash implements an open-addressing hash table using linear
// probing and backward-shift deletion, for key-value storage with no
// ordering guarantee across keys.
//
// The slot array is sized from the same fixed prime sequence chainhash
// uses (see internal/hashsize). Insert and lookup probe
// (hash mod N), (+1), (+2), ... wrapping at N, until the key is found or
// an empty slot terminates the probe. Deletion empties the slot and then
// shifts later entries backward along their probe chains so that no live
// key's probe ever crosses an empty slot — this repairs the invariant
// without leaving tombstones behind. Not thread-safe.
package openhash

import (
	"fmt"
	"strings"

	"github.com/kvgrove/grove/ds"
	"github.com/kvgrove/grove/internal/hashsize"
)

// slot is one flat record of the table. occupied distinguishes a live
// entry from an empty one — Go generics admit key types with no natural
// null sentinel (e.g. int, struct), so occupancy is tracked explicitly
// rather than via a sentinel key value.
type slot[K comparable, V any] struct {
	key      K
	value    V
	hash     uint64
	occupied bool
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

// Table manages an open-addressing hash table of key-value pairs.
type Table[K comparable, V any] struct {
	slots      []slot[K, V]
	n          uint64
	len        int
	comparator ds.Comparator[K]
	hasher     ds.Hasher[K]
	keyDestroy ds.Destructor[K]
	valDestroy ds.Destructor[V]
}

// New creates an open-addressing hash table using cfg.Comparator and
// cfg.Hasher. Returns ds.ErrNilComparator or ds.ErrNilHasher if either is
// nil.
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
		slots:      make([]slot[K, V], n),
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
// value, and re-blanks the slot array at the smallest configured size —
// unlike a variant that merely zeroes the count, every slot is reset to
// empty before reuse.
// Time complexity: O(n).
func (tb *Table[K, V]) Clear() {
	for i := range tb.slots {
		s := &tb.slots[i]
		if !s.occupied {
			continue
		}

		if tb.keyDestroy != nil {
			tb.keyDestroy(s.key)
		}

		if tb.valDestroy != nil {
			tb.valDestroy(s.value)
		}
	}

	tb.n = hashsize.MinSize
	tb.slots = make([]slot[K, V], tb.n)
	tb.len = 0
}

// Free releases the table, running destructors on every remaining key and
// value. Idempotent.
func (tb *Table[K, V]) Free() { tb.Clear() }

// probe walks the probe chain for (h, key), returning the index of the
// matching live slot (found == true) or the first empty slot the chain
// reaches (found == false).
func (tb *Table[K, V]) probe(h uint64, key K) (idx uint64, found bool) {
	start := h % tb.n
	i := start

	for {
		s := &tb.slots[i]
		if !s.occupied {
			return i, false
		}

		if s.hash == h && tb.comparator(s.key, key) == 0 {
			return i, true
		}

		i = (i + 1) % tb.n
		if i == start {
			return i, false
		}
	}
}

// Select returns the value stored under key and true, or the zero value and
// false if key is absent. Time complexity: O(1) amortized.
func (tb *Table[K, V]) Select(key K) (V, bool) {
	idx, found := tb.probe(tb.hasher(key), key)
	if !found {
		var zero V

		return zero, false
	}

	return tb.slots[idx].value, true
}

// Insert stores key/value if key is not already present.
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

	if idx, found := tb.probe(h, key); found {
		return &tb.slots[idx].value, false
	}

	if hashsize.ShouldGrow(uint64(tb.len)+1, tb.n) {
		tb.grow()
	}

	idx, _ := tb.probe(h, key)
	tb.slots[idx] = slot[K, V]{key: key, value: value, hash: h, occupied: true}
	tb.len++

	return &tb.slots[idx].value, true
}

// grow rehashes every live slot into a slot array sized to the next
// prime. If the table is already at the largest configured prime, grow is
// a no-op and the table stays at its current (overloaded) size.
func (tb *Table[K, V]) grow() {
	newN := hashsize.PrimeGEQ(tb.n + 1)
	if newN == tb.n {
		return
	}

	old := tb.slots
	tb.slots = make([]slot[K, V], newN)
	tb.n = newN

	for _, s := range old {
		if !s.occupied {
			continue
		}

		idx := s.hash % newN
		for tb.slots[idx].occupied {
			idx = (idx + 1) % newN
		}

		tb.slots[idx] = s
	}
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
	idx, found := tb.probe(tb.hasher(key), key)
	if !found {
		var zk K

		var zv V

		return zk, zv, false
	}

	k, v := tb.slots[idx].key, tb.slots[idx].value
	tb.removeAt(idx)
	tb.len--

	return k, v, true
}

// removeAt empties the slot at i and repairs every later probe chain by
// shifting entries backward, so that no live key's probe from its natural
// bucket ever reaches an empty slot. This is the standard tombstone-free
// backward-shift deletion for linear probing.
func (tb *Table[K, V]) removeAt(i uint64) {
	n := tb.n
	j := i

	for {
		j = (j + 1) % n
		if !tb.slots[j].occupied {
			break
		}

		k := tb.slots[j].hash % n

		var shift bool
		if i <= j {
			shift = k <= i || k > j
		} else {
			shift = k <= i && k > j
		}

		if shift {
			tb.slots[i] = tb.slots[j]
			i = j
		}
	}

	tb.slots[i] = slot[K, V]{}
}

// Foreach visits every stored key/value pair in arbitrary (slot) order,
// calling visit(key, value) for each. If visit returns false, iteration
// stops immediately and Foreach returns false; otherwise Foreach returns
// true once every key has been visited. Must not mutate the table.
// Time complexity: O(n).
func (tb *Table[K, V]) Foreach(visit ds.VisitFunc[K, V]) bool {
	for i := range tb.slots {
		s := &tb.slots[i]
		if !s.occupied {
			continue
		}

		if !visit(s.key, s.value) {
			return false
		}
	}

	return true
}

// String returns a short summary of the table's size and load.
func (tb *Table[K, V]) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "OpenAddressingHashTable[len=%d slots=%d]", tb.len, tb.n)

	return sb.String()
}
