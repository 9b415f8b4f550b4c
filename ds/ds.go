// Package ds provides the callback signatures and sentinel errors shared by
// every engine in this module: the two hash tables, the six search trees
// (five self-balancing ones plus the splay tree), the skip list, and the Map façade that dispatches across
// them.
//
// An engine never imports another engine; everything they have in common —
// comparator shape, destructor shape, the iteration-abort convention — lives
// here, the way github.com/qntx/gods factors comparator and ordering helpers
// into its own cmp package rather than duplicating them per container.
package ds

import (
	"errors"
	"reflect"
)

// Comparator defines a total order over K. It must be deterministic and
// reflexive for the lifetime of any container built with it; equality of two
// keys means Comparator(a, b) == 0.
//
// Returns:
//   - negative if a < b
//   - zero if a == b
//   - positive if a > b
type Comparator[K any] func(a, b K) int

// Hasher computes a deterministic hash over a key. Keys considered equal by
// a Comparator must hash identically. Used only by the two hash-table
// engines.
type Hasher[K any] func(key K) uint64

// Priority computes a deterministic heap priority for a key. Used only by
// the treap, which maintains max-heap order over these values alongside BST
// order over the keys.
type Priority[K any] func(key K) uint64

// Destructor is invoked once per owned key or value when a container
// releases it without returning it to the caller: on Delete, Clear, and
// Free. It is never invoked by Unlink, which transfers ownership back to the
// caller instead. A nil Destructor means the caller retains ownership of
// that component beyond the container's lifetime, and the container simply
// drops its reference.
type Destructor[T any] func(value T)

// LevelFunc returns the level count (in [1, MaxLevel]) for the next skip
// list insertion. Implementations are typically geometric, e.g. repeated
// coin flips.
type LevelFunc func() int

// VisitFunc is the callback passed to Foreach. It folds the spec's two
// iteration shapes ("simple" and "key/value") into a single signature —
// since Go closures already capture whatever a C-style callback would need a
// separate user-data pointer for, there is no second parameter here.
// Returning false aborts iteration; Foreach then returns false to its
// caller. Foreach must not be used to mutate the container it is iterating.
type VisitFunc[K, V any] func(key K, value V) bool

// Sentinel errors shared across engines. Each names exactly one of the
// "invalid argument" failure kinds every constructor can report.
var (
	// ErrNilComparator is returned when a constructor that orders keys is
	// given a nil Comparator.
	ErrNilComparator = errors.New("ds: comparator must not be nil")

	// ErrNilHasher is returned when a hash-table constructor is given a nil
	// Hasher.
	ErrNilHasher = errors.New("ds: hasher must not be nil")

	// ErrNilPriority is returned when the treap constructor is given a nil
	// Priority callback.
	ErrNilPriority = errors.New("ds: priority function must not be nil")

	// ErrNilLevelFunc is returned when the skip list constructor is given a
	// nil LevelFunc.
	ErrNilLevelFunc = errors.New("ds: level function must not be nil")
)

// IsNilKey reports whether key is the nil value of a nilable kind (pointer,
// interface, channel, func, map, or slice). Value-typed keys (int, string,
// structs, arrays) have no nil representation and always report false — the
// spec's "a null key is always rejected" rule is a C-pointer idiom that
// applies only when K is instantiated with a nilable type; for any other K
// it is vacuously satisfied, since there is no key value to reject.
func IsNilKey[K any](key K) bool {
	v := reflect.ValueOf(key)
	if !v.IsValid() {
		// K is an interface type holding no value at all.
		return true
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Chan, reflect.Func, reflect.Map, reflect.Slice, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}
