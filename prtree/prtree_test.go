package prtree

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/kvgrove/grove/cmp"
	"github.com/kvgrove/grove/ds"
)

func intTree[V any](t *testing.T) *Tree[int, V] {
	t.Helper()

	tree, err := New[int, V](Config[int, V]{Comparator: cmp.Compare[int]})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return tree
}

func TestNewNilComparator(t *testing.T) {
	t.Parallel()

	_, err := New[int, string](Config[int, string]{})
	if err != ds.ErrNilComparator {
		t.Errorf("Got %v expected %v", err, ds.ErrNilComparator)
	}
}

func TestInsertAndSelect(t *testing.T) {
	t.Parallel()

	tree := intTree[string](t)

	tree.Insert(1, "x")
	tree.Insert(2, "b")

	if _, inserted := tree.Insert(1, "a"); inserted {
		t.Error("duplicate key should not be reinserted")
	}

	for i := 3; i <= 6; i++ {
		tree.Insert(i, string(rune('a'+i)))
	}

	if tree.Len() != 6 {
		t.Errorf("Got %v expected %v", tree.Len(), 6)
	}

	if got, found := tree.Select(1); got != "x" || !found {
		t.Errorf("Got (%v, %v) expected (x, true)", got, found)
	}

	if _, found := tree.Select(99); found {
		t.Error("absent key should not be found")
	}
}

func TestInsertSlotPointer(t *testing.T) {
	t.Parallel()

	tree := intTree[int](t)

	slot, inserted := tree.Insert(1, 10)
	if !inserted || *slot != 10 {
		t.Fatalf("Got (%v, %v) expected (10, true)", *slot, inserted)
	}

	same, inserted := tree.Insert(1, 99)
	if inserted {
		t.Error("duplicate insert should report inserted=false")
	}

	if *same != 10 {
		t.Errorf("slot for duplicate key should reflect existing value, got %v", *same)
	}
}

func TestInsertNilKeyRejected(t *testing.T) {
	t.Parallel()

	tree, err := New[*int, string](Config[*int, string]{Comparator: func(a, b *int) int {
		return cmp.Compare[int](*a, *b)
	}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, inserted := tree.Insert(nil, "x"); inserted {
		t.Error("nil key should be rejected")
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tree := intTree[string](t)
	for k, v := range map[int]string{5: "e", 6: "f", 7: "g", 3: "c", 4: "d", 1: "a", 2: "b"} {
		tree.Insert(k, v)
	}

	if tree.Delete(8) {
		t.Error("deleting an absent key should report false")
	}

	for _, k := range []int{5, 6, 7} {
		if !tree.Delete(k) {
			t.Errorf("Delete(%d) should report true", k)
		}
	}

	if got, want := tree.Keys(), []int{1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("Got %v expected %v", got, want)
	}
}

func TestUnlinkTransfersOwnershipWithoutDestructor(t *testing.T) {
	t.Parallel()

	var destroyed []int

	tree, err := New[int, int](Config[int, int]{
		Comparator: cmp.Compare[int],
		ValDestroy: func(v int) { destroyed = append(destroyed, v) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tree.Insert(1, 100)
	tree.Insert(2, 200)

	k, v, ok := tree.Unlink(1)
	if !ok || k != 1 || v != 100 {
		t.Fatalf("Got (%v, %v, %v) expected (1, 100, true)", k, v, ok)
	}

	if len(destroyed) != 0 {
		t.Errorf("Unlink must not invoke destructors, got %v", destroyed)
	}

	tree.Delete(2)

	if !slices.Equal(destroyed, []int{200}) {
		t.Errorf("Got %v expected [200]", destroyed)
	}
}

func TestClearRunsDestructors(t *testing.T) {
	t.Parallel()

	var destroyed []int

	tree, err := New[int, int](Config[int, int]{
		Comparator: cmp.Compare[int],
		KeyDestroy: func(k int) { destroyed = append(destroyed, k) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 1; i <= 5; i++ {
		tree.Insert(i, i*i)
	}

	tree.Clear()

	if tree.Len() != 0 {
		t.Errorf("Got %v expected %v", tree.Len(), 0)
	}

	slices.Sort(destroyed)

	if !slices.Equal(destroyed, []int{1, 2, 3, 4, 5}) {
		t.Errorf("Got %v expected [1 2 3 4 5]", destroyed)
	}
}

func TestForeachAscendingAndAbort(t *testing.T) {
	t.Parallel()

	tree := intTree[int](t)
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		tree.Insert(k, k*10)
	}

	var seen []int

	complete := tree.Foreach(func(k, v int) bool {
		seen = append(seen, k)

		return v != 40
	})

	if complete {
		t.Error("Foreach should report false when the visitor aborts")
	}

	if got, want := seen, []int{1, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("Got %v expected %v", got, want)
	}
}

func TestKeysAndValuesAscending(t *testing.T) {
	t.Parallel()

	tree := intTree[int](t)
	for _, k := range []int{50, 30, 80, 10, 40, 70, 90} {
		tree.Insert(k, k*2)
	}

	if got, want := tree.Keys(), []int{10, 30, 40, 50, 70, 80, 90}; !slices.Equal(got, want) {
		t.Errorf("Got %v expected %v", got, want)
	}

	if got, want := tree.Values(), []int{20, 60, 80, 100, 140, 160, 180}; !slices.Equal(got, want) {
		t.Errorf("Got %v expected %v", got, want)
	}
}

// TestWeightsStayConsistent walks the tree after a large pseudo-random
// sequence of inserts, checking that every node's cached weight matches
// weight(left)+weight(right) and that the tree's height stays within a
// small constant factor of log2(n).
func TestWeightsStayConsistent(t *testing.T) {
	t.Parallel()

	tree := intTree[struct{}](t)

	const n = 2000

	for i := range n {
		tree.Insert((i*2654435761)%7919, struct{}{})
	}

	var walk func(node *Node[int, struct{}]) int

	walk = func(node *Node[int, struct{}]) int {
		if node == nil {
			return 0
		}

		w := weightOf(node.left) + weightOf(node.right)
		if node.weight != w {
			t.Fatalf("stale weight at key %v: weight=%d, want %d", node.key, node.weight, w)
		}

		lh := walk(node.left)
		rh := walk(node.right)

		if lh > rh {
			return lh + 1
		}

		return rh + 1
	}

	height := walk(tree.root)
	maxHeight := int(6*math.Log2(float64(tree.Len()+1))) + 4

	if height > maxHeight {
		t.Errorf("tree height %d exceeds expected bound %d for %d keys", height, maxHeight, tree.Len())
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	tree := intTree[int](t)
	if tree.String() != "PathReductionTree[]" {
		t.Errorf("Got %q expected %q", tree.String(), "PathReductionTree[]")
	}

	for i := 1; i <= 8; i++ {
		tree.Insert(i, i)
	}

	if !strings.HasPrefix(tree.String(), "PathReductionTree") {
		t.Error("String should start with container name")
	}
}
