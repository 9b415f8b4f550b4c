package splaytree

import (
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

	tree.Insert(3, "c")
	tree.Insert(4, "d")

	if tree.Len() != 4 {
		t.Errorf("Got %v expected %v", tree.Len(), 4)
	}

	if got, found := tree.Select(3); got != "c" || !found {
		t.Errorf("Got (%v, %v) expected (c, true)", got, found)
	}

	if _, found := tree.Select(99); found {
		t.Error("absent key should not be found")
	}
}

// TestSelectSplaysFoundKeyToRoot is the access pattern that gives splay
// trees their name: selecting a key, whatever its current depth, must
// leave it at the root.
func TestSelectSplaysFoundKeyToRoot(t *testing.T) {
	t.Parallel()

	tree := intTree[struct{}](t)
	for _, k := range []int{50, 30, 70, 10, 40, 60, 80, 20} {
		tree.Insert(k, struct{}{})
	}

	tree.Select(20)

	if tree.Root() == nil || tree.Root().Key() != 20 {
		t.Fatalf("Got root key %v, expected 20 after Select(20)", rootKey(tree))
	}

	tree.Select(80)

	if tree.Root().Key() != 80 {
		t.Fatalf("Got root key %v, expected 80 after Select(80)", rootKey(tree))
	}
}

func rootKey(t *Tree[int, struct{}]) any {
	if t.Root() == nil {
		return nil
	}

	return t.Root().Key()
}

func TestInsertSlotPointer(t *testing.T) {
	t.Parallel()

	tree := intTree[int](t)

	slot, inserted := tree.Insert(1, 10)
	if !inserted || *slot != 10 {
		t.Fatalf("Got (%v, %v) expected (10, true)", *slot, inserted)
	}

	if tree.Root().Key() != 1 {
		t.Error("newly inserted key should be splayed to the root")
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

// TestOrderSurvivesManySplays inserts and repeatedly accesses a large key
// set in random order, checking that ascending iteration via Foreach is
// unaffected by however many splays have reshaped the tree's structure.
func TestOrderSurvivesManySplays(t *testing.T) {
	t.Parallel()

	tree := intTree[struct{}](t)

	const n = 500

	want := make([]int, n)
	for i := range n {
		want[i] = i
		tree.Insert((i*48271)%104729, struct{}{})
	}

	for i := range n {
		tree.Select((i * 48271) % 104729)
	}

	got := tree.Keys()

	wantSorted := make([]int, n)
	for i := range n {
		wantSorted[i] = (i * 48271) % 104729
	}

	slices.Sort(wantSorted)

	if !slices.Equal(got, wantSorted) {
		t.Error("ascending key order should survive repeated splaying intact")
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	tree := intTree[int](t)
	if tree.String() != "SplayTree[]" {
		t.Errorf("Got %q expected %q", tree.String(), "SplayTree[]")
	}

	for i := 1; i <= 8; i++ {
		tree.Insert(i, i)
	}

	if !strings.HasPrefix(tree.String(), "SplayTree") {
		t.Error("String should start with container name")
	}
}
