package vector

import (
	"slices"
	"strings"
	"testing"

	"github.com/kvgrove/grove/cmp"
	"github.com/kvgrove/grove/container"
)

func TestAppendGrowsAndPreservesOrder(t *testing.T) {
	t.Parallel()

	v := New[int](Config[int]{})

	for i := 1; i <= 20; i++ {
		v.Append(i)
	}

	if v.Len() != 20 {
		t.Errorf("Got %v expected %v", v.Len(), 20)
	}

	want := make([]int, 20)
	for i := range want {
		want[i] = i + 1
	}

	if got := v.Values(); !slices.Equal(got, want) {
		t.Errorf("Got %v expected %v", got, want)
	}
}

// TestGrowthPolicy checks the doubling-then-1.5x capacity schedule: cap
// starts at 4, doubles while at most 12, then grows by 1.5x.
func TestGrowthPolicy(t *testing.T) {
	t.Parallel()

	v := New[int](Config[int]{})

	if v.Cap() != 4 {
		t.Fatalf("Got initial Cap() %v expected %v", v.Cap(), 4)
	}

	for i := range 5 {
		v.Append(i)
	}

	if v.Cap() != 8 {
		t.Errorf("Got Cap() %v expected %v after 5 appends", v.Cap(), 8)
	}

	for i := range 4 {
		v.Append(i)
	}

	if v.Cap() != 16 {
		t.Errorf("Got Cap() %v expected %v after 9 appends", v.Cap(), 16)
	}
}

func TestSelectOutOfRange(t *testing.T) {
	t.Parallel()

	v := New[int](Config[int]{})
	v.Append(1)

	if _, ok := v.Select(-1); ok {
		t.Error("negative index should report false")
	}

	if _, ok := v.Select(1); ok {
		t.Error("index == Len() should report false")
	}

	if got, ok := v.Select(0); !ok || got != 1 {
		t.Errorf("Got (%v, %v) expected (1, true)", got, ok)
	}
}

func TestInsertSplicesAndShifts(t *testing.T) {
	t.Parallel()

	v := New[int](Config[int]{})
	v.Append(1)
	v.Append(2)
	v.Append(5)

	if !v.Insert(2, 3, 4) {
		t.Fatal("Insert should succeed within bounds")
	}

	if got, want := v.Values(), []int{1, 2, 3, 4, 5}; !slices.Equal(got, want) {
		t.Errorf("Got %v expected %v", got, want)
	}

	if v.Insert(-1, 9) {
		t.Error("negative index should fail")
	}

	if v.Insert(v.Len()+1, 9) {
		t.Error("out-of-range index should fail")
	}

	if !v.Insert(v.Len()) {
		t.Error("empty Insert at a valid boundary index should succeed as a no-op")
	}
}

// TestUpdateNeverChangesLen is this module's Open Question resolution:
// Update only overwrites values already in position and never extends
// the Vector, even when it writes all the way to the last index.
func TestUpdateNeverChangesLen(t *testing.T) {
	t.Parallel()

	v := New[int](Config[int]{})
	for i := range 5 {
		v.Append(i)
	}

	if !v.Update(2, 20, 30) {
		t.Fatal("Update within bounds should succeed")
	}

	if v.Len() != 5 {
		t.Errorf("Update should never change Len(), got %v expected %v", v.Len(), 5)
	}

	if got, want := v.Values(), []int{0, 1, 20, 30, 4}; !slices.Equal(got, want) {
		t.Errorf("Got %v expected %v", got, want)
	}

	if v.Update(4, 1, 2) {
		t.Error("Update exceeding bounds should fail and not extend the Vector")
	}
}

func TestUnlinkTransfersOwnershipWithoutDestructor(t *testing.T) {
	t.Parallel()

	var destroyed []int

	v := New[int](Config[int]{Destroy: func(e int) { destroyed = append(destroyed, e) }})
	v.Append(1)
	v.Append(2)
	v.Append(3)

	value, ok := v.Unlink(1)
	if !ok || value != 2 {
		t.Fatalf("Got (%v, %v) expected (2, true)", value, ok)
	}

	if len(destroyed) != 0 {
		t.Errorf("Unlink must not invoke destructor, got %v", destroyed)
	}

	if got, want := v.Values(), []int{1, 3}; !slices.Equal(got, want) {
		t.Errorf("Got %v expected %v", got, want)
	}
}

func TestDeleteRunsDestructor(t *testing.T) {
	t.Parallel()

	var destroyed []int

	v := New[int](Config[int]{Destroy: func(e int) { destroyed = append(destroyed, e) }})
	v.Append(1)
	v.Append(2)

	if !v.Delete(0) {
		t.Fatal("Delete should succeed within bounds")
	}

	if !slices.Equal(destroyed, []int{1}) {
		t.Errorf("Got %v expected [1]", destroyed)
	}

	if v.Delete(5) {
		t.Error("out-of-range Delete should report false")
	}
}

func TestClearRunsDestructors(t *testing.T) {
	t.Parallel()

	var destroyed []int

	v := New[int](Config[int]{Destroy: func(e int) { destroyed = append(destroyed, e) }})
	for i := 1; i <= 5; i++ {
		v.Append(i)
	}

	v.Clear()

	if v.Len() != 0 {
		t.Errorf("Got %v expected %v", v.Len(), 0)
	}

	if !slices.Equal(destroyed, []int{1, 2, 3, 4, 5}) {
		t.Errorf("Got %v expected [1 2 3 4 5]", destroyed)
	}
}

func TestSortMarksSorted(t *testing.T) {
	t.Parallel()

	v := New[int](Config[int]{})
	v.Append(3)
	v.Append(1)
	v.Append(2)

	if v.Sorted() {
		t.Error("freshly appended Vector should not report sorted")
	}

	v.Sort(cmp.Compare[int])

	if !v.Sorted() {
		t.Error("Vector should report sorted after Sort")
	}

	if got, want := v.Values(), []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("Got %v expected %v", got, want)
	}

	v.Append(0)

	if v.Sorted() {
		t.Error("Append should clear the sorted flag")
	}
}

func TestIteratorForwardAndBackward(t *testing.T) {
	t.Parallel()

	v := New[int](Config[int]{})
	for i := 1; i <= 5; i++ {
		v.Append(i)
	}

	it := v.Iterator()

	var forward []int
	for it.Next() {
		forward = append(forward, it.Value())
	}

	if got, want := forward, []int{1, 2, 3, 4, 5}; !slices.Equal(got, want) {
		t.Errorf("Got %v expected %v", got, want)
	}

	var backward []int
	for it.Prev() {
		backward = append(backward, it.Value())
	}

	if got, want := backward, []int{5, 4, 3, 2, 1}; !slices.Equal(got, want) {
		t.Errorf("Got %v expected %v", got, want)
	}

	if !it.First() || it.Value() != 1 || it.Index() != 0 {
		t.Errorf("First() should land on index 0 value 1, got index %v value %v", it.Index(), it.Value())
	}

	if !it.Last() || it.Value() != 5 || it.Index() != 4 {
		t.Errorf("Last() should land on index 4 value 5, got index %v value %v", it.Index(), it.Value())
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	v := New[int](Config[int]{})
	if !strings.HasPrefix(v.String(), "Vector") {
		t.Error("String should start with container name")
	}
}

func TestVectorSatisfiesContainer(t *testing.T) {
	t.Parallel()

	v := New[int](Config[int]{})
	if !v.Empty() || v.Size() != 0 {
		t.Errorf("fresh Vector: Empty() = %v, Size() = %d, want true, 0", v.Empty(), v.Size())
	}

	for _, x := range []int{5, 1, 4, 2, 3} {
		v.Append(x)
	}

	if v.Empty() || v.Size() != 5 {
		t.Errorf("Empty() = %v, Size() = %d, want false, 5", v.Empty(), v.Size())
	}

	sorted := container.GetSortedValues[int](v)
	if got, want := sorted, []int{1, 2, 3, 4, 5}; !slices.Equal(got, want) {
		t.Errorf("GetSortedValues(v) = %v, want %v", got, want)
	}

	if got, want := v.Values(), []int{5, 1, 4, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("GetSortedValues should not mutate the Vector, got %v want %v", got, want)
	}
}
