package listops

import (
	"reflect"
	"testing"
)

func TestInsertAt(t *testing.T) {
	list := []string{"a", "b", "c"}

	got := InsertAt(list, "x", 2)
	want := []string{"a", "x", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("InsertAt middle: got %v, want %v", got, want)
	}

	// Позиция больше длины — элемент встаёт в конец.
	got = InsertAt(list, "x", 99)
	want = []string{"a", "b", "c", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("InsertAt oversized: got %v, want %v", got, want)
	}

	got = InsertAt(list, "x", -5)
	want = []string{"x", "a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("InsertAt negative: got %v, want %v", got, want)
	}

	got = InsertAt(nil, "x", 1)
	want = []string{"x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("InsertAt empty: got %v, want %v", got, want)
	}
}

func TestMoveUpDown(t *testing.T) {
	list := []int{1, 2, 3}

	if !MoveUp(list, 1) {
		t.Fatal("MoveUp(1) should succeed")
	}
	if !reflect.DeepEqual(list, []int{2, 1, 3}) {
		t.Fatalf("after MoveUp: %v", list)
	}

	if MoveUp(list, 0) {
		t.Fatal("MoveUp at top boundary must be a no-op")
	}
	if MoveDown(list, 2) {
		t.Fatal("MoveDown at bottom boundary must be a no-op")
	}
	if !reflect.DeepEqual(list, []int{2, 1, 3}) {
		t.Fatalf("boundary moves changed the list: %v", list)
	}

	if !MoveDown(list, 0) {
		t.Fatal("MoveDown(0) should succeed")
	}
	if !reflect.DeepEqual(list, []int{1, 2, 3}) {
		t.Fatalf("after MoveDown: %v", list)
	}

	if MoveUp(list, 99) || MoveDown(list, -1) {
		t.Fatal("out-of-range indexes must fail")
	}
}

func TestRemoveAt(t *testing.T) {
	list := []string{"a", "b", "c"}

	rest, removed, ok := RemoveAt(list, 1)
	if !ok || removed != "b" {
		t.Fatalf("RemoveAt(1): removed=%q ok=%v", removed, ok)
	}
	if !reflect.DeepEqual(rest, []string{"a", "c"}) {
		t.Fatalf("RemoveAt rest: %v", rest)
	}

	if _, _, ok := RemoveAt(list, 3); ok {
		t.Fatal("RemoveAt out of range must fail")
	}
	if _, _, ok := RemoveAt([]string{}, 0); ok {
		t.Fatal("RemoveAt on empty list must fail")
	}
}

// Перенос по позиции — это RemoveAt + InsertAt: pop + insert, не swap.
func TestRemoveInsertMove(t *testing.T) {
	list := []string{"a", "b", "c", "d"}
	rest, moved, ok := RemoveAt(list, 3)
	if !ok {
		t.Fatal("RemoveAt(3) should succeed")
	}
	got := InsertAt(rest, moved, 1)
	if !reflect.DeepEqual(got, []string{"d", "a", "b", "c"}) {
		t.Fatalf("after move: %v", got)
	}
}
