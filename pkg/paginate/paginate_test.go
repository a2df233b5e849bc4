package paginate

import (
	"reflect"
	"testing"
)

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page, ok := Slice(items, 3, 0)
	if !ok {
		t.Fatal("page 0 must exist")
	}
	if !reflect.DeepEqual(page.Items, []int{1, 2, 3}) {
		t.Fatalf("page 0 items: %v", page.Items)
	}
	if page.HasPrev || !page.HasNext {
		t.Fatalf("page 0 nav: prev=%v next=%v", page.HasPrev, page.HasNext)
	}

	page, _ = Slice(items, 3, 2)
	if !reflect.DeepEqual(page.Items, []int{7}) {
		t.Fatalf("last page items: %v", page.Items)
	}
	if !page.HasPrev || page.HasNext {
		t.Fatalf("last page nav: prev=%v next=%v", page.HasPrev, page.HasNext)
	}
}

func TestSliceClamping(t *testing.T) {
	items := []int{1, 2, 3}

	page, ok := Slice(items, 2, 99)
	if !ok || page.Number != 1 {
		t.Fatalf("oversized request: number=%d ok=%v", page.Number, ok)
	}
	if !reflect.DeepEqual(page.Items, []int{3}) {
		t.Fatalf("clamped page items: %v", page.Items)
	}

	page, ok = Slice(items, 2, -4)
	if !ok || page.Number != 0 {
		t.Fatalf("negative request: number=%d ok=%v", page.Number, ok)
	}
}

func TestSliceEmpty(t *testing.T) {
	if _, ok := Slice([]int{}, 5, 0); ok {
		t.Fatal("empty collection has no pages")
	}
	if _, ok := Slice([]int{1}, 0, 0); ok {
		t.Fatal("zero page size has no pages")
	}
}

func TestPages(t *testing.T) {
	cases := []struct{ n, size, want int }{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 5, 3},
	}
	for _, c := range cases {
		if got := Pages(c.n, c.size); got != c.want {
			t.Fatalf("Pages(%d, %d) = %d, want %d", c.n, c.size, got, c.want)
		}
	}
}
