// Package listops содержит операции над упорядоченными списками
// (видео внутри пакета, сами пакеты). Позиции в публичных операциях
// 1-базные, индексы — 0-базные.
package listops

// InsertAt inserts item at a 1-based position. Positions outside
// [1, len+1] are clamped, so an oversized position appends.
func InsertAt[T any](list []T, item T, pos int) []T {
	if pos < 1 {
		pos = 1
	}
	if pos > len(list)+1 {
		pos = len(list) + 1
	}
	i := pos - 1
	out := make([]T, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, item)
	out = append(out, list[i:]...)
	return out
}

// MoveUp swaps list[i] with its predecessor. Returns false at the top
// boundary or on a bad index, leaving the list unchanged.
func MoveUp[T any](list []T, i int) bool {
	if i <= 0 || i >= len(list) {
		return false
	}
	list[i-1], list[i] = list[i], list[i-1]
	return true
}

// MoveDown swaps list[i] with its successor. Returns false at the bottom
// boundary or on a bad index.
func MoveDown[T any](list []T, i int) bool {
	if i < 0 || i >= len(list)-1 {
		return false
	}
	list[i], list[i+1] = list[i+1], list[i]
	return true
}

// RemoveAt removes the element at index i and returns it so the caller
// can clean up anything attached to it (e.g. a media file).
func RemoveAt[T any](list []T, i int) ([]T, T, bool) {
	var zero T
	if i < 0 || i >= len(list) {
		return list, zero, false
	}
	removed := list[i]
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out, removed, true
}
