// Package paginate режет списки (посты, пакеты, медиафайлы) на страницы
// одинаково для всех экранов выбора.
package paginate

// Page is one window over an ordered collection.
type Page[T any] struct {
	Items   []T
	Number  int // номер страницы после кламп-а
	Total   int
	HasPrev bool
	HasNext bool
}

// Slice clamps requested into the valid page range and returns the window.
// ok=false means the collection is empty and no page exists at all.
func Slice[T any](items []T, size, requested int) (Page[T], bool) {
	if len(items) == 0 || size <= 0 {
		return Page[T]{}, false
	}

	maxPage := (len(items) - 1) / size
	page := requested
	if page < 0 {
		page = 0
	}
	if page > maxPage {
		page = maxPage
	}

	start := page * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:   items[start:end],
		Number:  page,
		Total:   len(items),
		HasPrev: page > 0,
		HasNext: end < len(items),
	}, true
}

// Pages returns the page count for n items.
func Pages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
