package paging

import (
	"maps"
	"slices"
)

// Container accumulates retrieved pages keyed by page index.
type Container[T any] struct {
	Available int         `json:"available"`
	Pages     map[int][]T `json:"pages"`
	IsLoading bool        `json:"is_loading"`
}

// NewContainer returns an empty, idle Container.
func NewContainer[T any]() Container[T] {
	return Container[T]{Pages: make(map[int][]T)}
}

// Loading marks a page load as in flight.
func (c Container[T]) Loading() Container[T] {
	c.IsLoading = true
	return c
}

// Merge stores p.Items at p.Request.PageNumber(), replacing any page already
// held at that index, and takes Available from p. The returned container is
// no longer loading.
func (c Container[T]) Merge(p Page[T]) Container[T] {
	pages := make(map[int][]T, len(c.Pages)+1)
	maps.Copy(pages, c.Pages)
	pages[p.Request.PageNumber()] = slices.Clone(p.Items)

	return Container[T]{
		Available: p.Available,
		Pages:     pages,
		IsLoading: false,
	}
}

// Fail ends a page load without touching loaded pages or Available.
func (c Container[T]) Fail() Container[T] {
	c.IsLoading = false
	return c
}

// Count returns the number of items across all loaded pages.
func (c Container[T]) Count() int {
	n := 0
	for _, items := range c.Pages {
		n += len(items)
	}
	return n
}

// HasLoadedEverything reports whether the loaded items cover everything the
// source reported as available. An empty source is never "everything".
func (c Container[T]) HasLoadedEverything() bool {
	return c.Available > 0 && c.Count() == c.Available
}

// Items flattens the loaded pages in ascending page order.
func (c Container[T]) Items() []T {
	items := make([]T, 0, c.Count())
	for _, index := range slices.Sorted(maps.Keys(c.Pages)) {
		items = append(items, c.Pages[index]...)
	}
	return items
}

// NextRequest returns the request for the page after the highest loaded
// index, or the first page when nothing has been loaded.
func (c Container[T]) NextRequest(limit int) Request {
	if len(c.Pages) == 0 {
		return Request{Offset: 0, Limit: limit}
	}
	last := slices.Max(slices.Collect(maps.Keys(c.Pages)))
	return Request{Offset: (last + 1) * limit, Limit: limit}
}
