// Package paging accumulates incrementally loaded pages of items.
//
// A Container tracks which pages have been retrieved, keyed by page index,
// together with the total number of items the source reports as available.
// It is a value type: every mutating method returns a new Container and
// leaves the receiver untouched, so containers can live inside immutable
// application state.
//
//	c := paging.NewContainer[Movie]().Loading()
//	c = c.Merge(paging.Page[Movie]{
//	    Request:   paging.Request{Offset: 0, Limit: 20},
//	    Items:     first,
//	    Available: 53,
//	})
//	next := c.NextRequest(20) // Offset 20, Limit 20
//
// Pages are additive. Merge inserts or overwrites the page at
// Offset / Limit and never reorders existing pages; Items flattens them in
// ascending page order.
package paging
