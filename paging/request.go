package paging

import "fmt"

// Request addresses one page of a paginated source.
type Request struct {
	Offset int `json:"offset" yaml:"offset"`
	Limit  int `json:"limit" yaml:"limit"`
}

// Validate reports whether r can be mapped to a page index.
func (r Request) Validate() error {
	if r.Limit <= 0 {
		return fmt.Errorf("%w: limit %d", ErrInvalidRequest, r.Limit)
	}
	if r.Offset < 0 {
		return fmt.Errorf("%w: offset %d", ErrInvalidRequest, r.Offset)
	}
	return nil
}

// PageNumber returns Offset / Limit. It panics if r is invalid.
func (r Request) PageNumber() int {
	if err := r.Validate(); err != nil {
		panic("paging: " + err.Error())
	}
	return r.Offset / r.Limit
}

// Next returns the request for the page that follows r.
func (r Request) Next() Request {
	return Request{Offset: r.Offset + r.Limit, Limit: r.Limit}
}

// Page is one successful page load.
type Page[T any] struct {
	Request   Request
	Items     []T
	Available int
}
