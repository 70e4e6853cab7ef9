package paging

import "errors"

var ErrInvalidRequest = errors.New("invalid page request")
