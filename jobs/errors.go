package jobs

import "errors"

var (
	ErrClosed   = errors.New("registry closed")
	ErrEmptyKey = errors.New("job key is empty")
	ErrNilRun   = errors.New("job function is nil")
)
