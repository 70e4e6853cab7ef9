package machine

import "errors"

var (
	ErrClosed        = errors.New("machine closed")
	ErrNilReducer    = errors.New("reducer is nil")
	ErrNilRollback   = errors.New("rollback update is nil")
	ErrNoIdentity    = errors.New("action has no identity")
	ErrEmptyIdentity = errors.New("action identity is empty")
	ErrIdentityType  = errors.New("identity function does not match action type")
)
