package async

import "errors"

// ErrPending is returned by Result.Get while the result is still Loading.
var ErrPending = errors.New("result is still loading")
