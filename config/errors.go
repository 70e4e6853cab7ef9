package config

import "errors"

var (
	ErrInvalid           = errors.New("invalid config")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)
