package tracing

import "errors"

var (
	ErrAlreadyInitialized = errors.New("tracer provider already installed")
	ErrNilExporter        = errors.New("span exporter is nil")
)
