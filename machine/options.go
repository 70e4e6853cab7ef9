package machine

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/tailored-agentic-units/statekit/observability"
)

type options struct {
	observer observability.Observer
	context  context.Context
	identity any
	tracer   trace.TracerProvider
}

// Option configures a Machine after config-driven initialization.
type Option func(*options)

// WithObserver overrides the observer named in the config.
func WithObserver(o observability.Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithContext sets the parent of every job context. Cancelling ctx cancels
// all running jobs without closing the machine.
func WithContext(ctx context.Context) Option {
	return func(opts *options) { opts.context = ctx }
}

// WithIdentity sets the function that maps an action to its registry key.
// It takes precedence over the Identifier interface. New fails with
// ErrIdentityType when A does not match the machine's action type.
func WithIdentity[A any](identity func(A) string) Option {
	return func(opts *options) { opts.identity = identity }
}

// WithTracerProvider records job spans on tp instead of the global provider
// installed by tracing.Init.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(opts *options) { opts.tracer = tp }
}
