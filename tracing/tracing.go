package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/tailored-agentic-units/statekit"

var (
	mu       sync.Mutex
	provider *sdktrace.TracerProvider
	output   *os.File
)

// Init installs a tracer provider backed by the stdout exporter. Spans are
// written to os.Stdout when path is empty, otherwise to the named file,
// which is created only if the provider is installed and closed by
// Shutdown. It returns ErrAlreadyInitialized while a provider is installed.
func Init(serviceName, serviceVersion, path string) error {
	mu.Lock()
	defer mu.Unlock()

	if provider != nil {
		return ErrAlreadyInitialized
	}

	var w io.Writer = os.Stdout
	var f *os.File
	if path != "" {
		var err error
		if f, err = os.Create(path); err != nil {
			return err
		}
		w = f
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err == nil {
		err = install(serviceName, serviceVersion, exporter)
	}
	if err != nil {
		if f != nil {
			f.Close()
		}
		return err
	}

	output = f
	return nil
}

// InitWithExporter installs a tracer provider that sends spans to exporter
// synchronously. It returns ErrAlreadyInitialized while a provider is
// installed; call Shutdown first to replace it.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return ErrNilExporter
	}

	mu.Lock()
	defer mu.Unlock()

	if provider != nil {
		return ErrAlreadyInitialized
	}
	return install(serviceName, serviceVersion, exporter)
}

// NewProvider builds a provider exporting synchronously to exporter without
// installing it globally. Machines accept one through machine.WithTracerProvider.
func NewProvider(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (*sdktrace.TracerProvider, error) {
	if exporter == nil {
		return nil, ErrNilExporter
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	), nil
}

// install requires mu.
func install(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	tp, err := NewProvider(serviceName, serviceVersion, exporter)
	if err != nil {
		return err
	}
	provider = tp
	otel.SetTracerProvider(tp)
	return nil
}

// Shutdown flushes and stops the installed provider, closes the output
// file opened by Init, and restores the no-op provider so that Init can
// run again.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if provider == nil {
		return nil
	}

	err := provider.Shutdown(ctx)
	if output != nil {
		if cerr := output.Close(); err == nil {
			err = cerr
		}
	}

	provider, output = nil, nil
	otel.SetTracerProvider(noop.NewTracerProvider())
	return err
}

// Span wraps an OpenTelemetry span.
type Span struct {
	span trace.Span
}

// WithAttributes attaches string attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, v))
	}
	s.span.SetAttributes(kv...)
	return s
}

// AddEvent records a named point in time on the span.
func (s *Span) AddEvent(name string) {
	if s == nil {
		return
	}
	s.span.AddEvent(name)
}

// SetStatus records err on the span, or an OK status when err is nil.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
		return
	}
	s.span.SetStatus(codes.Ok, "")
}

// StartSpan starts a child span of whatever span ctx carries using the
// global provider. kind is one of "SERVER", "CLIENT", "PRODUCER",
// "CONSUMER"; anything else is internal.
func StartSpan(ctx context.Context, name, kind string) (context.Context, *Span) {
	return StartSpanWith(ctx, nil, name, kind)
}

// StartSpanWith is StartSpan on tp. A nil tp uses the global provider.
func StartSpanWith(ctx context.Context, tp trace.TracerProvider, name, kind string) (context.Context, *Span) {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	var spanKind trace.SpanKind
	switch kind {
	case "SERVER":
		spanKind = trace.SpanKindServer
	case "CLIENT":
		spanKind = trace.SpanKindClient
	case "PRODUCER":
		spanKind = trace.SpanKindProducer
	case "CONSUMER":
		spanKind = trace.SpanKindConsumer
	default:
		spanKind = trace.SpanKindInternal
	}

	ctx, span := tp.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(spanKind))
	return ctx, &Span{span: span}
}

// EndSpan records the status derived from err and ends the span.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	sp.SetStatus(err)
	sp.span.End()
}
