package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp, err := NewProvider("statekit", "test", exporter)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, parent := StartSpanWith(context.Background(), tp, "machine.job LoadMovies", "INTERNAL")
	parent.WithAttributes(map[string]string{"job.identity": "LoadMovies"})
	parent.AddEvent("update")

	_, child := StartSpanWith(ctx, tp, "operation", "CLIENT")
	EndSpan(child, errors.New("catalog unavailable"))
	EndSpan(parent, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, "operation", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())

	assert.Equal(t, "machine.job LoadMovies", spans[1].Name)
	assert.Equal(t, codes.Ok, spans[1].Status.Code)
	require.Len(t, spans[1].Events, 1)
	assert.Equal(t, "update", spans[1].Events[0].Name)
}

func TestInitWithExporter_ShutdownAllowsReinstall(t *testing.T) {
	first := tracetest.NewInMemoryExporter()
	second := tracetest.NewInMemoryExporter()

	require.NoError(t, InitWithExporter("statekit", "test", first))
	assert.ErrorIs(t, InitWithExporter("statekit", "test", second), ErrAlreadyInitialized)

	_, span := StartSpan(context.Background(), "first", "INTERNAL")
	EndSpan(span, nil)
	require.NoError(t, Shutdown(context.Background()))

	require.NoError(t, InitWithExporter("statekit", "test", second))
	_, span = StartSpan(context.Background(), "second", "INTERNAL")
	EndSpan(span, nil)
	require.NoError(t, Shutdown(context.Background()))

	require.Len(t, first.GetSpans(), 1)
	assert.Equal(t, "first", first.GetSpans()[0].Name)
	require.Len(t, second.GetSpans(), 1)
	assert.Equal(t, "second", second.GetSpans()[0].Name)

	_, span = StartSpan(context.Background(), "after shutdown", "INTERNAL")
	EndSpan(span, nil)
	assert.Len(t, second.GetSpans(), 1)
}

func TestInit_OutputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spans.json")
	unused := filepath.Join(dir, "unused.json")

	require.NoError(t, Init("statekit", "test", path))
	assert.ErrorIs(t, Init("statekit", "test", unused), ErrAlreadyInitialized)

	_, span := StartSpan(context.Background(), "machine.job LoadMovies", "INTERNAL")
	EndSpan(span, nil)
	require.NoError(t, Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "machine.job LoadMovies")

	_, err = os.Stat(unused)
	assert.True(t, os.IsNotExist(err))

	assert.Nil(t, output)
	assert.NoError(t, Shutdown(context.Background()))
}

func TestNilExporter(t *testing.T) {
	assert.ErrorIs(t, InitWithExporter("statekit", "test", nil), ErrNilExporter)
	_, err := NewProvider("statekit", "test", nil)
	assert.ErrorIs(t, err, ErrNilExporter)
}

func TestNilSpanIsSafe(t *testing.T) {
	var span *Span
	assert.NotPanics(t, func() {
		span.WithAttributes(map[string]string{"k": "v"})
		span.AddEvent("x")
		span.SetStatus(nil)
		EndSpan(span, nil)
	})
}
