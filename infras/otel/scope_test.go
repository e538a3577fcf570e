package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"todolist/infras/otel"
)

func newRecordedScope(t *testing.T) (otel.Scope, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "todo.test")

	return otel.NewScope(span), recorder
}

func TestScope_Attributes(t *testing.T) {
	scope, recorder := newRecordedScope(t)

	scope.SetAttributes(map[string]any{
		"todo.completed": true,
		"todo.title":     "Buy milk",
		"todo.count":     3,
		"todo.id":        int64(42),
		"todo.tags":      []string{"home"},
		"todo.other":     1.5,
	})
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.True(t, attrs["todo.completed"].AsBool())
	assert.Equal(t, "Buy milk", attrs["todo.title"].AsString())
	assert.Equal(t, int64(3), attrs["todo.count"].AsInt64())
	assert.Equal(t, int64(42), attrs["todo.id"].AsInt64())
	assert.Equal(t, []string{"home"}, attrs["todo.tags"].AsStringSlice())
	assert.Equal(t, "1.5", attrs["todo.other"].AsString())
}

func TestScope_TraceError(t *testing.T) {
	scope, recorder := newRecordedScope(t)

	scope.TraceIfError(nil)
	scope.TraceError(errors.New("storage down"))
	scope.AddEvent("after failure")
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "storage down", spans[0].Status().Description)

	names := []string{}
	for _, event := range spans[0].Events() {
		names = append(names, event.Name)
	}

	assert.Contains(t, names, "exception")
	assert.Contains(t, names, "after failure")
}

func TestScope_TraceIfErrorNil(t *testing.T) {
	scope, recorder := newRecordedScope(t)

	scope.TraceIfError(nil)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}
