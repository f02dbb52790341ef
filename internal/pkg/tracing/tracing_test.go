package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_NoEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{ServiceName: "storefront"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewProvider_RecordsWithResource(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := NewProvider(Config{ServiceName: "storefront", ServiceVersion: "test"},
		sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "fetch products")
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "fetch products", spans[0].Name())
	assert.Contains(t, spans[0].Resource().Attributes(), attribute.String("service.name", "storefront"))
}

func TestNewProvider_ClampsRatio(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := NewProvider(Config{SampleRatio: 5}, sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.End()

	assert.Len(t, rec.Ended(), 1)
}
