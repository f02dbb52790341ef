package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, os.Stderr, cfg.Output)
	assert.False(t, cfg.AddSource)
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: "json", Output: &buf})
	require.NotNil(t, logger)

	logger.Info("catalog loaded", "items", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalog loaded", entry["msg"])
	assert.Equal(t, float64(3), entry["items"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "debug", Format: "TEXT", Output: &buf})

	logger.Debug("debug message")

	assert.Contains(t, buf.String(), "debug message")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "warn", Format: "json", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestContextHandler_AddsIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: "json", Output: &buf})

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithSessionID(ctx, "sess-1")
	logger.InfoContext(ctx, "request done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "sess-1", entry["session_id"])
	assert.NotContains(t, entry, "trace_id")
}

func TestContextHandler_AddsSpanContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: "json", Output: &buf})

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	logger.InfoContext(ctx, "inside span")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
}

func TestContextHelpers_Empty(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetSessionID(ctx))
}

func TestContextHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: "json", Output: &buf})

	logger.With("component", "resource").WithGroup("fetch").Info("done", "page", 2)

	out := buf.String()
	assert.Contains(t, out, `"component":"resource"`)
	assert.Contains(t, out, `"fetch":{"page":2}`)
}

func TestOpenOutput(t *testing.T) {
	w, closeFn, err := OpenOutput("stderr")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "storefront.log")
	w, closeFn, err = OpenOutput(path)
	require.NoError(t, err)

	logger := New(&Config{Level: "info", Format: "text", Output: w})
	logger.Info("to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "to file"))
}

func TestOpenOutput_BadPath(t *testing.T) {
	_, _, err := OpenOutput(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	logger := Setup(&Config{Level: "info", Format: "json", Output: &buf})

	assert.Same(t, logger, slog.Default())
	slog.Info("via default")
	assert.Contains(t, buf.String(), "via default")
}

func TestNew_NilConfig(t *testing.T) {
	assert.NotNil(t, New(nil))
}
