// Package logger provides structured logging for the storefront.
//
// Features:
// - Context-aware logging: request and session ids are lifted from context
// - OpenTelemetry trace/span ids taken from the active span
// - JSON and text output formats
// - Output to stdout, stderr or a file (the terminal UI owns stdout)
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// Context keys for correlation data
type contextKey string

const (
	// RequestIDKey is the context key for the outgoing request ID
	RequestIDKey contextKey = "request_id"
	// SessionIDKey is the context key for the UI session ID
	SessionIDKey contextKey = "session_id"
)

// Config holds logger configuration
type Config struct {
	Level     string // debug, info, warn, error
	Format    string // json, text
	Output    io.Writer
	AddSource bool
}

// DefaultConfig returns default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:     "info",
		Format:    "json",
		Output:    os.Stderr,
		AddSource: false,
	}
}

// ParseLevel maps a level name onto slog.Level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a new slog.Logger with the given configuration
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	return slog.New(&ContextHandler{handler: handler})
}

// OpenOutput resolves an output name to a writer.
// "stdout", "stderr" and "" are standard streams; anything else is a file path
// opened for appending. The returned close function is a no-op for streams.
func OpenOutput(name string) (io.Writer, func() error, error) {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr, func() error { return nil }, nil
	case "stdout":
		return os.Stdout, func() error { return nil }, nil
	case "discard", "none":
		return io.Discard, func() error { return nil }, nil
	}

	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %q: %w", name, err)
	}
	return f, f.Close, nil
}

// ContextHandler wraps a slog.Handler to extract correlation data from context
type ContextHandler struct {
	handler slog.Handler
}

// Enabled returns whether the handler is enabled for the given level
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle adds correlation data from context to the log record
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if requestID := GetRequestID(ctx); requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}
	if sessionID := GetSessionID(ctx); sessionID != "" {
		r.AddAttrs(slog.String("session_id", sessionID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new handler with the given attributes
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup returns a new handler with the given group
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}

// Context helpers

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithSessionID adds the UI session ID to context
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

// GetSessionID extracts session ID from context
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}

// Setup initializes the global logger
func Setup(cfg *Config) *slog.Logger {
	logger := New(cfg)
	slog.SetDefault(logger)
	return logger
}
