package mockapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Haleralex/storefront/internal/pkg/logger"
	"github.com/Haleralex/storefront/internal/pkg/metrics"
)

const (
	// RequestIDHeader - имя заголовка для Request ID
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey - ключ для хранения Request ID в контексте
	RequestIDContextKey = "request_id"
)

// ============================================
// Request ID
// ============================================

// RequestID middleware добавляет уникальный ID к каждому запросу.
//
// Если клиент передаёт X-Request-ID - используем его,
// иначе генерируем новый UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDContextKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}

// GetRequestID извлекает Request ID из контекста Gin.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDContextKey)
}

// ============================================
// Recovery
// ============================================

// Recovery перехватывает панику в handler и отвечает 500 в формате ошибок API.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.LogAttrs(c.Request.Context(), slog.LevelError, "Panic recovered",
					slog.String("error", fmt.Sprintf("%v", err)),
					slog.String("path", c.Request.URL.Path),
					slog.String("method", c.Request.Method),
					slog.String("stack", string(debug.Stack())),
				)
				InternalErrorResponse(c)
			}
		}()

		c.Next()
	}
}

// ============================================
// Logging
// ============================================

// Logging пишет одну строку на запрос. Paths in skip are not logged.
func Logging(log *slog.Logger, skip ...string) gin.HandlerFunc {
	skipMap := make(map[string]bool, len(skip))
	for _, path := range skip {
		skipMap[path] = true
	}

	return func(c *gin.Context) {
		if skipMap[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("query", c.Request.URL.RawQuery),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.Int("response_size", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		// Определяем уровень логирования по статусу
		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		} else if c.Writer.Status() >= 400 {
			level = slog.LevelWarn
		}

		log.LogAttrs(c.Request.Context(), level, "HTTP Request", attrs...)
	}
}

// ============================================
// Metrics
// ============================================

// Metrics records every request in the mockapi prometheus collectors.
// The route template is used as the path label to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordMockRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// ============================================
// Latency & Faults
// ============================================

// Latency delays every response by the backend's current latency.
func Latency(b *Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := b.latency()
		if d <= 0 {
			c.Next()
			return
		}

		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.AbortWithStatus(http.StatusServiceUnavailable)
		}
	}
}

// Faults answers with an injected failure when one is set for the matched route.
func Faults(b *Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, ok := b.fault(c.Request.Method, c.FullPath())
		if !ok {
			c.Next()
			return
		}

		switch {
		case f.RawBody != "":
			c.Data(f.Status, "application/json", []byte(f.RawBody))
			c.Abort()
		case f.Message == "":
			c.AbortWithStatus(f.Status)
		default:
			Error(c, f.Status, f.Message, f.Details...)
		}
	}
}
