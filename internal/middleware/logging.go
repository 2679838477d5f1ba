package middleware

import (
	"bytes"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation id in both directions
const RequestIDHeader = "X-Request-ID"

// Context keys shared between handlers and the request log
const (
	ContextKeyRequestID = "request_id"
	// ContextKeyFallback holds the reason a handler served sample dreams
	ContextKeyFallback = "dream_fallback"
	// ContextKeySchema holds the dreams schema ("new" or "old") a query was answered with
	ContextKeySchema = "dream_schema"
)

// maxLoggedBody bounds how much of an error response is copied into the log
const maxLoggedBody = 2048

// RequestIDMiddleware ensures every request has a request_id available in headers and context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(RequestIDHeader)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}

// errorBodyWriter keeps the first maxLoggedBody bytes of a response so
// 4xx/5xx answers can be attached to the completion log.
type errorBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w errorBodyWriter) Write(b []byte) (int, error) {
	if room := maxLoggedBody - w.body.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		w.body.Write(b[:room])
	}
	return w.ResponseWriter.Write(b)
}

func baseFields(c *gin.Context) []interface{} {
	return []interface{}{
		"request_id", c.GetString(ContextKeyRequestID),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
	}
}

// RequestLoggingMiddleware writes one line per finished request. Responses
// built from sample data carry the fallback reason; store-backed ones the schema.
func RequestLoggingMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		w := errorBodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		fields := append(baseFields(c),
			"route", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		if schema := c.GetString(ContextKeySchema); schema != "" {
			fields = append(fields, "schema", schema)
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Errorw("request failed", append(fields, "response", w.body.String())...)
		case status >= http.StatusBadRequest:
			logger.Warnw("request rejected", append(fields, "response", w.body.String())...)
		case c.GetString(ContextKeyFallback) != "":
			logger.Infow("request served sample dreams", append(fields, "fallback", c.GetString(ContextKeyFallback))...)
		default:
			logger.Infow("request completed", fields...)
		}
	}
}

// RecoveryMiddleware converts panics to 500 responses and logs stack traces with context
func RecoveryMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("panic recovered", append(baseFields(c),
					"panic", r,
					"stack", string(debug.Stack()),
				)...)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":      "Internal server error",
					"request_id": c.GetString(ContextKeyRequestID),
				})
			}
		}()
		c.Next()
	}
}
