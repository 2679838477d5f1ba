package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.dreamcanvas.services/internal/middleware"
)

func requestContextFields(c *gin.Context) []interface{} {
	return []interface{}{
		"request_id", c.GetString(middleware.ContextKeyRequestID),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"route", c.FullPath(),
		"client_ip", c.ClientIP(),
	}
}

func logWithContext(logger *zap.SugaredLogger, c *gin.Context, level string, msg string, fields ...interface{}) {
	if logger == nil {
		return
	}
	base := requestContextFields(c)
	all := append(base, fields...)
	switch level {
	case "debug":
		logger.Debugw(msg, all...)
	case "warn":
		logger.Warnw(msg, all...)
	case "error":
		logger.Errorw(msg, all...)
	default:
		logger.Infow(msg, all...)
	}
}

func (h *GalleryHandler) logError(c *gin.Context, err error, msg string, fields ...interface{}) {
	logWithContext(h.logger, c, "error", msg, append(fields, "error", err)...)
}

func (h *GalleryHandler) logWarn(c *gin.Context, err error, msg string, fields ...interface{}) {
	logWithContext(h.logger, c, "warn", msg, append(fields, "error", err)...)
}

func (h *PortfolioHandler) logError(c *gin.Context, err error, msg string, fields ...interface{}) {
	logWithContext(h.logger, c, "error", msg, append(fields, "error", err)...)
}

func (h *PortfolioHandler) logWarn(c *gin.Context, err error, msg string, fields ...interface{}) {
	logWithContext(h.logger, c, "warn", msg, append(fields, "error", err)...)
}

// markFallback tags the request log and counts a response served from sample data
func (h *GalleryHandler) markFallback(c *gin.Context, reason string) {
	c.Set(middleware.ContextKeyFallback, reason)
	h.metrics.RecordFallback(reason)
}

func (h *PortfolioHandler) markFallback(c *gin.Context, reason string) {
	c.Set(middleware.ContextKeyFallback, reason)
	h.metrics.RecordFallback(reason)
}
