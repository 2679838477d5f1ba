package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.dreamcanvas.services/internal/metrics"
	"io.dreamcanvas.services/internal/middleware"
	"io.dreamcanvas.services/internal/store"
)

// galleryLimit caps how many recent dreams /all returns
const galleryLimit = 20

type GalleryHandler struct {
	store   store.DreamStore
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(dreamStore store.DreamStore, logger *zap.SugaredLogger, m *metrics.Metrics) *GalleryHandler {
	return &GalleryHandler{
		store:   dreamStore,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// ListAll returns the most recent dreams. Store failures never surface as
// errors: the caller gets sample dreams with a 200 instead.
func (h *GalleryHandler) ListAll(c *gin.Context) {
	rows, schema, err := h.store.ListRecent(c.Request.Context(), galleryLimit)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			h.logWarn(c, err, "dream store unavailable, serving sample gallery")
			h.markFallback(c, metrics.ReasonUnavailable)
		} else {
			h.logError(c, err, "failed to fetch dreams, serving sample gallery")
			h.markFallback(c, metrics.ReasonQueryError)
		}
		c.JSON(http.StatusOK, GallerySample())
		return
	}

	if len(rows) == 0 {
		h.markFallback(c, metrics.ReasonEmpty)
		c.JSON(http.StatusOK, GalleryWelcomeSample())
		return
	}

	c.Set(middleware.ContextKeySchema, string(schema))
	c.JSON(http.StatusOK, presentDreams(rows, schema, galleryDefaults, h.now()))
}
