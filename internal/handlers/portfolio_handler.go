package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.dreamcanvas.services/internal/metrics"
	"io.dreamcanvas.services/internal/middleware"
	dreammodels "io.dreamcanvas.services/internal/models/dream"
	portfoliomodels "io.dreamcanvas.services/internal/models/portfolio"
	"io.dreamcanvas.services/internal/store"
)

type PortfolioHandler struct {
	store   store.DreamStore
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewPortfolioHandler creates a new user portfolio handler
func NewPortfolioHandler(dreamStore store.DreamStore, logger *zap.SugaredLogger, m *metrics.Metrics) *PortfolioHandler {
	return &PortfolioHandler{
		store:   dreamStore,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// ListUserDreams returns every dream owned by the :id user.
//
// A user with dreams gets a bare array; a user without any gets an
// EmptyPortfolioResponse object. Clients already depend on both shapes.
func (h *PortfolioHandler) ListUserDreams(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	rows, schema, err := h.store.ListByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			h.logWarn(c, err, "dream store unavailable, serving sample portfolio", "user_id", userID)
			h.markFallback(c, metrics.ReasonUnavailable)
			c.JSON(http.StatusOK, PortfolioUnavailableSample())
			return
		}
		h.logError(c, err, "failed to fetch user portfolio, serving sample portfolio", "user_id", userID)
		h.markFallback(c, metrics.ReasonQueryError)
		c.JSON(http.StatusOK, PortfolioErrorSample())
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusOK, portfoliomodels.EmptyPortfolioResponse{
			Dreams:  []dreammodels.DreamResponse{},
			Message: emptyPortfolioMessage,
			UserID:  userID,
		})
		return
	}

	c.Set(middleware.ContextKeySchema, string(schema))
	c.JSON(http.StatusOK, presentDreams(rows, schema, portfolioDefaults, h.now()))
}
