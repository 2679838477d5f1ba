package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	healthmodels "io.dreamcanvas.services/internal/models/health"
	"io.dreamcanvas.services/internal/store"
)

const (
	databaseConnected    = "connected"
	databaseDisconnected = "disconnected"
)

type HealthHandler struct {
	service string
	store   store.DreamStore
	timeout time.Duration
}

// NewHealthHandler creates a health handler. A nil store omits the database field.
func NewHealthHandler(service string, dreamStore store.DreamStore, timeout time.Duration) *HealthHandler {
	return &HealthHandler{
		service: service,
		store:   dreamStore,
		timeout: timeout,
	}
}

// Health always reports status "ok"; database reachability is informational
func (h *HealthHandler) Health(c *gin.Context) {
	resp := healthmodels.HealthResponse{
		Service: h.service,
		Status:  "ok",
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		resp.Database = databaseConnected
		if err := h.store.Ping(ctx); err != nil {
			resp.Database = databaseDisconnected
		}
	}

	c.JSON(http.StatusOK, resp)
}
