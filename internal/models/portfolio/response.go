package models

import dreammodels "io.dreamcanvas.services/internal/models/dream"

// EmptyPortfolioResponse is returned instead of a bare array when a user has no dreams
type EmptyPortfolioResponse struct {
	Dreams  []dreammodels.DreamResponse `json:"dreams"`
	Message string                      `json:"message"`
	UserID  int64                       `json:"user_id"`
}
