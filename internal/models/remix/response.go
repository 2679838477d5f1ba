package models

type RemixResponse struct {
	NewID      *int64 `json:"new_id"`
	OriginalID int64  `json:"original_id"`
	Status     string `json:"status"`
	Style      string `json:"style"`
	Message    string `json:"message"`
}
