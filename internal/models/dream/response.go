package models

// DreamResponse is the JSON shape of a dream returned by the read services.
// Sample payloads leave CreatedAt and Tags unset, which omits the keys.
type DreamResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Likes       int64   `json:"likes"`
	CreatedAt   string  `json:"created_at,omitempty"`
	Tags        *string `json:"tags,omitempty"`
}
