package models

import "time"

// Schema identifies which column set a query was answered with
type Schema string

const (
	// SchemaNew has title, prompt, likes, created_at and tags
	SchemaNew Schema = "new"
	// SchemaOld predates title, likes and tags
	SchemaOld Schema = "old"
)

// Dream is a row of the dreams table. Nullable columns are pointers;
// columns missing from the old schema are always nil.
type Dream struct {
	ID        int64
	Title     *string
	Prompt    *string
	Likes     *int64
	CreatedAt *time.Time
	Tags      *string
}
