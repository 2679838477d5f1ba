package handlers

import (
	"strconv"
	"time"

	models "io.dreamcanvas.services/internal/models/dream"
)

const (
	maxDescriptionLength = 100
	ellipsis             = "..."
)

// dreamDefaults carries the substitutions that differ between services
type dreamDefaults struct {
	untitled       string
	description    string
	oldTitlePrefix string
}

var (
	galleryDefaults = dreamDefaults{
		untitled:       "Untitled Dream",
		description:    "A mysterious dream...",
		oldTitlePrefix: "Dream #",
	}
	portfolioDefaults = dreamDefaults{
		untitled:       "Untitled Dream",
		description:    "A personal dream...",
		oldTitlePrefix: "My Dream #",
	}
)

// truncateDescription cuts text to its first 100 characters and appends an ellipsis
func truncateDescription(text string) string {
	runes := []rune(text)
	if len(runes) <= maxDescriptionLength {
		return text
	}
	return string(runes[:maxDescriptionLength]) + ellipsis
}

// presentDreams reshapes store rows into response objects. now fills in a missing created_at.
func presentDreams(rows []models.Dream, schema models.Schema, defaults dreamDefaults, now time.Time) []models.DreamResponse {
	out := make([]models.DreamResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, presentDream(row, schema, defaults, now))
	}
	return out
}

func presentDream(row models.Dream, schema models.Schema, defaults dreamDefaults, now time.Time) models.DreamResponse {
	description := defaults.description
	if row.Prompt != nil && *row.Prompt != "" {
		description = truncateDescription(*row.Prompt)
	}

	createdAt := now
	if row.CreatedAt != nil {
		createdAt = *row.CreatedAt
	}

	resp := models.DreamResponse{
		ID:          row.ID,
		Description: description,
		CreatedAt:   createdAt.Format(time.RFC3339Nano),
	}

	if schema == models.SchemaOld {
		resp.Title = defaults.oldTitlePrefix + strconv.FormatInt(row.ID, 10)
		resp.Likes = 0
		resp.Tags = stringPtr("")
		return resp
	}

	resp.Title = defaults.untitled
	if row.Title != nil && *row.Title != "" {
		resp.Title = *row.Title
	}
	if row.Likes != nil {
		resp.Likes = *row.Likes
	}
	resp.Tags = stringPtr("")
	if row.Tags != nil {
		resp.Tags = stringPtr(*row.Tags)
	}
	return resp
}

func stringPtr(s string) *string {
	return &s
}
