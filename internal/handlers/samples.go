package handlers

import (
	dreammodels "io.dreamcanvas.services/internal/models/dream"
	remixmodels "io.dreamcanvas.services/internal/models/remix"
	storymodels "io.dreamcanvas.services/internal/models/story"
)

// Fixed payloads served when the store cannot answer. Each call returns a
// fresh slice so handlers never share mutable state.

const emptyPortfolioMessage = "No dreams found. Start creating your first dream!"

// GallerySample is served by /all when the store is down or a query fails
func GallerySample() []dreammodels.DreamResponse {
	return []dreammodels.DreamResponse{
		{ID: 1, Title: "Flying Over Tokyo", Likes: 42, Description: "Soaring through neon-lit skies"},
		{ID: 2, Title: "Library of Whispers", Likes: 28, Description: "Ancient books speak secrets"},
	}
}

// GalleryWelcomeSample is served by /all when the dreams table is empty
func GalleryWelcomeSample() []dreammodels.DreamResponse {
	return []dreammodels.DreamResponse{
		{ID: 999, Title: "Welcome Dream", Description: "Your first dream awaits...", Likes: 0, Tags: stringPtr("welcome")},
		{ID: 998, Title: "Sample Dream", Description: "This is how dreams will appear", Likes: 5, Tags: stringPtr("sample")},
	}
}

// PortfolioUnavailableSample is served when no connection to the store could be made
func PortfolioUnavailableSample() []dreammodels.DreamResponse {
	return []dreammodels.DreamResponse{
		{ID: 101, Title: "My First Dream", Description: "The beginning of my journey", Likes: 15},
		{ID: 102, Title: "Floating Islands", Description: "A world above the clouds", Likes: 23},
	}
}

// PortfolioErrorSample is served when the store was reachable but the lookup failed
func PortfolioErrorSample() []dreammodels.DreamResponse {
	return []dreammodels.DreamResponse{
		{ID: 101, Title: "My First Dream", Description: "The beginning of my journey", Likes: 15},
	}
}

// RemixPlaceholder is the fixed remix-engine answer for dreamID
func RemixPlaceholder(dreamID int64) remixmodels.RemixResponse {
	return remixmodels.RemixResponse{
		NewID:      nil,
		OriginalID: dreamID,
		Status:     "service_available",
		Style:      "ready",
		Message:    "Remix service is ready. Connect to processing engine for dream remixing.",
	}
}

// StoryPlaceholder is the fixed story-weaver answer
func StoryPlaceholder() storymodels.GenerateStoryResponse {
	return storymodels.GenerateStoryResponse{
		Story:  "Story generation service is ready. Connect to AI service for story generation.",
		Mood:   "ready",
		Length: "placeholder",
		Status: "service_available",
	}
}
