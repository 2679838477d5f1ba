package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Remix answers POST /remix/:id with the fixed placeholder for that dream
func Remix(c *gin.Context) {
	dreamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, RemixPlaceholder(dreamID))
}

// GenerateStory answers GET /generate with the fixed placeholder
func GenerateStory(c *gin.Context) {
	c.JSON(http.StatusOK, StoryPlaceholder())
}
