package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// PageHandler renders a static page
func PageHandler(flashes FlashStore, name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, flashes, http.StatusOK, name, page{Title: title})
	}
}
