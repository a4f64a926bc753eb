package http

import (
	"github.com/gin-gonic/gin"

	"inventory-assistant/internal/middleware"
)

// RegisterRoutes maps the chat endpoint. Turns are rate-limited per
// owner; everything else on the server is unmetered.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.POST("/chat", mw.RateLimit(), h.Converse)
}
