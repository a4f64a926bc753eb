package http

import (
	"github.com/gin-gonic/gin"
)

// processConverseReq binds and validates the converse request body.
func (h *handler) processConverseReq(c *gin.Context) (converseReq, error) {
	var req converseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}
