package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"inventory-assistant/internal/chat"
	"inventory-assistant/pkg/response"
)

// Converse godoc
// @Summary     Ask the inventory assistant
// @Description Runs one assistant turn: routes the question, queries the store, and answers in natural language. Pass the returned session_id on follow-up questions.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body converseReq true "Owner id, question, and optional session id"
// @Success     200 {object} converseResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat [POST]
func (h *handler) Converse(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processConverseReq(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	output, err := h.uc.Converse(ctx, req.toInput())
	if err != nil {
		if errors.Is(err, chat.ErrMissingOwner) || errors.Is(err, chat.ErrMissingQuery) {
			response.BadRequest(c, err)
			return
		}
		h.l.Errorf(ctx, "uc.Converse: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, h.newConverseResp(output))
}
