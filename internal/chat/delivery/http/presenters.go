package http

import "inventory-assistant/internal/chat"

type converseReq struct {
	OwnerID   string `json:"owner_id" binding:"required"`
	UserQuery string `json:"user_query" binding:"required"`
	SessionID string `json:"session_id"`
}

func (r converseReq) toInput() chat.ConverseInput {
	return chat.ConverseInput{
		OwnerID:   r.OwnerID,
		UserQuery: r.UserQuery,
		SessionID: r.SessionID,
	}
}

type converseResp struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func (h *handler) newConverseResp(output chat.ConverseOutput) converseResp {
	return converseResp{
		Response:  output.Response,
		SessionID: output.SessionID,
	}
}
