package usecase

import (
	"context"

	"github.com/google/uuid"

	"inventory-assistant/internal/chat"
	"inventory-assistant/internal/model"
)

func (uc *implUseCase) Converse(ctx context.Context, input chat.ConverseInput) (chat.ConverseOutput, error) {
	if input.OwnerID == "" {
		return chat.ConverseOutput{}, chat.ErrMissingOwner
	}
	if input.UserQuery == "" {
		return chat.ConverseOutput{}, chat.ErrMissingQuery
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	state := model.TurnState{
		OwnerID:   input.OwnerID,
		UserQuery: input.UserQuery,
	}
	if prev, ok := uc.sessions.Get(sessionKey(input.OwnerID, sessionID)); ok {
		state.PrevResponse = prev.response
		state.PrevDBResults = prev.dbResults
	}

	out := uc.graph.Run(ctx, state)

	uc.sessions.Add(sessionKey(input.OwnerID, sessionID), sessionEntry{
		response:  out.Response,
		dbResults: out.DBResults,
	})

	uc.l.Infof(ctx, "turn done: owner=%s session=%s intent=%s records=%d",
		input.OwnerID, sessionID, out.Intent, out.TotalRecords())

	return chat.ConverseOutput{
		Response:  out.Response,
		SessionID: sessionID,
	}, nil
}

// sessionKey scopes session memory by owner, so a guessed session id
// never leaks another owner's previous results.
func sessionKey(ownerID, sessionID string) string {
	return ownerID + "/" + sessionID
}
