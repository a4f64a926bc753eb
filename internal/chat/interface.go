package chat

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Converse runs one assistant turn for an owner's message.
	Converse(ctx context.Context, input ConverseInput) (ConverseOutput, error)
}
