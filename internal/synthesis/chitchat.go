package synthesis

import (
	"context"
	"fmt"

	"inventory-assistant/internal/model"
	"inventory-assistant/pkg/llmprovider"
	pkgLog "inventory-assistant/pkg/log"
)

const chitchatFallback = "Hello! Ask me about your products, bills, suppliers, customers or sales."

const chitchatPromptTemplate = `You are a friendly assistant for a small shop owner. The owner sent a
casual message or a follow-up about your previous answer. Reply warmly
in one or two short sentences. If they seem to want shop data, point
them to asking about products, bills, suppliers, customers or sales.

Previous answer (may be empty):
%s

Previous results (may be empty):
%v

Owner's message:
%s`

// ChitchatResponder handles greetings and follow-ups about the previous
// turn.
type ChitchatResponder interface {
	Respond(ctx context.Context, userQuery, prevResponse string, prevDBResults map[string][]model.Record) string
}

type chitchat struct {
	llm Generator
	l   pkgLog.Logger
}

// NewChitchat creates the chitchat responder.
func NewChitchat(llm Generator, l pkgLog.Logger) ChitchatResponder {
	return &chitchat{llm: llm, l: l}
}

func (c *chitchat) Respond(ctx context.Context, userQuery, prevResponse string, prevDBResults map[string][]model.Record) string {
	prompt := fmt.Sprintf(chitchatPromptTemplate, prevResponse, prevDBResults, userQuery)

	resp, err := c.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: prompt}}},
		},
		Temperature: 0.7,
	})
	if err != nil {
		c.l.Errorf(ctx, "chitchat: completion failed: %v", err)
		return chitchatFallback
	}

	for _, part := range resp.Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return chitchatFallback
}
