// Package extraction turns free text into schema-conformant values using
// the LLM provider chain's structured output mode.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"inventory-assistant/pkg/llmprovider"
)

// ErrExtraction indicates the model failed to produce a parseable value.
var ErrExtraction = errors.New("structured extraction failed")

// Generator is the slice of the provider manager the service needs.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Service extracts schema-conformant values from free text.
type Service interface {
	// Extract sends the prompt with the given JSON Schema and unmarshals
	// the model's JSON output into out.
	Extract(ctx context.Context, prompt string, schema map[string]interface{}, out any) error
}

type service struct {
	llm Generator
}

// New creates a new extraction service on top of an LLM generator.
func New(llm Generator) Service {
	return &service{llm: llm}
}

func (s *service) Extract(ctx context.Context, prompt string, schema map[string]interface{}, out any) error {
	req := &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: prompt}}},
		},
		Temperature:    0,
		ResponseSchema: schema,
	}

	resp, err := s.llm.GenerateContent(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	text := firstText(resp)
	if text == "" {
		return fmt.Errorf("%w: empty model response", ErrExtraction)
	}

	if err := json.Unmarshal([]byte(stripCodeFences(text)), out); err != nil {
		return fmt.Errorf("%w: unparseable JSON %q: %v", ErrExtraction, text, err)
	}

	return nil
}

func firstText(resp *llmprovider.Response) string {
	for _, part := range resp.Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}

// stripCodeFences removes a surrounding ```json ... ``` block. Providers in
// JSON mode shouldn't emit fences, but fallback providers sometimes do.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
