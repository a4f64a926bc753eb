// Package synthesis turns query results and tool outputs into short
// natural-language answers.
package synthesis

import (
	"context"
	"encoding/json"
	"fmt"

	"inventory-assistant/internal/model"
	"inventory-assistant/pkg/llmprovider"
	pkgLog "inventory-assistant/pkg/log"
)

// NoDataMessage is returned whenever a turn matched zero records. Fixed
// wording; the model never gets a chance to phrase "nothing found" itself.
const NoDataMessage = "I couldn't find any matching records for that. Try rephrasing, or check that the data exists."

const recordsPromptTemplate = `You are an assistant for a small shop owner. Answer the owner's
question using ONLY the records below. Keep it to one or two short
sentences. Never invent names, quantities or amounts that are not in
the records. Mention counts and totals when they matter.

Question:
%s

Records (by collection, as JSON):
%s`

const analyticsPromptTemplate = `You are an assistant for a small shop owner. Summarize the analytics
result below in one or two short sentences answering the owner's
question. Use ONLY the numbers present in the result.

Question:
%s

Analytics result (JSON):
%s`

// Generator is the slice of the provider manager synthesis needs.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Synthesizer produces the final response text of a turn.
type Synthesizer interface {
	// SynthesizeRecords answers from domain query results.
	SynthesizeRecords(ctx context.Context, userQuery string, results map[string][]model.Record) string

	// FormatAnalytics answers from the analytics run: the model's own
	// answer when it produced one, otherwise a summary of the last tool
	// output.
	FormatAnalytics(ctx context.Context, userQuery, answer string, lastToolResponse interface{}) string
}

type synthesizer struct {
	llm Generator
	l   pkgLog.Logger
}

// New creates a synthesizer.
func New(llm Generator, l pkgLog.Logger) Synthesizer {
	return &synthesizer{llm: llm, l: l}
}

func (s *synthesizer) SynthesizeRecords(ctx context.Context, userQuery string, results map[string][]model.Record) string {
	if totalRecords(results) == 0 {
		return NoDataMessage
	}

	data, err := json.Marshal(results)
	if err != nil {
		s.l.Errorf(ctx, "synthesis: failed to marshal results: %v", err)
		return fallback("could not read the matched records")
	}

	return s.complete(ctx, fmt.Sprintf(recordsPromptTemplate, userQuery, string(data)))
}

func (s *synthesizer) FormatAnalytics(ctx context.Context, userQuery, answer string, lastToolResponse interface{}) string {
	if answer != "" {
		return answer
	}

	data, err := json.Marshal(lastToolResponse)
	if err != nil {
		s.l.Errorf(ctx, "synthesis: failed to marshal tool response: %v", err)
		return fallback("could not read the analytics result")
	}

	return s.complete(ctx, fmt.Sprintf(analyticsPromptTemplate, userQuery, string(data)))
}

// complete runs one plain text-completion call, degrading to a fallback
// message on any failure. Synthesis never aborts a turn.
func (s *synthesizer) complete(ctx context.Context, prompt string) string {
	resp, err := s.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: prompt}}},
		},
		Temperature: 0.3,
	})
	if err != nil {
		s.l.Errorf(ctx, "synthesis: completion failed: %v", err)
		return fallback("the language model did not respond")
	}

	for _, part := range resp.Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}

	s.l.Errorf(ctx, "synthesis: completion returned no text")
	return fallback("the language model returned an empty answer")
}

func fallback(reason string) string {
	return fmt.Sprintf("I found the data but couldn't phrase an answer (%s). Please try again.", reason)
}

func totalRecords(results map[string][]model.Record) int {
	total := 0
	for _, records := range results {
		total += len(records)
	}
	return total
}
