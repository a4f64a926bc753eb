// Package orchestrator runs the analytics agent loop: the model picks
// tools, tools run against the store, results feed back until the model
// answers in text or the step budget runs out.
package orchestrator

import (
	"context"
	"fmt"

	"inventory-assistant/internal/analytics"
	"inventory-assistant/internal/analytics/tools"
	"inventory-assistant/internal/model"
	"inventory-assistant/pkg/llmprovider"
	pkgLog "inventory-assistant/pkg/log"
)

// MaxSteps bounds the loop. A runaway model stops asking for tools here.
const MaxSteps = 5

const systemInstruction = `You are an analytics assistant for a small shop owner.
Answer questions about sales, profit, trends and product performance by
calling the available tools, then summarize the numbers in one or two
plain sentences. Use the tools for every number you report; never invent
figures. Dates in tool output are YYYY-MM-DD.`

// Generator is the slice of the provider manager the orchestrator needs.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Result is the outcome of one analytics run.
type Result struct {
	// Answer is the model's final text. Empty when the step budget ran
	// out before the model stopped calling tools.
	Answer string

	// LastToolResponse is the most recent tool output, {} when no tool
	// ever ran. The formatter falls back to it when Answer is empty.
	LastToolResponse interface{}

	// Exchanges records every tool call of the run, in order.
	Exchanges []model.ToolExchange
}

// Orchestrator drives the analytics agent.
type Orchestrator struct {
	llm      Generator
	registry *analytics.Registry
	l        pkgLog.Logger
}

// New creates an analytics orchestrator.
func New(llm Generator, registry *analytics.Registry, l pkgLog.Logger) *Orchestrator {
	return &Orchestrator{llm: llm, registry: registry, l: l}
}

// Run executes the loop for one user query, scoped to one owner.
func (o *Orchestrator) Run(ctx context.Context, userQuery, ownerID string) (Result, error) {
	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "user",
			Parts: []llmprovider.Part{{Text: systemInstruction}},
		},
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: userQuery}}},
		},
		Tools: o.registry.ToFunctionDefinitions(),
	}

	result := Result{LastToolResponse: map[string]interface{}{}}

	for step := 0; step < MaxSteps; step++ {
		o.l.Infof(ctx, "analytics step %d/%d", step+1, MaxSteps)

		resp, err := o.llm.GenerateContent(ctx, req)
		if err != nil {
			return result, fmt.Errorf("analytics LLM error at step %d: %w", step+1, err)
		}

		calls := functionCalls(resp)
		if len(calls) == 0 {
			result.Answer = firstText(resp)
			o.l.Infof(ctx, "analytics finished at step %d", step+1)
			return result, nil
		}

		// Every requested call runs and gets a response part; leaving
		// one unanswered desyncs the conversation history.
		responseParts := make([]llmprovider.Part, 0, len(calls))
		for _, call := range calls {
			toolResult := o.execute(ctx, call, ownerID)
			result.LastToolResponse = toolResult
			result.Exchanges = append(result.Exchanges, model.ToolExchange{
				Name:     call.Name,
				Args:     call.Args,
				Response: toolResult,
			})
			responseParts = append(responseParts, llmprovider.Part{
				FunctionResponse: &llmprovider.FunctionResponse{
					Name:     call.Name,
					Response: toolResult,
				},
			})
		}

		req.Messages = append(req.Messages,
			resp.Content,
			llmprovider.Message{Role: "function", Parts: responseParts},
		)
	}

	o.l.Warnf(ctx, "analytics exceeded max steps (%d)", MaxSteps)
	return result, nil
}

// execute runs one tool call. Failures become error-shaped results fed
// back to the model instead of aborting the loop.
func (o *Orchestrator) execute(ctx context.Context, call *llmprovider.FunctionCall, ownerID string) interface{} {
	tool, ok := o.registry.Get(call.Name)
	if !ok {
		o.l.Errorf(ctx, "analytics tool %s not found", call.Name)
		return map[string]string{"error": fmt.Sprintf("unknown tool %s", call.Name)}
	}

	params := make(map[string]interface{}, len(call.Args)+1)
	for k, v := range call.Args {
		params[k] = v
	}
	// The owner scope comes from the authenticated request, never from
	// the model, whatever it put in the args.
	params[tools.OwnerParam] = ownerID

	o.l.Infof(ctx, "analytics calling %s with args %v", call.Name, call.Args)
	res, err := tool.Execute(ctx, params)
	if err != nil {
		o.l.Errorf(ctx, "analytics tool %s failed: %v", call.Name, err)
		return map[string]string{"error": err.Error()}
	}
	return res
}

func functionCalls(resp *llmprovider.Response) []*llmprovider.FunctionCall {
	var calls []*llmprovider.FunctionCall
	for _, part := range resp.Content.Parts {
		if part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}

func firstText(resp *llmprovider.Response) string {
	for _, part := range resp.Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}
