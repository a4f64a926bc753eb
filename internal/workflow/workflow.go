// Package workflow wires the per-turn pipeline: route the query, run
// exactly one branch, always end with a response string. No node error
// ever escapes to the caller.
package workflow

import (
	"context"
	"time"

	"inventory-assistant/internal/analytics/orchestrator"
	"inventory-assistant/internal/intent"
	"inventory-assistant/internal/model"
	"inventory-assistant/internal/query"
	"inventory-assistant/internal/store"
	"inventory-assistant/internal/synthesis"
	pkgLog "inventory-assistant/pkg/log"
)

// User-facing degraded responses. Raw errors stay in the logs.
const (
	classificationApology = "Sorry, I couldn't work out what you're asking for. Could you rephrase?"
	buildApology          = "Sorry, I couldn't understand that. Could you phrase it differently?"
	analyticsApology      = "Sorry, I couldn't compute that right now. Please try again in a moment."
)

// Graph is the assistant's turn pipeline.
type Graph struct {
	classifier   intent.Classifier
	builders     map[model.Intent]query.Builder
	store        store.Executor
	orchestrator *orchestrator.Orchestrator
	synthesizer  synthesis.Synthesizer
	chitchat     synthesis.ChitchatResponder
	l            pkgLog.Logger
	now          func() time.Time
}

// New creates the workflow graph. The clock is injected so tests can pin
// "today" for date-sensitive builders.
func New(
	classifier intent.Classifier,
	builders map[model.Intent]query.Builder,
	st store.Executor,
	orch *orchestrator.Orchestrator,
	synth synthesis.Synthesizer,
	chitchat synthesis.ChitchatResponder,
	l pkgLog.Logger,
	now func() time.Time,
) *Graph {
	return &Graph{
		classifier:   classifier,
		builders:     builders,
		store:        st,
		orchestrator: orch,
		synthesizer:  synth,
		chitchat:     chitchat,
		l:            l,
		now:          now,
	}
}

// Run executes one turn. The returned state always carries a non-empty
// Response; the input state is never mutated.
func (g *Graph) Run(ctx context.Context, state model.TurnState) model.TurnState {
	classified, err := g.classifier.Classify(ctx, state.UserQuery, state.PrevResponse, state.PrevDBResults)
	if err != nil {
		g.l.Errorf(ctx, "workflow: classification failed: %v", err)
		state.Response = classificationApology
		return state
	}
	state.Intent = classified

	switch classified {
	case model.IntentAnalytics:
		return g.runAnalytics(ctx, state)
	case model.IntentChitchat:
		state.Response = g.chitchat.Respond(ctx, state.UserQuery, state.PrevResponse, state.PrevDBResults)
		return state
	default:
		return g.runDomain(ctx, state)
	}
}

func (g *Graph) runDomain(ctx context.Context, state model.TurnState) model.TurnState {
	builder, ok := g.builders[state.Intent]
	if !ok {
		// Registry and intent set drift only through a programming error.
		g.l.Errorf(ctx, "workflow: no builder registered for intent %s", state.Intent)
		state.Response = buildApology
		return state
	}

	filter, collection, err := builder.Build(ctx, state.UserQuery, state.OwnerID, g.now())
	if err != nil {
		g.l.Errorf(ctx, "workflow: %v", err)
		state.Response = buildApology
		return state
	}
	state.Collection = collection
	state.QueryFilter = filter

	records := g.store.Find(ctx, collection, filter, state.OwnerID)
	state.DBResults = map[string][]model.Record{collection: records}

	state.Response = g.synthesizer.SynthesizeRecords(ctx, state.UserQuery, state.DBResults)
	return state
}

func (g *Graph) runAnalytics(ctx context.Context, state model.TurnState) model.TurnState {
	result, err := g.orchestrator.Run(ctx, state.UserQuery, state.OwnerID)
	if err != nil {
		g.l.Errorf(ctx, "workflow: analytics run failed: %v", err)
		state.Response = analyticsApology
		return state
	}
	state.ToolMessages = append(state.ToolMessages, result.Exchanges...)

	state.Response = g.synthesizer.FormatAnalytics(ctx, state.UserQuery, result.Answer, result.LastToolResponse)
	return state
}
