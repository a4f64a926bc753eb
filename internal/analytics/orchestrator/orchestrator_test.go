package orchestrator_test

import (
	"context"
	"errors"
	"testing"

	"inventory-assistant/internal/analytics"
	"inventory-assistant/internal/analytics/orchestrator"
	"inventory-assistant/internal/analytics/tools"
	"inventory-assistant/pkg/llmprovider"
	pkgLog "inventory-assistant/pkg/log"
)

type scriptedLLM struct {
	responses []*llmprovider.Response
	err       error
	calls     int
	lastReq   *llmprovider.Request
}

func (s *scriptedLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	var resp *llmprovider.Response
	if s.calls < len(s.responses) {
		resp = s.responses[s.calls]
	} else {
		resp = s.responses[len(s.responses)-1]
	}
	s.calls++
	return resp, nil
}

func textResponse(text string) *llmprovider.Response {
	return &llmprovider.Response{
		Content: llmprovider.Message{Role: "model", Parts: []llmprovider.Part{{Text: text}}},
	}
}

func callResponse(name string, args map[string]interface{}) *llmprovider.Response {
	return &llmprovider.Response{
		Content: llmprovider.Message{
			Role:  "model",
			Parts: []llmprovider.Part{{FunctionCall: &llmprovider.FunctionCall{Name: name, Args: args}}},
		},
	}
}

type recordingTool struct {
	name       string
	result     interface{}
	err        error
	lastParams map[string]interface{}
}

func (t *recordingTool) Name() string                          { return t.name }
func (t *recordingTool) Description() string                   { return "test tool" }
func (t *recordingTool) Parameters() map[string]interface{}    { return map[string]interface{}{} }
func (t *recordingTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	t.lastParams = params
	return t.result, t.err
}

func newRegistry(ts ...analytics.Tool) *analytics.Registry {
	r := analytics.NewRegistry()
	for _, t := range ts {
		r.Register(t)
	}
	return r
}

func TestRunOneToolThenAnswer(t *testing.T) {
	tool := &recordingTool{name: "get_sales", result: map[string]interface{}{"total_sales": 400.0}}
	llm := &scriptedLLM{responses: []*llmprovider.Response{
		callResponse("get_sales", map[string]interface{}{"date_scope": "today"}),
		textResponse("You sold 400 today."),
	}}

	o := orchestrator.New(llm, newRegistry(tool), pkgLog.NewNopLogger())
	result, err := o.Run(context.Background(), "how much did I sell today?", "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Answer != "You sold 400 today." {
		t.Errorf("answer = %q", result.Answer)
	}
	if len(result.Exchanges) != 1 || result.Exchanges[0].Name != "get_sales" {
		t.Errorf("exchanges = %v", result.Exchanges)
	}
	if llm.calls != 2 {
		t.Errorf("llm called %d times, want 2", llm.calls)
	}
}

func TestRunExecutesAllParallelCalls(t *testing.T) {
	// One model turn asks for two tools at once; both must run and both
	// must get a response part before the next model turn.
	sales := &recordingTool{name: "get_sales", result: map[string]interface{}{"total_sales": 400.0}}
	profit := &recordingTool{name: "get_profit", result: map[string]interface{}{"profit": 50.0}}
	llm := &scriptedLLM{responses: []*llmprovider.Response{
		{Content: llmprovider.Message{Role: "model", Parts: []llmprovider.Part{
			{FunctionCall: &llmprovider.FunctionCall{Name: "get_sales", Args: map[string]interface{}{"date_scope": "today"}}},
			{FunctionCall: &llmprovider.FunctionCall{Name: "get_profit", Args: map[string]interface{}{"date_scope": "today"}}},
		}}},
		textResponse("Sales 400, profit 50."),
	}}

	o := orchestrator.New(llm, newRegistry(sales, profit), pkgLog.NewNopLogger())
	result, err := o.Run(context.Background(), "sales and profit today?", "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sales.lastParams == nil || profit.lastParams == nil {
		t.Fatal("both requested tools should have executed")
	}
	if len(result.Exchanges) != 2 || result.Exchanges[0].Name != "get_sales" || result.Exchanges[1].Name != "get_profit" {
		t.Errorf("exchanges = %v, want get_sales then get_profit", result.Exchanges)
	}

	// The final request history must answer each call.
	last := llm.lastReq.Messages[len(llm.lastReq.Messages)-1]
	if last.Role != "function" || len(last.Parts) != 2 {
		t.Fatalf("last message = %+v, want a function message with 2 parts", last)
	}
	if last.Parts[0].FunctionResponse.Name != "get_sales" || last.Parts[1].FunctionResponse.Name != "get_profit" {
		t.Errorf("function responses out of order: %+v", last.Parts)
	}
}

func TestRunInjectsOwner(t *testing.T) {
	// The model supplies its own owner_id; the orchestrator must overwrite it.
	tool := &recordingTool{name: "get_sales", result: map[string]interface{}{}}
	llm := &scriptedLLM{responses: []*llmprovider.Response{
		callResponse("get_sales", map[string]interface{}{tools.OwnerParam: "evil"}),
		textResponse("done"),
	}}

	o := orchestrator.New(llm, newRegistry(tool), pkgLog.NewNopLogger())
	if _, err := o.Run(context.Background(), "sales?", "owner-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tool.lastParams[tools.OwnerParam] != "owner-1" {
		t.Errorf("owner param = %v, want owner-1", tool.lastParams[tools.OwnerParam])
	}
}

func TestRunToolErrorFedBack(t *testing.T) {
	tool := &recordingTool{name: "get_sales", err: errors.New("invalid specific_date")}
	llm := &scriptedLLM{responses: []*llmprovider.Response{
		callResponse("get_sales", map[string]interface{}{"date_scope": "specific_date"}),
		textResponse("I could not read that date."),
	}}

	o := orchestrator.New(llm, newRegistry(tool), pkgLog.NewNopLogger())
	result, err := o.Run(context.Background(), "sales on 31-02?", "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errShaped, ok := result.Exchanges[0].Response.(map[string]string)
	if !ok || errShaped["error"] == "" {
		t.Errorf("expected error-shaped tool response, got %v", result.Exchanges[0].Response)
	}
	if result.Answer == "" {
		t.Error("loop should continue after a tool error")
	}
}

func TestRunUnknownTool(t *testing.T) {
	llm := &scriptedLLM{responses: []*llmprovider.Response{
		callResponse("get_weather", nil),
		textResponse("no such tool"),
	}}

	o := orchestrator.New(llm, newRegistry(), pkgLog.NewNopLogger())
	result, err := o.Run(context.Background(), "weather?", "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	errShaped := result.Exchanges[0].Response.(map[string]string)
	if errShaped["error"] == "" {
		t.Error("expected error-shaped response for unknown tool")
	}
}

func TestRunStepBudget(t *testing.T) {
	// The model never stops calling tools; the loop must cut it off.
	tool := &recordingTool{name: "get_sales", result: map[string]interface{}{"total_sales": 1.0}}
	llm := &scriptedLLM{responses: []*llmprovider.Response{
		callResponse("get_sales", map[string]interface{}{}),
	}}

	o := orchestrator.New(llm, newRegistry(tool), pkgLog.NewNopLogger())
	result, err := o.Run(context.Background(), "sales?", "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if llm.calls != orchestrator.MaxSteps {
		t.Errorf("llm called %d times, want %d", llm.calls, orchestrator.MaxSteps)
	}
	if result.Answer != "" {
		t.Errorf("answer = %q, want empty after budget exhaustion", result.Answer)
	}
	if len(result.Exchanges) != orchestrator.MaxSteps {
		t.Errorf("exchanges = %d, want %d", len(result.Exchanges), orchestrator.MaxSteps)
	}
}

func TestRunLLMFailure(t *testing.T) {
	llm := &scriptedLLM{err: errors.New("providers exhausted")}

	o := orchestrator.New(llm, newRegistry(), pkgLog.NewNopLogger())
	if _, err := o.Run(context.Background(), "sales?", "owner-1"); err == nil {
		t.Error("expected error when LLM fails")
	}
}
