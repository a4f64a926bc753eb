package extraction_test

import (
	"context"
	"errors"
	"testing"

	"inventory-assistant/internal/extraction"
	"inventory-assistant/pkg/llmprovider"
)

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{
		Content: llmprovider.Message{
			Role:  "model",
			Parts: []llmprovider.Part{{Text: f.text}},
		},
		Usage: &llmprovider.Usage{},
	}, nil
}

var schema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"intent": map[string]interface{}{"type": "string"},
	},
}

func TestExtract(t *testing.T) {
	svc := extraction.New(&fakeGenerator{text: `{"intent": "products"}`})

	var out struct {
		Intent string `json:"intent"`
	}
	if err := svc.Extract(context.Background(), "classify", schema, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Intent != "products" {
		t.Errorf("expected products, got %q", out.Intent)
	}
}

func TestExtractStripsCodeFences(t *testing.T) {
	svc := extraction.New(&fakeGenerator{text: "```json\n{\"intent\": \"bills\"}\n```"})

	var out struct {
		Intent string `json:"intent"`
	}
	if err := svc.Extract(context.Background(), "classify", schema, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Intent != "bills" {
		t.Errorf("expected bills, got %q", out.Intent)
	}
}

func TestExtractLLMFailure(t *testing.T) {
	svc := extraction.New(&fakeGenerator{err: errors.New("all providers down")})

	var out map[string]interface{}
	err := svc.Extract(context.Background(), "classify", schema, &out)
	if !errors.Is(err, extraction.ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractUnparseableJSON(t *testing.T) {
	svc := extraction.New(&fakeGenerator{text: "I think the intent is products."})

	var out map[string]interface{}
	err := svc.Extract(context.Background(), "classify", schema, &out)
	if !errors.Is(err, extraction.ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractEmptyResponse(t *testing.T) {
	svc := extraction.New(&fakeGenerator{text: ""})

	var out map[string]interface{}
	err := svc.Extract(context.Background(), "classify", schema, &out)
	if !errors.Is(err, extraction.ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}
}
