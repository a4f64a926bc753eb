package intent_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"inventory-assistant/internal/intent"
	"inventory-assistant/internal/model"
	pkgLog "inventory-assistant/pkg/log"
)

type fakeExtractor struct {
	json       string
	err        error
	lastPrompt string
}

func (f *fakeExtractor) Extract(ctx context.Context, prompt string, schema map[string]interface{}, out any) error {
	f.lastPrompt = prompt
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.json), out)
}

func TestClassify(t *testing.T) {
	extractor := &fakeExtractor{json: `{"intent": "bills"}`}
	c := intent.NewClassifier(extractor, pkgLog.NewNopLogger())

	got, err := c.Classify(context.Background(), "show my bills from today", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != model.IntentBills {
		t.Errorf("intent = %q, want bills", got)
	}
	if !strings.Contains(extractor.lastPrompt, "show my bills from today") {
		t.Error("prompt missing the user query")
	}
}

func TestClassifyCarriesPreviousTurn(t *testing.T) {
	extractor := &fakeExtractor{json: `{"intent": "chitchat"}`}
	c := intent.NewClassifier(extractor, pkgLog.NewNopLogger())

	prev := map[string][]model.Record{"products": {{"name": "Basmati Rice"}}}
	if _, err := c.Classify(context.Background(), "what about the second one?", "Found 2 products.", prev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(extractor.lastPrompt, "Found 2 products.") {
		t.Error("prompt missing the previous answer")
	}
	if !strings.Contains(extractor.lastPrompt, "Basmati Rice") {
		t.Error("prompt missing the previous database results")
	}
}

func TestClassifyRejectsOutOfSetLabel(t *testing.T) {
	extractor := &fakeExtractor{json: `{"intent": "sales"}`}
	c := intent.NewClassifier(extractor, pkgLog.NewNopLogger())

	_, err := c.Classify(context.Background(), "anything", "", nil)
	if !errors.Is(err, intent.ErrClassification) {
		t.Errorf("expected ErrClassification, got %v", err)
	}
}

func TestClassifyExtractionFailure(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("providers exhausted")}
	c := intent.NewClassifier(extractor, pkgLog.NewNopLogger())

	_, err := c.Classify(context.Background(), "anything", "", nil)
	if !errors.Is(err, intent.ErrClassification) {
		t.Errorf("expected ErrClassification, got %v", err)
	}
}
