// Package intent classifies a user query into exactly one assistant domain.
package intent

import (
	"context"
	"errors"
	"fmt"

	"inventory-assistant/internal/extraction"
	"inventory-assistant/internal/model"
	pkgLog "inventory-assistant/pkg/log"
)

// ErrClassification indicates the extraction service failed to produce a
// label inside the closed intent set. Fatal to the turn; there is no
// silent default.
var ErrClassification = errors.New("intent classification failed")

const classifierPromptTemplate = `You are an intent classifier for a small shop inventory assistant.

Your job:
- Read the user's message.
- Choose exactly ONE intent from this list:
  - "products"   : product details, stock, price, barcode, item info.
  - "suppliers"  : vendors, purchase orders, supplier balances or payments.
  - "bills"      : sales bills, invoices, receipts, order history.
  - "customers"  : customers, phone numbers, loyalty, credit/udhari.
  - "analytics"  : sales summary, revenue, profit, margin, trends, top/bottom items.
  - "chitchat"   : greetings, or follow-ups about the previous answer shown below.

Rules:
- Always return exactly one of these words as the value of "intent".
- If you are not sure, pick the closest matching intent.

Previous answer (may be empty):
%s

Previous database results (may be empty):
%v

User message:
%s`

var classifierSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"intent": map[string]interface{}{
			"type": "string",
			"enum": []string{"products", "suppliers", "bills", "customers", "analytics", "chitchat"},
		},
	},
	"required": []string{"intent"},
}

// Classifier routes a user query to one intent.
type Classifier interface {
	Classify(ctx context.Context, userQuery, prevResponse string, prevDBResults map[string][]model.Record) (model.Intent, error)
}

type classifier struct {
	extractor extraction.Service
	l         pkgLog.Logger
}

// NewClassifier creates an intent classifier.
func NewClassifier(extractor extraction.Service, l pkgLog.Logger) Classifier {
	return &classifier{extractor: extractor, l: l}
}

func (c *classifier) Classify(ctx context.Context, userQuery, prevResponse string, prevDBResults map[string][]model.Record) (model.Intent, error) {
	prompt := fmt.Sprintf(classifierPromptTemplate, prevResponse, prevDBResults, userQuery)

	var out struct {
		Intent string `json:"intent"`
	}
	if err := c.extractor.Extract(ctx, prompt, classifierSchema, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassification, err)
	}

	parsed, ok := model.ParseIntent(out.Intent)
	if !ok {
		return "", fmt.Errorf("%w: model returned %q, not in the intent set", ErrClassification, out.Intent)
	}

	c.l.Infof(ctx, "intent classified: %s", parsed)
	return parsed, nil
}
