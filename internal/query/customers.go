package query

import (
	"context"
	"fmt"
	"time"

	"inventory-assistant/internal/extraction"
	"inventory-assistant/internal/model"
	pkgLog "inventory-assistant/pkg/log"
)

const customersPromptTemplate = `Extract customer search criteria from the shop owner's message.

Fields:
- "name": the customer name or part of it, if mentioned.
- "phone": the customer phone number, digits only, if mentioned.
- "min_credit": outstanding credit (udhari) lower bound, 0 if absent.
  "Customers who owe me money" means min_credit just above zero, use 0.01.

Leave fields empty or 0 when the message does not mention them. Do not guess.

Message:
%s`

var customersSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"name":       map[string]interface{}{"type": "string"},
		"phone":      map[string]interface{}{"type": "string"},
		"min_credit": map[string]interface{}{"type": "number"},
	},
}

type customersBuilder struct {
	extractor extraction.Service
	l         pkgLog.Logger
}

// NewCustomersBuilder creates the customers-domain query builder.
func NewCustomersBuilder(extractor extraction.Service, l pkgLog.Logger) Builder {
	return &customersBuilder{extractor: extractor, l: l}
}

func (b *customersBuilder) Build(ctx context.Context, userQuery, ownerID string, now time.Time) (model.Filter, string, error) {
	var out struct {
		Name      string  `json:"name"`
		Phone     string  `json:"phone"`
		MinCredit float64 `json:"min_credit"`
	}
	if err := b.extractor.Extract(ctx, fmt.Sprintf(customersPromptTemplate, userQuery), customersSchema, &out); err != nil {
		return nil, "", &BuildError{Domain: CollectionCustomers, Err: err}
	}

	filter := model.Filter{}
	if out.Name != "" {
		filter["name"] = regexMatch(out.Name)
	}
	if out.Phone != "" {
		filter["phone"] = out.Phone
	}
	if out.MinCredit > 0 {
		filter["creditBalance"] = map[string]interface{}{"$gte": out.MinCredit}
	}

	b.l.Debugf(ctx, "customers filter built: %v", filter)
	return forceOwner(filter, ownerID), CollectionCustomers, nil
}
