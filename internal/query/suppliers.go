package query

import (
	"context"
	"fmt"
	"time"

	"inventory-assistant/internal/extraction"
	"inventory-assistant/internal/model"
	pkgLog "inventory-assistant/pkg/log"
)

const suppliersPromptTemplate = `Extract supplier search criteria from the shop owner's message.

Fields:
- "name": the supplier or vendor name, if mentioned.
- "min_balance" / "max_balance": outstanding balance bounds, 0 if absent.
  "Suppliers I owe money to" means min_balance just above zero, use 0.01.

Leave fields empty or 0 when the message does not mention them. Do not guess.

Message:
%s`

var suppliersSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"name":        map[string]interface{}{"type": "string"},
		"min_balance": map[string]interface{}{"type": "number"},
		"max_balance": map[string]interface{}{"type": "number"},
	},
}

type suppliersBuilder struct {
	extractor extraction.Service
	l         pkgLog.Logger
}

// NewSuppliersBuilder creates the suppliers-domain query builder.
func NewSuppliersBuilder(extractor extraction.Service, l pkgLog.Logger) Builder {
	return &suppliersBuilder{extractor: extractor, l: l}
}

func (b *suppliersBuilder) Build(ctx context.Context, userQuery, ownerID string, now time.Time) (model.Filter, string, error) {
	var out struct {
		Name       string  `json:"name"`
		MinBalance float64 `json:"min_balance"`
		MaxBalance float64 `json:"max_balance"`
	}
	if err := b.extractor.Extract(ctx, fmt.Sprintf(suppliersPromptTemplate, userQuery), suppliersSchema, &out); err != nil {
		return nil, "", &BuildError{Domain: CollectionSuppliers, Err: err}
	}

	filter := model.Filter{}
	if out.Name != "" {
		filter["name"] = regexMatch(out.Name)
	}
	if cond := rangeFilter(out.MinBalance, out.MaxBalance); cond != nil {
		filter["balance"] = cond
	}

	b.l.Debugf(ctx, "suppliers filter built: %v", filter)
	return forceOwner(filter, ownerID), CollectionSuppliers, nil
}
