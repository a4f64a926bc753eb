package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventory-assistant/internal/extraction"
	"inventory-assistant/internal/model"
	"inventory-assistant/pkg/dateutil"
	pkgLog "inventory-assistant/pkg/log"
)

const productsPromptTemplate = `Extract product search criteria from the shop owner's message.

Fields:
- "name": product name or part of it, if the user names a product.
- "category": product category, if mentioned (e.g. "snacks", "dairy").
- "min_price" / "max_price": selling price bounds in the shop currency, 0 if absent.
- "in_stock": "yes" if the user asks for items in stock, "no" for out-of-stock items, "" otherwise.

Leave fields empty or 0 when the message does not mention them. Do not guess.

Message:
%s`

var productsSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"name":      map[string]interface{}{"type": "string"},
		"category":  map[string]interface{}{"type": "string"},
		"min_price": map[string]interface{}{"type": "number"},
		"max_price": map[string]interface{}{"type": "number"},
		"in_stock":  map[string]interface{}{"type": "string", "enum": []string{"yes", "no", ""}},
	},
}

type productsBuilder struct {
	extractor extraction.Service
	l         pkgLog.Logger
}

// NewProductsBuilder creates the products-domain query builder.
func NewProductsBuilder(extractor extraction.Service, l pkgLog.Logger) Builder {
	return &productsBuilder{extractor: extractor, l: l}
}

func (b *productsBuilder) Build(ctx context.Context, userQuery, ownerID string, now time.Time) (model.Filter, string, error) {
	var out struct {
		Name     string  `json:"name"`
		Category string  `json:"category"`
		MinPrice float64 `json:"min_price"`
		MaxPrice float64 `json:"max_price"`
		InStock  string  `json:"in_stock"`
	}
	if err := b.extractor.Extract(ctx, fmt.Sprintf(productsPromptTemplate, userQuery), productsSchema, &out); err != nil {
		return nil, "", &BuildError{Domain: CollectionProducts, Err: err}
	}

	filter := model.Filter{}
	if out.Name != "" {
		filter["name"] = regexMatch(out.Name)
	}
	if out.Category != "" {
		filter["category"] = regexMatch(out.Category)
	}
	if cond := rangeFilter(out.MinPrice, out.MaxPrice); cond != nil {
		filter["sellingPrice"] = cond
	}
	switch out.InStock {
	case "yes":
		filter["stock"] = map[string]interface{}{"$gt": 0}
	case "no":
		filter["stock"] = map[string]interface{}{"$lte": 0}
	}

	// Expiry questions always mean "already expired", whatever the model
	// extracted. Anything with an expiration date before today's start.
	if strings.Contains(strings.ToLower(userQuery), "expire") {
		filter["expirationDate"] = map[string]interface{}{
			"$lt": dateutil.StartOfDay(now).Format(time.RFC3339),
		}
	}

	b.l.Debugf(ctx, "products filter built: %v", filter)
	return forceOwner(filter, ownerID), CollectionProducts, nil
}
