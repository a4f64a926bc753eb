package tools

import (
	"context"
	"sort"
	"strings"

	"inventory-assistant/internal/model"
	"inventory-assistant/internal/query"
	"inventory-assistant/internal/store"
	pkgLog "inventory-assistant/pkg/log"
)

const defaultTopK = 5

// PerformanceTool ranks products by total quantity sold across the
// owner's entire bill history.
type PerformanceTool struct {
	store store.Executor
	l     pkgLog.Logger
}

// NewPerformanceTool creates the get_product_performance tool.
func NewPerformanceTool(st store.Executor, l pkgLog.Logger) *PerformanceTool {
	return &PerformanceTool{store: st, l: l}
}

func (t *PerformanceTool) Name() string {
	return "get_product_performance"
}

func (t *PerformanceTool) Description() string {
	return "Get the best-selling products of all time, ranked by quantity sold, then by revenue."
}

func (t *PerformanceTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"top_k": map[string]interface{}{
				"type":        "integer",
				"description": "how many products to return, default 5",
			},
		},
	}
}

func (t *PerformanceTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	owner, err := ownerOf(params)
	if err != nil {
		return nil, err
	}
	topK := argInt(params, "top_k", defaultTopK)

	// All-time ranking: no date condition, only the owner scope the
	// executor forces on.
	bills := t.store.Find(ctx, query.CollectionBills, model.Filter{}, owner)

	type perf struct {
		name     string
		quantity float64
		revenue  float64
	}
	byProduct := map[string]*perf{}
	for _, bill := range bills {
		for _, item := range billItems(bill) {
			name := argString(item, "name")
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			entry, ok := byProduct[key]
			if !ok {
				entry = &perf{name: name}
				byProduct[key] = entry
			}
			qty := numField(item, "quantity")
			entry.quantity += qty
			entry.revenue += qty * numField(item, "price")
		}
	}

	ranked := make([]*perf, 0, len(byProduct))
	for _, entry := range byProduct {
		ranked = append(ranked, entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].quantity != ranked[j].quantity {
			return ranked[i].quantity > ranked[j].quantity
		}
		return ranked[i].revenue > ranked[j].revenue
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	products := make([]map[string]interface{}, 0, len(ranked))
	for _, entry := range ranked {
		products = append(products, map[string]interface{}{
			"name":          entry.name,
			"quantity_sold": entry.quantity,
			"revenue":       entry.revenue,
		})
	}

	t.l.Debugf(ctx, "get_product_performance: %d products ranked", len(products))
	return map[string]interface{}{
		"products": products,
	}, nil
}
