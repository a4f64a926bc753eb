package tools

import (
	"context"
	"strings"
	"time"

	"inventory-assistant/internal/model"
	"inventory-assistant/internal/query"
	"inventory-assistant/internal/store"
	"inventory-assistant/pkg/dateutil"
	pkgLog "inventory-assistant/pkg/log"
)

// ProfitTool reports profit or loss for a single day, costing each sold
// item against the product catalog.
type ProfitTool struct {
	store store.Executor
	l     pkgLog.Logger
	now   func() time.Time
}

// NewProfitTool creates the get_profit tool.
func NewProfitTool(st store.Executor, l pkgLog.Logger, now func() time.Time) *ProfitTool {
	return &ProfitTool{store: st, l: l, now: now}
}

func (t *ProfitTool) Name() string {
	return "get_profit"
}

func (t *ProfitTool) Description() string {
	return "Get profit or loss for one day, computed as revenue minus cost of goods sold."
}

func (t *ProfitTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date_scope": map[string]interface{}{
				"type": "string",
				"enum": []string{dateutil.ScopeToday, dateutil.ScopeYesterday, dateutil.ScopeSpecificDate},
			},
			"specific_date": map[string]interface{}{
				"type":        "string",
				"description": "YYYY-MM-DD, required when date_scope is specific_date",
			},
		},
	}
}

func (t *ProfitTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	owner, err := ownerOf(params)
	if err != nil {
		return nil, err
	}

	start, end, err := dateutil.DayWindow(argString(params, "date_scope"), argString(params, "specific_date"), t.now())
	if err != nil {
		return nil, err
	}

	bills := t.store.Find(ctx, query.CollectionBills, dateWindowFilter(start, end), owner)
	costs := t.costCatalog(ctx, owner)

	revenue := 0.0
	cost := 0.0
	for _, bill := range bills {
		revenue += numField(bill, "totalAmount")
		for _, item := range billItems(bill) {
			name := strings.ToLower(argString(item, "name"))
			unitCost, known := costs[name]
			if !known {
				// Unknown products cost zero, which inflates profit.
				// Logged so the catalog gap is visible.
				t.l.Warnf(ctx, "get_profit: no cost price for product %q, counting cost as 0", name)
			}
			cost += numField(item, "quantity") * unitCost
		}
	}

	profit := revenue - cost
	loss := 0.0
	if profit < 0 {
		loss = -profit
		profit = 0
	}

	return map[string]interface{}{
		"profit":        profit,
		"loss":          loss,
		"total_revenue": revenue,
		"total_cost":    cost,
		"bill_count":    len(bills),
		"date":          start.Format(dateutil.DateFormatISO),
	}, nil
}

// costCatalog maps lowercased product name to cost price for the owner.
func (t *ProfitTool) costCatalog(ctx context.Context, owner string) map[string]float64 {
	products := t.store.Find(ctx, query.CollectionProducts, model.Filter{}, owner)
	costs := make(map[string]float64, len(products))
	for _, product := range products {
		name := strings.ToLower(argString(product, "name"))
		if name == "" {
			continue
		}
		costs[name] = numField(product, "costPrice")
	}
	return costs
}
