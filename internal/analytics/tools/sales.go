package tools

import (
	"context"
	"time"

	"inventory-assistant/internal/query"
	"inventory-assistant/internal/store"
	"inventory-assistant/pkg/dateutil"
	pkgLog "inventory-assistant/pkg/log"
)

// SalesTool reports total sales and bill count for a single day.
type SalesTool struct {
	store store.Executor
	l     pkgLog.Logger
	now   func() time.Time
}

// NewSalesTool creates the get_sales tool. The clock is injected so tests
// can pin "today".
func NewSalesTool(st store.Executor, l pkgLog.Logger, now func() time.Time) *SalesTool {
	return &SalesTool{store: st, l: l, now: now}
}

func (t *SalesTool) Name() string {
	return "get_sales"
}

func (t *SalesTool) Description() string {
	return "Get total sales amount and number of bills for one day: today, yesterday, or a specific date."
}

func (t *SalesTool) Parameters() map[string]interface{} {
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

func (t *SalesTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	owner, err := ownerOf(params)
	if err != nil {
		return nil, err
	}

	start, end, err := dateutil.DayWindow(argString(params, "date_scope"), argString(params, "specific_date"), t.now())
	if err != nil {
		return nil, err
	}

	bills := t.store.Find(ctx, query.CollectionBills, dateWindowFilter(start, end), owner)

	total := 0.0
	for _, bill := range bills {
		total += numField(bill, "totalAmount")
	}

	t.l.Debugf(ctx, "get_sales: %d bills totaling %.2f on %s", len(bills), total, start.Format(dateutil.DateFormatISO))
	return map[string]interface{}{
		"total_sales": total,
		"bill_count":  len(bills),
		"date":        start.Format(dateutil.DateFormatISO),
	}, nil
}
