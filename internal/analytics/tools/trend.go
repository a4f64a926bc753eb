package tools

import (
	"context"
	"sort"
	"time"

	"inventory-assistant/internal/query"
	"inventory-assistant/internal/store"
	"inventory-assistant/pkg/dateutil"
	pkgLog "inventory-assistant/pkg/log"
)

const defaultTrendDays = 7

// TrendTool reports a per-day sales breakdown over a trailing window.
type TrendTool struct {
	store store.Executor
	l     pkgLog.Logger
	now   func() time.Time
}

// NewTrendTool creates the get_last_n_days_sales tool.
func NewTrendTool(st store.Executor, l pkgLog.Logger, now func() time.Time) *TrendTool {
	return &TrendTool{store: st, l: l, now: now}
}

func (t *TrendTool) Name() string {
	return "get_last_n_days_sales"
}

func (t *TrendTool) Description() string {
	return "Get a day-by-day sales breakdown for the last N days, including the best day and the average per selling day."
}

func (t *TrendTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"days": map[string]interface{}{
				"type":        "integer",
				"description": "window size in days, default 7",
			},
		},
	}
}

func (t *TrendTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	owner, err := ownerOf(params)
	if err != nil {
		return nil, err
	}
	days := argInt(params, "days", defaultTrendDays)

	now := t.now().UTC()
	start := dateutil.StartOfDay(now.AddDate(0, 0, -(days - 1)))
	end := dateutil.EndOfDay(now)

	bills := t.store.Find(ctx, query.CollectionBills, dateWindowFilter(start, end), owner)

	perDay := make(map[string]float64, days)
	billsPerDay := make(map[string]int, days)
	for _, bill := range bills {
		billDate, ok := bill["date"].(string)
		if !ok || len(billDate) < len(dateutil.DateFormatISO) {
			continue
		}
		day := billDate[:len(dateutil.DateFormatISO)]
		perDay[day] += numField(bill, "totalAmount")
		billsPerDay[day]++
	}

	// Only days that actually had sales appear in the breakdown; an
	// all-quiet window yields an empty list, not N zero rows.
	sellingDays := make([]string, 0, len(perDay))
	for day := range perDay {
		sellingDays = append(sellingDays, day)
	}
	sort.Strings(sellingDays)

	daily := make([]map[string]interface{}, 0, len(sellingDays))
	total := 0.0
	var bestDate interface{}
	bestTotal := 0.0
	for _, day := range sellingDays {
		dayTotal := perDay[day]
		daily = append(daily, map[string]interface{}{
			"date":        day,
			"total_sales": dayTotal,
			"bill_count":  billsPerDay[day],
		})
		total += dayTotal
		if dayTotal > bestTotal {
			bestTotal = dayTotal
			bestDate = day
		}
	}

	// Average over selling days only, so closed days don't drag the
	// number down.
	avg := 0.0
	if len(sellingDays) > 0 {
		avg = total / float64(len(sellingDays))
	}

	t.l.Debugf(ctx, "get_last_n_days_sales: %d bills over %d days totaling %.2f", len(bills), days, total)
	return map[string]interface{}{
		"daily":       daily,
		"total_sales": total,
		"avg_per_day": avg,
		"best_day": map[string]interface{}{
			"date":        bestDate,
			"total_sales": bestTotal,
		},
		"window_days": days,
	}, nil
}
