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

const billsPromptTemplate = `Extract bill search criteria from the shop owner's message.

Fields:
- "customer_name": the customer the bill was for, if named.
- "date": a single calendar date as YYYY-MM-DD, only if the user names a
  specific date ("on 2026-08-12", "15th August"). Leave empty for relative
  phrases like "today" or "last 7 days".
- "min_amount" / "max_amount": bill total bounds, 0 if absent.

Leave fields empty or 0 when the message does not mention them. Do not guess.

Message:
%s`

var billsSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"customer_name": map[string]interface{}{"type": "string"},
		"date":          map[string]interface{}{"type": "string"},
		"min_amount":    map[string]interface{}{"type": "number"},
		"max_amount":    map[string]interface{}{"type": "number"},
	},
}

type billsBuilder struct {
	extractor extraction.Service
	l         pkgLog.Logger
}

// NewBillsBuilder creates the bills-domain query builder.
func NewBillsBuilder(extractor extraction.Service, l pkgLog.Logger) Builder {
	return &billsBuilder{extractor: extractor, l: l}
}

func (b *billsBuilder) Build(ctx context.Context, userQuery, ownerID string, now time.Time) (model.Filter, string, error) {
	var out struct {
		CustomerName string  `json:"customer_name"`
		Date         string  `json:"date"`
		MinAmount    float64 `json:"min_amount"`
		MaxAmount    float64 `json:"max_amount"`
	}
	if err := b.extractor.Extract(ctx, fmt.Sprintf(billsPromptTemplate, userQuery), billsSchema, &out); err != nil {
		return nil, "", &BuildError{Domain: CollectionBills, Err: err}
	}

	filter := model.Filter{}
	if out.CustomerName != "" {
		filter["customerName"] = regexMatch(out.CustomerName)
	}
	if cond := rangeFilter(out.MinAmount, out.MaxAmount); cond != nil {
		filter["totalAmount"] = cond
	}

	// Date precedence: an explicit date extracted by the model wins, then
	// the literal word "today", then a "last N days" phrase. Otherwise the
	// filter carries no date condition at all.
	lowered := strings.ToLower(userQuery)
	switch {
	case out.Date != "":
		day, err := time.Parse(dateutil.DateFormatISO, out.Date)
		if err != nil {
			return nil, "", &BuildError{Domain: CollectionBills, Err: fmt.Errorf("model returned unparseable date %q", out.Date)}
		}
		filter["date"] = dateRange(dateutil.StartOfDay(day), dateutil.EndOfDay(day))
	case strings.Contains(lowered, "today"):
		filter["date"] = dateRange(dateutil.StartOfDay(now), dateutil.EndOfDay(now))
	default:
		if n, ok := dateutil.ParseLastNDays(lowered); ok {
			filter["date"] = dateRange(now.UTC().AddDate(0, 0, -n), now.UTC())
		}
	}

	b.l.Debugf(ctx, "bills filter built: %v", filter)
	return forceOwner(filter, ownerID), CollectionBills, nil
}
