package query

import (
	"time"

	"inventory-assistant/internal/model"
)

// regexMatch builds a case-insensitive substring condition.
func regexMatch(value string) map[string]interface{} {
	return map[string]interface{}{"$regex": value, "$options": "i"}
}

// rangeFilter builds a numeric range condition. Zero bounds are omitted;
// returns nil when both bounds are zero.
func rangeFilter(min, max float64) map[string]interface{} {
	cond := map[string]interface{}{}
	if min > 0 {
		cond["$gte"] = min
	}
	if max > 0 {
		cond["$lte"] = max
	}
	if len(cond) == 0 {
		return nil
	}
	return cond
}

// dateRange builds a [start, end] condition on a date field. Bill dates are
// stored as RFC 3339 UTC strings, so string comparison orders correctly.
func dateRange(start, end time.Time) map[string]interface{} {
	return map[string]interface{}{
		"$gte": start.UTC().Format(time.RFC3339),
		"$lte": end.UTC().Format(time.RFC3339),
	}
}

// forceOwner stamps the owner scope onto the filter, overwriting anything
// the model may have placed there.
func forceOwner(filter model.Filter, ownerID string) model.Filter {
	if filter == nil {
		filter = model.Filter{}
	}
	filter[model.OwnerField] = ownerID
	return filter
}
