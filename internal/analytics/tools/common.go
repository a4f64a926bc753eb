// Package tools implements the analytics computations exposed to the agent.
package tools

import (
	"fmt"
	"time"

	"inventory-assistant/internal/model"
)

// OwnerParam is the argument key the orchestrator injects into every call.
const OwnerParam = "owner_id"

func argString(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// argInt reads an integer argument. Function-call args arrive as float64
// after JSON decoding.
func argInt(params map[string]interface{}, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	}
	return fallback
}

func ownerOf(params map[string]interface{}) (string, error) {
	owner := argString(params, OwnerParam)
	if owner == "" {
		return "", fmt.Errorf("missing %s", OwnerParam)
	}
	return owner, nil
}

// dateWindowFilter builds the bills filter for a [start, end] window.
// Bill dates are RFC 3339 UTC strings, so string comparison orders them.
func dateWindowFilter(start, end time.Time) model.Filter {
	return model.Filter{
		"date": map[string]interface{}{
			"$gte": start.UTC().Format(time.RFC3339),
			"$lte": end.UTC().Format(time.RFC3339),
		},
	}
}

func numField(record map[string]interface{}, key string) float64 {
	switch v := record[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// billItems returns the line items of a bill record.
func billItems(bill model.Record) []map[string]interface{} {
	raw, ok := bill["items"].([]interface{})
	if !ok {
		return nil
	}
	items := make([]map[string]interface{}, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.(map[string]interface{}); ok {
			items = append(items, item)
		}
	}
	return items
}
