package model_test

import (
	"testing"

	"inventory-assistant/internal/model"
)

func TestParseIntent(t *testing.T) {
	valid := []string{"products", "suppliers", "bills", "customers", "analytics", "chitchat"}
	for _, s := range valid {
		intent, ok := model.ParseIntent(s)
		if !ok || string(intent) != s {
			t.Errorf("ParseIntent(%q) = (%q, %v), want accepted", s, intent, ok)
		}
	}

	invalid := []string{"", "sales", "Products", "unknown", "products "}
	for _, s := range invalid {
		if _, ok := model.ParseIntent(s); ok {
			t.Errorf("ParseIntent(%q) accepted, want rejected", s)
		}
	}
}

func TestTotalRecords(t *testing.T) {
	state := model.TurnState{
		DBResults: map[string][]model.Record{
			"products": {{"name": "Rice"}, {"name": "Oil"}},
			"bills":    {},
		},
	}
	if got := state.TotalRecords(); got != 2 {
		t.Errorf("TotalRecords() = %d, want 2", got)
	}

	empty := model.TurnState{}
	if got := empty.TotalRecords(); got != 0 {
		t.Errorf("TotalRecords() on empty state = %d, want 0", got)
	}
}
