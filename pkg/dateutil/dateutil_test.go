package dateutil_test

import (
	"testing"
	"time"

	"inventory-assistant/pkg/dateutil"
)

var base = time.Date(2025, 3, 15, 13, 45, 12, 0, time.UTC)

func TestStartAndEndOfDay(t *testing.T) {
	start := dateutil.StartOfDay(base)
	if !start.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start of day: %v", start)
	}

	end := dateutil.EndOfDay(base)
	if end.Day() != 15 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("unexpected end of day: %v", end)
	}
	if !end.Before(start.AddDate(0, 0, 1)) {
		t.Errorf("end of day leaked into next day: %v", end)
	}
}

func TestDayWindow(t *testing.T) {
	t.Run("today", func(t *testing.T) {
		start, end, err := dateutil.DayWindow(dateutil.ScopeToday, "", base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start.Day() != 15 || end.Day() != 15 {
			t.Errorf("window not on today: %v .. %v", start, end)
		}
	})

	t.Run("yesterday", func(t *testing.T) {
		start, _, err := dateutil.DayWindow(dateutil.ScopeYesterday, "", base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start.Day() != 14 {
			t.Errorf("expected March 14, got %v", start)
		}
	})

	t.Run("specific date", func(t *testing.T) {
		start, _, err := dateutil.DayWindow(dateutil.ScopeSpecificDate, "2025-01-02", base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start.Year() != 2025 || start.Month() != time.January || start.Day() != 2 {
			t.Errorf("unexpected date: %v", start)
		}
	})

	t.Run("malformed specific date errors", func(t *testing.T) {
		_, _, err := dateutil.DayWindow(dateutil.ScopeSpecificDate, "02/01/2025", base)
		if err == nil {
			t.Error("expected error for malformed date")
		}
	})

	t.Run("unknown scope defaults to today", func(t *testing.T) {
		start, _, err := dateutil.DayWindow("last_quarter", "", base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start.Day() != 15 {
			t.Errorf("expected today fallback, got %v", start)
		}
	})
}

func TestParseLastNDays(t *testing.T) {
	cases := []struct {
		text string
		n    int
		ok   bool
	}{
		{"show bills from the last 7 days", 7, true},
		{"last 1 day please", 1, true},
		{"LAST 30 DAYS", 0, false}, // caller lowercases first
		{"what sold today", 0, false},
		{"last days", 0, false},
	}

	for _, tc := range cases {
		n, ok := dateutil.ParseLastNDays(tc.text)
		if ok != tc.ok || n != tc.n {
			t.Errorf("ParseLastNDays(%q) = (%d, %v), want (%d, %v)", tc.text, n, ok, tc.n, tc.ok)
		}
	}
}
