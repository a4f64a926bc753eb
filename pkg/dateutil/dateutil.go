// Package dateutil provides the UTC day-window math used by query builders
// and analytics tools. All windows are computed in UTC regardless of the
// server's local timezone, matching how bill dates are stored.
package dateutil

import (
	"fmt"
	"regexp"
	"time"
)

// DateFormatISO is the wire format for dates (YYYY-MM-DD).
const DateFormatISO = "2006-01-02"

// Date scopes accepted by analytics tools.
const (
	ScopeToday        = "today"
	ScopeYesterday    = "yesterday"
	ScopeSpecificDate = "specific_date"
)

var lastNDaysRe = regexp.MustCompile(`last\s+(\d+)\s+day`)

// StartOfDay returns midnight UTC at the start of t's day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last instant of t's day in UTC.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DayWindow resolves a date scope into a [start, end] window for one day.
// Unrecognized or missing scopes fall back to "today" without error; only a
// malformed specific_date is reported as an error so the caller can retry
// with corrected arguments.
func DayWindow(scope, specificDate string, now time.Time) (start, end time.Time, err error) {
	now = now.UTC()
	target := now

	switch scope {
	case ScopeToday, "":
		target = now
	case ScopeYesterday:
		target = now.AddDate(0, 0, -1)
	case ScopeSpecificDate:
		if specificDate == "" {
			target = now
			break
		}
		parsed, parseErr := time.Parse(DateFormatISO, specificDate)
		if parseErr != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid specific_date %q: expected YYYY-MM-DD", specificDate)
		}
		target = parsed
	default:
		target = now
	}

	return StartOfDay(target), EndOfDay(target), nil
}

// ParseLastNDays extracts N from phrasings like "last 7 days" or
// "sales in the last 1 day". Returns ok=false when no such phrase exists.
func ParseLastNDays(text string) (n int, ok bool) {
	matches := lastNDaysRe.FindStringSubmatch(text)
	if len(matches) != 2 {
		return 0, false
	}
	// The regex group is digits only, so Sscanf cannot fail here.
	fmt.Sscanf(matches[1], "%d", &n)
	if n <= 0 {
		return 0, false
	}
	return n, true
}
