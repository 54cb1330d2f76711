// Package analytics buckets orders into periods, compares periods and
// projects short revenue forecasts. Every function here is pure: nothing
// reads the wall clock, performs I/O, or mutates its arguments.
package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
)

// Period names a reporting lookback.
type Period string

const (
	PeriodDaily     Period = "daily"
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
	// PeriodDefault is what every unrecognized period name resolves to.
	PeriodDefault Period = "default"
)

// ParsePeriod never fails: unknown names resolve to PeriodDefault.
func ParsePeriod(s string) Period {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return p
	default:
		return PeriodDefault
	}
}

// Clock supplies "now" to callers that default an end date.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// GetDateRange returns the lookback window ending at end.
func GetDateRange(period Period, end time.Time) domain.DateRange {
	var start time.Time
	switch period {
	case PeriodDaily:
		start = end.AddDate(0, 0, -7)
	case PeriodWeekly:
		start = end.AddDate(0, 0, -28)
	case PeriodMonthly:
		start = end.AddDate(0, -12, 0)
	case PeriodQuarterly:
		start = end.AddDate(0, -15, 0)
	case PeriodYearly:
		start = end.AddDate(-3, 0, 0)
	default:
		start = end.AddDate(0, 0, -30)
	}
	return domain.DateRange{Start: start, End: end}
}

// DateRangeAt resolves the window ending at the clock's current time.
func DateRangeAt(period Period, clock Clock) domain.DateRange {
	if clock == nil {
		clock = SystemClock
	}
	return GetDateRange(period, clock())
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate reads a calendar date. Date-only input is interpreted in UTC.
func ParseDate(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse %q: %w", s, domain.ErrInvalidDate)
}

// TruncateToDay drops the time-of-day component, keeping the location.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
