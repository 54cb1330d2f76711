// Package locale renders dates and money for humans. Analytics code never
// depends on it; presentation layers pick a Formatter and pass values in.
package locale

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/analytics"
)

const (
	DefaultLocale   = "en-US"
	DefaultCurrency = "USD"
)

type DateStyle string

const (
	DateStyleShort  DateStyle = "short"
	DateStyleMedium DateStyle = "medium"
	DateStyleLong   DateStyle = "long"
)

// ParseDateStyle never fails: unknown styles resolve to DateStyleMedium.
func ParseDateStyle(s string) DateStyle {
	switch style := DateStyle(strings.ToLower(strings.TrimSpace(s))); style {
	case DateStyleShort, DateStyleLong:
		return style
	default:
		return DateStyleMedium
	}
}

// Formatter renders values for one locale.
type Formatter interface {
	Tag() string
	FormatDate(date time.Time, style DateStyle) string
	// FormatCurrency renders value rounded to whole units. An empty code
	// means DefaultCurrency.
	FormatCurrency(value float64, code string) (string, error)
}

// FormatDateString parses value as a calendar date and formats it.
func FormatDateString(f Formatter, value string, style DateStyle) (string, error) {
	date, err := analytics.ParseDate(value)
	if err != nil {
		return "", fmt.Errorf("format date: %w", err)
	}
	return f.FormatDate(date, style), nil
}
