package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
)

// Granularity is the time unit orders are bucketed by.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity never fails: unknown values resolve to GranularityDay.
func ParseGranularity(s string) Granularity {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case GranularityWeek, GranularityMonth:
		return g
	default:
		return GranularityDay
	}
}

// PeriodKey names the bucket a date falls into.
//
//	day:   2023-05-12
//	week:  2023-W19
//	month: 2023-5
//
// Week and month numbers are not zero padded, so keys from those
// granularities do not sort chronologically once numbers reach two digits.
func PeriodKey(date time.Time, g Granularity) string {
	switch g {
	case GranularityWeek:
		return fmt.Sprintf("%d-W%d", date.Year(), WeekNumber(date))
	case GranularityMonth:
		return fmt.Sprintf("%d-%d", date.Year(), int(date.Month()))
	default:
		return date.Format(time.DateOnly)
	}
}

// WeekNumber counts weeks from January 1st, where the first week is the
// (possibly partial) Sunday-started week containing January 1st.
func WeekNumber(date time.Time) int {
	jan1 := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
	pastDaysOfYear := date.YearDay() - 1
	// ceil(n / 7) for positive n
	n := pastDaysOfYear + int(jan1.Weekday()) + 1
	return (n + 6) / 7
}

// GroupByPeriod folds orders into one bucket per period key. Orders keep
// their input order inside a bucket and buckets are sorted by key using
// plain string comparison.
func GroupByPeriod(orders []domain.Order, g Granularity) []domain.PeriodBucket {
	index := make(map[string]int)
	buckets := make([]domain.PeriodBucket, 0)

	for _, order := range orders {
		key := PeriodKey(order.Date, g)

		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, domain.PeriodBucket{Period: key})
		}

		buckets[i].Orders = append(buckets[i].Orders, order)
		buckets[i].Revenue += order.Amount
		buckets[i].Count++
	}

	slices.SortFunc(buckets, func(a, b domain.PeriodBucket) int {
		return strings.Compare(a.Period, b.Period)
	})
	return buckets
}
