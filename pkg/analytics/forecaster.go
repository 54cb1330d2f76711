package analytics

import (
	"math"
	"slices"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
)

const (
	// DefaultHorizon is the number of periods projected when callers have no preference.
	DefaultHorizon = 3
	// MaxHorizon caps caller-supplied horizons at three years of monthly buckets.
	MaxHorizon = 36

	trendWindow = 6
)

// Forecast extends series by horizon points. Each point is the last observed
// value plus i times the mean step between the trailing six observations,
// rounded to a whole number and floored at zero. Series shorter than two
// points produce zeros.
func Forecast(series []float64, horizon int) []float64 {
	if horizon <= 0 {
		return []float64{}
	}

	out := make([]float64, horizon)
	if len(series) < 2 {
		return out
	}

	recent := series[max(0, len(series)-trendWindow):]

	var avgChange float64
	for i := 1; i < len(recent); i++ {
		avgChange += recent[i] - recent[i-1]
	}
	avgChange /= float64(len(recent) - 1)

	lastValue := series[len(series)-1]
	for i := range out {
		out[i] = math.Max(0, math.Round(lastValue+avgChange*float64(i+1)))
	}
	return out
}

// RevenueSeries extracts per-bucket revenue in bucket order.
func RevenueSeries(buckets []domain.PeriodBucket) []float64 {
	series := make([]float64, len(buckets))
	for i, b := range buckets {
		series[i] = b.Revenue
	}
	return series
}

// OrderSeries extracts per-bucket order counts in bucket order.
func OrderSeries(buckets []domain.PeriodBucket) []float64 {
	series := make([]float64, len(buckets))
	for i, b := range buckets {
		series[i] = float64(b.Count)
	}
	return series
}

// Chronological returns a copy of buckets ordered by their earliest order
// date. Period keys only sort by date while week and month numbers share a
// digit count, so trend consumers go through this first.
func Chronological(buckets []domain.PeriodBucket) []domain.PeriodBucket {
	sorted := slices.Clone(buckets)
	slices.SortStableFunc(sorted, func(a, b domain.PeriodBucket) int {
		return firstOrderDate(a).Compare(firstOrderDate(b))
	})
	return sorted
}

func firstOrderDate(b domain.PeriodBucket) time.Time {
	var first time.Time
	for _, o := range b.Orders {
		if first.IsZero() || o.Date.Before(first) {
			first = o.Date
		}
	}
	return first
}
