package analytics

import (
	"math"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
)

// PercentageChange returns the relative change from previous to current in
// percent. Growth from zero is reported as a flat 100 regardless of size and
// zero-to-zero as 0.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / math.Abs(previous) * 100
}

// ComparePeriods reduces two bucket sets into revenue, order count and
// average order value metrics.
func ComparePeriods(current, previous []domain.PeriodBucket) domain.PeriodComparison {
	currentRevenue, currentOrders := totals(current)
	previousRevenue, previousOrders := totals(previous)

	currentAOV := averageOrderValue(currentRevenue, currentOrders)
	previousAOV := averageOrderValue(previousRevenue, previousOrders)

	return domain.PeriodComparison{
		Revenue: newMetric(currentRevenue, previousRevenue),
		Orders:  newMetric(float64(currentOrders), float64(previousOrders)),
		AOV:     newMetric(currentAOV, previousAOV),
	}
}

func totals(buckets []domain.PeriodBucket) (revenue float64, orders int) {
	for _, b := range buckets {
		revenue += b.Revenue
		orders += b.Count
	}
	return revenue, orders
}

func averageOrderValue(revenue float64, orders int) float64 {
	if orders <= 0 {
		return 0
	}
	return revenue / float64(orders)
}

func newMetric(current, previous float64) domain.ComparisonMetric {
	return domain.ComparisonMetric{
		Current:  current,
		Previous: previous,
		Change:   PercentageChange(current, previous),
	}
}
