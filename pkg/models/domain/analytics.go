package domain

import "time"

// PeriodBucket holds the totals for every order sharing one period key.
type PeriodBucket struct {
	Period  string
	Orders  []Order
	Revenue float64
	Count   int
}

type ComparisonMetric struct {
	Current  float64
	Previous float64
	Change   float64 // percent
}

type PeriodComparison struct {
	Revenue ComparisonMetric
	Orders  ComparisonMetric
	AOV     ComparisonMetric
}

// DateRange is a lookback window anchored at End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of whole days covered by the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// RevenueSummary is the current window compared against the window right before it.
type RevenueSummary struct {
	Period        string
	Granularity   string
	Range         DateRange
	PreviousRange DateRange
	Current       []PeriodBucket
	Previous      []PeriodBucket
	Comparison    PeriodComparison
	Forecast      []float64
	// OrderForecast projects order counts over the same horizon as Forecast.
	OrderForecast []float64
}
