package api

import "time"

type Order struct {
	ID       string  `json:"id"`
	Customer string  `json:"customer"`
	Product  string  `json:"product"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Date     string  `json:"date" validate:"required"` // YYYY-MM-DD
}

type ImportResult struct {
	Imported int `json:"imported"`
}

type OrderStats struct {
	OrdersCount    int64      `json:"orders_count"`
	FirstOrderDate *time.Time `json:"first_order_date,omitempty"`
	LastOrderDate  *time.Time `json:"last_order_date,omitempty"`
}

type PeriodBucket struct {
	Period  string  `json:"period"`
	Orders  []Order `json:"orders"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

type ComparisonMetric struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

type PeriodComparison struct {
	Revenue ComparisonMetric `json:"revenue"`
	Orders  ComparisonMetric `json:"orders"`
	AOV     ComparisonMetric `json:"aov"`
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type RevenueSummary struct {
	Period        string           `json:"period"`
	Granularity   string           `json:"granularity"`
	Range         DateRange        `json:"range"`
	PreviousRange DateRange        `json:"previous_range"`
	Current       []PeriodBucket   `json:"current"`
	Previous      []PeriodBucket   `json:"previous"`
	Comparison    PeriodComparison `json:"comparison"`
	Forecast      []float64        `json:"forecast"`
	OrderForecast []float64        `json:"order_forecast"`
}

type ForecastRequest struct {
	Series  []float64 `json:"series"`
	Horizon *int      `json:"horizon,omitempty" validate:"omitempty,gte=0,lte=36"`
}

type ForecastResponse struct {
	Forecast []float64 `json:"forecast"`
}

type FormattedValue struct {
	Value string `json:"value"`
}

type Error struct {
	Error string `json:"error"`
}
