package store

import "time"

type OrderStats struct {
	OrdersCount    int64
	FirstOrderDate *time.Time
	LastOrderDate  *time.Time
}

type OrderRecord struct {
	ID        string
	Customer  string
	Product   string
	Status    string
	Amount    float64
	OrderDate time.Time
}
