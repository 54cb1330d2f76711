package domain

import "time"

// Order is a single transaction. Only Date and Amount take part in analytics;
// the remaining fields are carried through untouched.
type Order struct {
	ID       string    // #1234
	Customer string    // John Doe
	Product  string    // Smartphone X
	Status   string    // Delivered
	Amount   float64   // 899
	Date     time.Time // 2023-05-12
}

type OrderStats struct {
	OrdersCount    int64
	FirstOrderDate *time.Time
	LastOrderDate  *time.Time
}
