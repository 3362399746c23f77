package domain

import "time"

// Payment records a completed bill payment. It backs the admin dashboard's
// recent-payments feed.
type Payment struct {
	ID           string
	BillID       string
	ResidentID   string
	ResidentName string
	FlatNumber   string
	Amount       float64
	PaidAt       time.Time
}
