package domain

import "time"

// BillStatus enumerates lifecycle states for maintenance bills. The only
// transition is Unpaid -> Paid, exactly once.
type BillStatus string

const (
	BillStatusUnpaid BillStatus = "Unpaid"
	BillStatusPaid   BillStatus = "Paid"
)

// Bill is one resident's maintenance charge for a given month/year.
type Bill struct {
	ID          string
	ResidentID  string
	Amount      float64
	Month       string
	Year        int
	DueDate     time.Time
	Status      BillStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PaidAt      *time.Time
}
