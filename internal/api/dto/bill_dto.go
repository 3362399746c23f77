package dto

import "time"

// CreateBillRequest payload for raising a maintenance bill.
type CreateBillRequest struct {
	ResidentID  string  `json:"residentId"`
	Amount      float64 `json:"amount"`
	Month       string  `json:"month"`
	Year        int     `json:"year"`
	DueDate     string  `json:"dueDate"`
	Description string  `json:"description,omitempty"`
}

// BillResponse is one bill on the wire. Resident name and flat are filled on
// the admin listing only.
type BillResponse struct {
	ID           string     `json:"id"`
	ResidentID   string     `json:"residentId"`
	ResidentName string     `json:"residentName,omitempty"`
	FlatNumber   string     `json:"flatNumber,omitempty"`
	Amount       float64    `json:"amount"`
	Month        string     `json:"month"`
	Year         int        `json:"year"`
	DueDate      time.Time  `json:"dueDate"`
	Status       string     `json:"status"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"createdAt"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`
}

// PayRequest payload for settling a bill.
type PayRequest struct {
	BillID string `json:"billId"`
}

// PaymentEntry is one row of the dashboard's recent-payments feed.
type PaymentEntry struct {
	ID           string    `json:"id"`
	ResidentName string    `json:"residentName"`
	FlatNumber   string    `json:"flatNumber"`
	Amount       float64   `json:"amount"`
	PaidAt       time.Time `json:"paidAt"`
}

// StatsResponse is the admin dashboard aggregate.
type StatsResponse struct {
	TotalReceived  float64        `json:"totalReceived"`
	PendingAmount  float64        `json:"pendingAmount"`
	TotalResidents int            `json:"totalResidents"`
	RecentPayments []PaymentEntry `json:"recentPayments"`
}
