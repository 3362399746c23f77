package events

import (
	"time"

	"github.com/spec-kit/society-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventResidentRegistered EventType = "resident_registered"
	EventBillCreated        EventType = "bill_created"
	EventBillPaid           EventType = "bill_paid"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role      domain.Role `json:"role"`
	AccountID string      `json:"account_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ResidentRegisteredPayload payload.
type ResidentRegisteredPayload struct {
	ResidentID string `json:"resident_id"`
	Email      string `json:"email"`
	FlatNumber string `json:"flat_number,omitempty"`
}

// BillCreatedPayload payload.
type BillCreatedPayload struct {
	BillID     string  `json:"bill_id"`
	ResidentID string  `json:"resident_id"`
	Amount     float64 `json:"amount"`
	Month      string  `json:"month"`
	Year       int     `json:"year"`
}

// BillPaidPayload payload.
type BillPaidPayload struct {
	BillID     string  `json:"bill_id"`
	ResidentID string  `json:"resident_id"`
	Amount     float64 `json:"amount"`
	PaymentID  string  `json:"payment_id"`
}
