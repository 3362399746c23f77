package client

import (
	"context"
	"errors"
	"sync"

	"github.com/spec-kit/society-portal/internal/api/dto"
)

// ErrPaymentDeclined is returned when the confirmation callback rejects a
// payment before anything is sent.
var ErrPaymentDeclined = errors.New("payment not confirmed")

// ErrPaymentInFlight is returned when a pay attempt targets a bill whose
// previous pay request has not completed yet. Other bills stay payable.
var ErrPaymentInFlight = errors.New("payment already in progress for this bill")

// Partition is the pending/paid split of a bill list with its totals. It is
// pure data, recomputed from a fetched list; no cached aggregate can drift
// from source data.
type Partition struct {
	Pending   []dto.BillResponse
	Paid      []dto.BillResponse
	TotalDue  float64
	TotalPaid float64
}

// PartitionBills splits bills by status and sums both sides. The split is
// exhaustive and disjoint: TotalDue + TotalPaid equals the sum over the
// whole list.
func PartitionBills(bills []dto.BillResponse) Partition {
	p := Partition{
		Pending: make([]dto.BillResponse, 0, len(bills)),
		Paid:    make([]dto.BillResponse, 0, len(bills)),
	}
	for _, bill := range bills {
		if bill.Status == "Paid" {
			p.Paid = append(p.Paid, bill)
			p.TotalPaid += bill.Amount
		} else {
			p.Pending = append(p.Pending, bill)
			p.TotalDue += bill.Amount
		}
	}
	return p
}

// ConfirmFunc asks for interactive confirmation before a payment is sent.
type ConfirmFunc func(bill dto.BillResponse) bool

// BillView is the resident-side bill surface. Listing is scoped server-side
// to the authenticated resident; the client sends only the bearer token and
// performs no identity filtering of its own.
type BillView struct {
	client *Client

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewBillView builds the view.
func NewBillView(client *Client) *BillView {
	return &BillView{
		client:   client,
		inFlight: make(map[string]struct{}),
	}
}

// ListOwnBills fetches the caller's bills and their partition.
func (v *BillView) ListOwnBills(ctx context.Context) ([]dto.BillResponse, Partition, error) {
	var bills []dto.BillResponse
	if err := v.client.Get(ctx, "/api/resident/bills", &bills); err != nil {
		return nil, Partition{}, err
	}
	return bills, PartitionBills(bills), nil
}

// Pay settles one bill. The flow is: confirm, lock the bill id for the
// duration of the request, send, then re-fetch. There is no optimistic
// update; the status flips only once the re-fetch confirms it server-side.
// On failure the fetched state is untouched and the error carries the
// server's message.
func (v *BillView) Pay(ctx context.Context, billID string, confirm ConfirmFunc) ([]dto.BillResponse, Partition, error) {
	bills, _, err := v.ListOwnBills(ctx)
	if err != nil {
		return nil, Partition{}, err
	}

	var target *dto.BillResponse
	for i := range bills {
		if bills[i].ID == billID {
			target = &bills[i]
			break
		}
	}
	if target == nil {
		return nil, Partition{}, errors.New("bill not found")
	}

	if confirm != nil && !confirm(*target) {
		return nil, Partition{}, ErrPaymentDeclined
	}

	if !v.lock(billID) {
		return nil, Partition{}, ErrPaymentInFlight
	}
	defer v.unlock(billID)

	if err := v.client.Post(ctx, "/api/resident/pay", dto.PayRequest{BillID: billID}, nil); err != nil {
		return nil, Partition{}, fallbackMessage(err, "payment failed")
	}

	return v.ListOwnBills(ctx)
}

func (v *BillView) lock(billID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, busy := v.inFlight[billID]; busy {
		return false
	}
	v.inFlight[billID] = struct{}{}
	return true
}

func (v *BillView) unlock(billID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.inFlight, billID)
}
