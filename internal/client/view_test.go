package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/society-portal/internal/api/dto"
	"github.com/spec-kit/society-portal/internal/client"
	"github.com/spec-kit/society-portal/internal/config"
	"github.com/spec-kit/society-portal/internal/domain"
	"github.com/spec-kit/society-portal/internal/session"
)

func bill(id string, amount float64, status string) dto.BillResponse {
	return dto.BillResponse{ID: id, Amount: amount, Status: status, Month: "January", Year: 2026}
}

func TestPartitionBills(t *testing.T) {
	tests := []struct {
		name          string
		bills         []dto.BillResponse
		wantDue       float64
		wantPaid      float64
		wantPendingN  int
		wantPaidCount int
	}{
		{
			name: "mixed list",
			bills: []dto.BillResponse{
				bill("1", 500, "Unpaid"),
				bill("2", 750, "Paid"),
				bill("3", 250, "Unpaid"),
			},
			wantDue:       750,
			wantPaid:      750,
			wantPendingN:  2,
			wantPaidCount: 1,
		},
		{
			name:     "empty list has zero totals",
			bills:    nil,
			wantDue:  0,
			wantPaid: 0,
		},
		{
			name:          "all paid",
			bills:         []dto.BillResponse{bill("1", 100, "Paid"), bill("2", 200, "Paid")},
			wantPaid:      300,
			wantPaidCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := client.PartitionBills(tt.bills)
			assert.Equal(t, tt.wantDue, p.TotalDue)
			assert.Equal(t, tt.wantPaid, p.TotalPaid)
			assert.Len(t, p.Pending, tt.wantPendingN)
			assert.Len(t, p.Paid, tt.wantPaidCount)
		})
	}
}

func TestPartitionIsExhaustiveAndIdempotent(t *testing.T) {
	bills := []dto.BillResponse{
		bill("1", 500, "Unpaid"),
		bill("2", 300, "Paid"),
		bill("3", 199.5, "Unpaid"),
		bill("4", 0.5, "Paid"),
	}

	var total float64
	for _, b := range bills {
		total += b.Amount
	}

	first := client.PartitionBills(bills)
	second := client.PartitionBills(bills)

	assert.Equal(t, total, first.TotalDue+first.TotalPaid)
	assert.Len(t, bills, len(first.Pending)+len(first.Paid))
	assert.Equal(t, first, second)
}

// testClient wires a client against an httptest server with an authenticated
// resident session.
func testClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Set(&session.Principal{
		ID: "r1", Name: "Asha", Role: domain.RoleResident, Token: "test-token",
	}))

	return client.New(config.ClientConfig{BaseURL: srv.URL, RequestTimeoutSeconds: 5}, store)
}

func TestPaySuccessRefetchesAndFlipsTotals(t *testing.T) {
	var mu sync.Mutex
	paid := false

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/resident/bills", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		mu.Lock()
		status := "Unpaid"
		if paid {
			status = "Paid"
		}
		mu.Unlock()
		_ = json.NewEncoder(w).Encode([]dto.BillResponse{bill("b1", 500, status)})
	})
	mux.HandleFunc("POST /api/resident/pay", func(w http.ResponseWriter, r *http.Request) {
		var req dto.PayRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "b1", req.BillID)
		mu.Lock()
		paid = true
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(bill("b1", 500, "Paid"))
	})

	view := client.NewBillView(testClient(t, mux))

	_, before, err := view.ListOwnBills(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 500.0, before.TotalDue)
	assert.Equal(t, 0.0, before.TotalPaid)

	confirmed := false
	_, after, err := view.Pay(t.Context(), "b1", func(b dto.BillResponse) bool {
		confirmed = true
		assert.Equal(t, 500.0, b.Amount)
		return true
	})
	require.NoError(t, err)
	assert.True(t, confirmed, "payment must ask for confirmation")
	assert.Equal(t, 0.0, after.TotalDue)
	assert.Equal(t, 500.0, after.TotalPaid)
}

func TestPayFailureLeavesStateUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/resident/bills", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]dto.BillResponse{bill("b1", 500, "Unpaid")})
	})
	mux.HandleFunc("POST /api/resident/pay", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"CONFLICT","message":"bill already paid"}}`))
	})

	view := client.NewBillView(testClient(t, mux))

	_, _, err := view.Pay(t.Context(), "b1", func(dto.BillResponse) bool { return true })
	require.Error(t, err)
	assert.ErrorContains(t, err, "bill already paid")

	// Status is untouched: the bill is still Unpaid on re-fetch.
	_, partition, err := view.ListOwnBills(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 500.0, partition.TotalDue)
	assert.Equal(t, 0.0, partition.TotalPaid)
}

func TestPayDeclinedSendsNothing(t *testing.T) {
	posted := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/resident/bills", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]dto.BillResponse{bill("b1", 500, "Unpaid")})
	})
	mux.HandleFunc("POST /api/resident/pay", func(w http.ResponseWriter, r *http.Request) {
		posted = true
	})

	view := client.NewBillView(testClient(t, mux))

	_, _, err := view.Pay(t.Context(), "b1", func(dto.BillResponse) bool { return false })
	assert.ErrorIs(t, err, client.ErrPaymentDeclined)
	assert.False(t, posted, "declined payment must not hit the server")
}

func TestPayInFlightLockIsPerBill(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var enteredOnce sync.Once

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/resident/bills", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]dto.BillResponse{
			bill("b1", 500, "Unpaid"),
			bill("b2", 300, "Unpaid"),
		})
	})
	mux.HandleFunc("POST /api/resident/pay", func(w http.ResponseWriter, r *http.Request) {
		var req dto.PayRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.BillID == "b1" {
			enteredOnce.Do(func() { close(entered) })
			<-release
		}
		_ = json.NewEncoder(w).Encode(bill(req.BillID, 500, "Paid"))
	})

	view := client.NewBillView(testClient(t, mux))
	ctx := t.Context()

	firstDone := make(chan error, 1)
	go func() {
		_, _, err := view.Pay(ctx, "b1", nil)
		firstDone <- err
	}()
	<-entered

	// A second attempt on the same bill is rejected while its request is
	// in flight.
	_, _, err := view.Pay(ctx, "b1", nil)
	assert.ErrorIs(t, err, client.ErrPaymentInFlight)

	// The lock is keyed by bill id; other bills stay payable.
	_, _, err = view.Pay(ctx, "b2", nil)
	assert.NoError(t, err)

	close(release)
	require.NoError(t, <-firstDone)
}

func TestPayUnknownBill(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/resident/bills", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]dto.BillResponse{})
	})

	view := client.NewBillView(testClient(t, mux))

	_, _, err := view.Pay(t.Context(), "missing", nil)
	assert.ErrorContains(t, err, "bill not found")
}
