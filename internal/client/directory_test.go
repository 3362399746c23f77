package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/society-portal/internal/api/dto"
	"github.com/spec-kit/society-portal/internal/client"
	"github.com/spec-kit/society-portal/internal/config"
	"github.com/spec-kit/society-portal/internal/domain"
	"github.com/spec-kit/society-portal/internal/session"
)

func adminClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Set(&session.Principal{
		ID: "a1", Name: "Admin", Role: domain.RoleAdmin, Token: "admin-token",
	}))
	return client.New(config.ClientConfig{BaseURL: srv.URL, RequestTimeoutSeconds: 5}, store)
}

func TestCreateBillValidation(t *testing.T) {
	directory := client.NewBillDirectory(adminClient(t, http.NewServeMux()))

	_, _, err := directory.CreateBill(t.Context(), client.BillForm{
		ResidentID: "r1", Amount: -10, DueDate: time.Now(),
	})
	assert.ErrorContains(t, err, "amount must be positive")

	_, _, err = directory.CreateBill(t.Context(), client.BillForm{
		ResidentID: "r1", Amount: 500,
	})
	assert.ErrorContains(t, err, "due date required")
}

func TestCreateBillRefetchesList(t *testing.T) {
	listCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/bills", func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateBillRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 500.0, req.Amount)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.BillResponse{ID: "b1", Amount: req.Amount, Status: "Unpaid"})
	})
	mux.HandleFunc("GET /api/admin/bills", func(w http.ResponseWriter, r *http.Request) {
		listCalls++
		_ = json.NewEncoder(w).Encode([]dto.BillResponse{{ID: "b1", Amount: 500, Status: "Unpaid"}})
	})

	directory := client.NewBillDirectory(adminClient(t, mux))

	created, bills, err := directory.CreateBill(t.Context(), client.BillForm{
		ResidentID: "r1", Amount: 500, Month: "January", Year: 2026,
		DueDate: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "b1", created.ID)
	assert.Len(t, bills, 1)
	assert.Equal(t, 1, listCalls, "create must resynchronize from the server")
}

func TestCreateResidentDefaultsEmptyPassword(t *testing.T) {
	var submitted dto.RegisterRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.PrincipalResponse{ID: "r2", Role: "resident", Token: "t"})
	})
	mux.HandleFunc("GET /api/admin/residents", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]dto.ResidentResponse{{ID: "r2", Name: "New"}})
	})

	apiClient := adminClient(t, mux)
	directory := client.NewResidentDirectory(apiClient, client.NewGateway(apiClient), "Resident@123", zap.NewNop())

	residents, err := directory.CreateResident(t.Context(), client.ResidentForm{
		Name: "New Resident", Email: "new@society.test", FlatNumber: "C-101",
	})
	require.NoError(t, err)
	assert.Len(t, residents, 1)

	assert.Equal(t, "Resident@123", submitted.Password, "empty password must submit the fixed default, not empty string")
	assert.Equal(t, "resident", submitted.Role)
}

func TestCreateResidentKeepsAdminSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.PrincipalResponse{ID: "r2", Role: "resident", Token: "resident-token"})
	})
	mux.HandleFunc("GET /api/admin/residents", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]dto.ResidentResponse{})
	})

	apiClient := adminClient(t, mux)
	directory := client.NewResidentDirectory(apiClient, client.NewGateway(apiClient), "Resident@123", zap.NewNop())

	_, err := directory.CreateResident(t.Context(), client.ResidentForm{
		Name: "New", Email: "new@society.test", FlatNumber: "C-101", Password: "chosen",
	})
	require.NoError(t, err)

	principal, ok := apiClient.Session().Get()
	require.True(t, ok)
	assert.Equal(t, "admin-token", principal.Token, "registering a resident must not replace the admin session")
}

func TestCreateResidentSurfacesInlineError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"CONFLICT","message":"email already registered"}}`))
	})

	apiClient := adminClient(t, mux)
	directory := client.NewResidentDirectory(apiClient, client.NewGateway(apiClient), "Resident@123", zap.NewNop())

	_, err := directory.CreateResident(t.Context(), client.ResidentForm{
		Name: "Dup", Email: "dup@society.test", FlatNumber: "C-102",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "email already registered")
}
