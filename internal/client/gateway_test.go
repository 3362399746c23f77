package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/society-portal/internal/api/dto"
	"github.com/spec-kit/society-portal/internal/client"
	"github.com/spec-kit/society-portal/internal/config"
	"github.com/spec-kit/society-portal/internal/domain"
	"github.com/spec-kit/society-portal/internal/session"
)

func newGateway(t *testing.T, handler http.Handler) (*client.Gateway, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	apiClient := client.New(config.ClientConfig{BaseURL: srv.URL, RequestTimeoutSeconds: 5}, store)
	return client.NewGateway(apiClient), store
}

func TestLoginStoresPrincipal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@society.test", req.Email)
		_ = json.NewEncoder(w).Encode(dto.PrincipalResponse{
			ID: "a1", Name: "Admin", Email: req.Email, Role: "admin", Token: "jwt-token",
		})
	})

	gateway, store := newGateway(t, mux)

	principal, err := gateway.Login(t.Context(), "admin@society.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, principal.Role)

	stored, ok := store.Get()
	require.True(t, ok, "principal must be persisted on login")
	assert.Equal(t, "jwt-token", stored.Token)
	assert.Equal(t, client.PathAdminHome, client.RoleHome(stored.Role))
}

func TestLoginSurfacesServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"invalid credentials"}}`))
	})

	gateway, store := newGateway(t, mux)

	_, err := gateway.Login(t.Context(), "admin@society.test", "wrong")
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid credentials")

	_, ok := store.Get()
	assert.False(t, ok, "failed login must not create a session")
}

func TestLoginFallsBackToGenericMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	gateway, _ := newGateway(t, mux)

	_, err := gateway.Login(t.Context(), "a@b.c", "pw")
	require.Error(t, err)
	assert.ErrorContains(t, err, "login failed")
}

func TestRegisterStoresPrincipal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req dto.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.PrincipalResponse{
			ID: "r1", Name: req.Name, Email: req.Email, Role: req.Role,
			FlatNumber: req.FlatNumber, Token: "jwt-token",
		})
	})

	gateway, store := newGateway(t, mux)

	principal, err := gateway.Register(t.Context(), dto.RegisterRequest{
		Name: "Asha", Email: "asha@society.test", Password: "pw",
		Role: "resident", FlatNumber: "B-204",
	})
	require.NoError(t, err)
	assert.Equal(t, "B-204", principal.FlatNumber)

	stored, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, domain.RoleResident, stored.Role)
}

func TestLogoutClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.PrincipalResponse{ID: "a1", Role: "admin", Token: "tok"})
	})

	gateway, store := newGateway(t, mux)

	_, err := gateway.Login(t.Context(), "a@b.c", "pw")
	require.NoError(t, err)

	require.NoError(t, gateway.Logout())
	_, ok := store.Get()
	assert.False(t, ok)
}
