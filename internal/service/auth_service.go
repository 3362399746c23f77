package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/society-portal/internal/auth"
	"github.com/spec-kit/society-portal/internal/config"
	"github.com/spec-kit/society-portal/internal/domain"
	"github.com/spec-kit/society-portal/internal/events"
	"github.com/spec-kit/society-portal/internal/observability"
	"github.com/spec-kit/society-portal/internal/repository"
	apperrors "github.com/spec-kit/society-portal/pkg/util"
)

// Postgres SQLSTATE for unique_violation.
const uniqueViolationCode = "23505"

// AuthService coordinates registration and login flows.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// RegisterInput describes an account registration payload. Role defaults to
// resident when empty; flat number is required for residents.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Contact    string
	Role       domain.Role
	FlatNumber string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, accounts repository.AccountRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		accounts:   accounts,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account and returns it with a signed token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, string, time.Time, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Role == "" {
		input.Role = domain.RoleResident
	}
	if !input.Role.Valid() {
		return nil, "", time.Time{}, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if input.Role == domain.RoleResident && strings.TrimSpace(input.FlatNumber) == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("flat number required for residents", nil)
	}

	if _, err := s.accounts.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	account := &domain.Account{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Contact:      strings.TrimSpace(input.Contact),
	}
	if input.Role == domain.RoleResident {
		flat := strings.TrimSpace(input.FlatNumber)
		account.FlatNumber = &flat
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		// A concurrent registration can win the race past the GetByEmail
		// check; the unique constraint reports it.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
		}
		return nil, "", time.Time{}, err
	}

	if account.IsResident() {
		observability.ObserveResidentRegistered()
		s.publish(ctx, events.Event{
			Type:  events.EventResidentRegistered,
			Actor: events.Actor{Role: account.Role, AccountID: account.ID},
			Payload: events.ResidentRegisteredPayload{
				ResidentID: account.ID,
				Email:      account.Email,
				FlatNumber: flatNumberOrEmpty(account),
			},
		})
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// Login authenticates an account by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func flatNumberOrEmpty(account *domain.Account) string {
	if account.FlatNumber == nil {
		return ""
	}
	return *account.FlatNumber
}
