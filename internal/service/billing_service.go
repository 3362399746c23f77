package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/society-portal/internal/config"
	"github.com/spec-kit/society-portal/internal/domain"
	"github.com/spec-kit/society-portal/internal/events"
	"github.com/spec-kit/society-portal/internal/observability"
	"github.com/spec-kit/society-portal/internal/persistence"
	"github.com/spec-kit/society-portal/internal/repository"
	apperrors "github.com/spec-kit/society-portal/pkg/util"
)

const statsCacheKey = "portal:admin:stats"

// BillingService coordinates bill lifecycle and the admin dashboard.
type BillingService struct {
	bills      repository.BillRepository
	payments   repository.PaymentRepository
	accounts   repository.AccountRepository
	redis      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.BillingConfig
}

// BillingDependencies bundles collaborators for the billing service.
type BillingDependencies struct {
	BillRepo    repository.BillRepository
	PaymentRepo repository.PaymentRepository
	AccountRepo repository.AccountRepository
	Redis       *persistence.Redis
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// BillCreateInput describes bill creation payload.
type BillCreateInput struct {
	ResidentID  string
	Amount      float64
	Month       string
	Year        int
	DueDate     time.Time
	Description string
}

// DashboardStats is the admin dashboard aggregate.
type DashboardStats struct {
	TotalReceived  float64          `json:"totalReceived"`
	PendingAmount  float64          `json:"pendingAmount"`
	TotalResidents int              `json:"totalResidents"`
	RecentPayments []domain.Payment `json:"recentPayments"`
}

// NewBillingService constructs the service.
func NewBillingService(cfg config.BillingConfig, deps BillingDependencies) *BillingService {
	return &BillingService{
		bills:      deps.BillRepo,
		payments:   deps.PaymentRepo,
		accounts:   deps.AccountRepo,
		redis:      deps.Redis,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		cfg:        cfg,
	}
}

// CreateBill creates a maintenance bill for one resident.
func (s *BillingService) CreateBill(ctx context.Context, adminID string, input BillCreateInput) (*domain.Bill, error) {
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", map[string]any{"amount": input.Amount})
	}
	if input.DueDate.IsZero() {
		return nil, apperrors.NewValidationError("due date required", nil)
	}
	if strings.TrimSpace(input.Month) == "" || input.Year == 0 {
		return nil, apperrors.NewValidationError("month and year required", nil)
	}

	resident, err := s.accounts.GetByID(ctx, input.ResidentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("resident", map[string]any{"resident_id": input.ResidentID})
		}
		return nil, err
	}
	if !resident.IsResident() {
		return nil, apperrors.NewValidationError("bills can only be raised against residents", nil)
	}

	bill := &domain.Bill{
		ResidentID:  resident.ID,
		Amount:      input.Amount,
		Month:       input.Month,
		Year:        input.Year,
		DueDate:     input.DueDate,
		Status:      domain.BillStatusUnpaid,
		Description: strings.TrimSpace(input.Description),
	}
	if bill.Description == "" {
		bill.Description = "Monthly Maintenance"
	}

	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, err
	}

	observability.ObserveBillCreated()
	s.invalidateStats(ctx)
	s.publish(ctx, events.Event{
		Type:  events.EventBillCreated,
		Actor: events.Actor{Role: domain.RoleAdmin, AccountID: adminID},
		Payload: events.BillCreatedPayload{
			BillID:     bill.ID,
			ResidentID: bill.ResidentID,
			Amount:     bill.Amount,
			Month:      bill.Month,
			Year:       bill.Year,
		},
	})
	return bill, nil
}

// ListBills returns every bill with resident display fields, newest first.
func (s *BillingService) ListBills(ctx context.Context) ([]repository.BillWithResident, error) {
	return s.bills.ListAll(ctx)
}

// ListResidentBills returns the caller's own bills, newest first.
func (s *BillingService) ListResidentBills(ctx context.Context, residentID string) ([]domain.Bill, error) {
	return s.bills.ListByResident(ctx, residentID)
}

// ListResidents returns all resident accounts ordered by name.
func (s *BillingService) ListResidents(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.ListResidents(ctx)
}

// PayBill settles one of the resident's own unpaid bills. The transition is
// Unpaid -> Paid exactly once; a second attempt is a conflict.
func (s *BillingService) PayBill(ctx context.Context, residentID, billID string) (*domain.Bill, error) {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("bill", map[string]any{"bill_id": billID})
		}
		return nil, err
	}
	if bill.ResidentID != residentID {
		// Do not reveal other residents' bill IDs.
		return nil, apperrors.NewNotFound("bill", map[string]any{"bill_id": billID})
	}
	if bill.Status == domain.BillStatusPaid {
		observability.ObservePayment("already_paid")
		return nil, apperrors.NewConflict("bill already paid", nil)
	}

	if err := s.bills.MarkPaid(ctx, bill); err != nil {
		if err == pgx.ErrNoRows {
			// Lost the race against another pay attempt.
			observability.ObservePayment("already_paid")
			return nil, apperrors.NewConflict("bill already paid", nil)
		}
		observability.ObservePayment("error")
		return nil, err
	}

	payment := &domain.Payment{
		ID:         uuid.NewString(),
		BillID:     bill.ID,
		ResidentID: bill.ResidentID,
		Amount:     bill.Amount,
		PaidAt:     time.Now(),
	}
	if bill.PaidAt != nil {
		payment.PaidAt = *bill.PaidAt
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		// The bill is already settled; the dashboard feed just misses an entry.
		s.logger.Error("payment record write failed", zap.String("bill_id", bill.ID), zap.Error(err))
	}

	observability.ObservePayment("success")
	s.invalidateStats(ctx)
	s.publish(ctx, events.Event{
		Type:  events.EventBillPaid,
		Actor: events.Actor{Role: domain.RoleResident, AccountID: residentID},
		Payload: events.BillPaidPayload{
			BillID:     bill.ID,
			ResidentID: bill.ResidentID,
			Amount:     bill.Amount,
			PaymentID:  payment.ID,
		},
	})
	return bill, nil
}

// Stats computes the admin dashboard aggregate, served from the Redis cache
// when fresh.
func (s *BillingService) Stats(ctx context.Context) (*DashboardStats, error) {
	if cached := s.cachedStats(ctx); cached != nil {
		return cached, nil
	}

	received, err := s.bills.SumAmountByStatus(ctx, domain.BillStatusPaid)
	if err != nil {
		return nil, err
	}
	pending, err := s.bills.SumAmountByStatus(ctx, domain.BillStatusUnpaid)
	if err != nil {
		return nil, err
	}
	residents, err := s.accounts.CountResidents(ctx)
	if err != nil {
		return nil, err
	}
	limit := s.cfg.RecentPaymentsLimit
	if limit <= 0 {
		limit = 5
	}
	recent, err := s.payments.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalReceived:  received,
		PendingAmount:  pending,
		TotalResidents: residents,
		RecentPayments: recent,
	}
	s.cacheStats(ctx, stats)
	return stats, nil
}

func (s *BillingService) cachedStats(ctx context.Context) *DashboardStats {
	if s.redis == nil || s.redis.Client == nil {
		return nil
	}
	raw, err := s.redis.Client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var stats DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *BillingService) cacheStats(ctx context.Context, stats *DashboardStats) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.redis.Client.Set(ctx, statsCacheKey, raw, s.cfg.StatsCacheTTL()).Err(); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}

func (s *BillingService) invalidateStats(ctx context.Context) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	if err := s.redis.Client.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *BillingService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
