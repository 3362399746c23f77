package client

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/society-portal/internal/api/dto"
	apperrors "github.com/spec-kit/society-portal/pkg/util"
)

// BillDirectory is the admin-side bill surface. Every mutation re-fetches
// the list from the server; displayed state always reflects server truth.
type BillDirectory struct {
	client *Client
}

// NewBillDirectory builds the directory.
func NewBillDirectory(client *Client) *BillDirectory {
	return &BillDirectory{client: client}
}

// ListBills returns all bills in server-determined order.
func (d *BillDirectory) ListBills(ctx context.Context) ([]dto.BillResponse, error) {
	var bills []dto.BillResponse
	if err := d.client.Get(ctx, "/api/admin/bills", &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// BillForm is the client-side creation form.
type BillForm struct {
	ResidentID  string
	Amount      float64
	Month       string
	Year        int
	DueDate     time.Time
	Description string
}

// CreateBill validates, creates and then resynchronizes: the returned slice
// is a fresh fetch, never a local patch.
func (d *BillDirectory) CreateBill(ctx context.Context, form BillForm) (*dto.BillResponse, []dto.BillResponse, error) {
	if form.Amount <= 0 {
		return nil, nil, apperrors.NewValidationError("amount must be positive", map[string]any{"amount": form.Amount})
	}
	if form.DueDate.IsZero() {
		return nil, nil, apperrors.NewValidationError("due date required", nil)
	}

	var created dto.BillResponse
	err := d.client.Post(ctx, "/api/admin/bills", dto.CreateBillRequest{
		ResidentID:  form.ResidentID,
		Amount:      form.Amount,
		Month:       form.Month,
		Year:        form.Year,
		DueDate:     form.DueDate.Format(time.RFC3339),
		Description: form.Description,
	}, &created)
	if err != nil {
		return nil, nil, err
	}

	bills, err := d.ListBills(ctx)
	if err != nil {
		return &created, nil, err
	}
	return &created, bills, nil
}

// ResidentDirectory is the admin-side resident surface.
type ResidentDirectory struct {
	client          *Client
	gateway         *Gateway
	defaultPassword string
	logger          *zap.Logger
}

// NewResidentDirectory builds the directory. defaultPassword fills in when a
// resident is created with an empty password.
func NewResidentDirectory(client *Client, gateway *Gateway, defaultPassword string, logger *zap.Logger) *ResidentDirectory {
	return &ResidentDirectory{
		client:          client,
		gateway:         gateway,
		defaultPassword: defaultPassword,
		logger:          logger,
	}
}

// ListResidents returns all residents in server-determined order.
func (d *ResidentDirectory) ListResidents(ctx context.Context) ([]dto.ResidentResponse, error) {
	var residents []dto.ResidentResponse
	if err := d.client.Get(ctx, "/api/admin/residents", &residents); err != nil {
		return nil, err
	}
	return residents, nil
}

// ResidentForm is the client-side registration form.
type ResidentForm struct {
	Name       string
	Email      string
	Contact    string
	FlatNumber string
	Password   string
}

// CreateResident registers a resident account, then resynchronizes the list.
// An empty password falls back to the configured default; the fallback is a
// predictable credential and is logged when used.
func (d *ResidentDirectory) CreateResident(ctx context.Context, form ResidentForm) ([]dto.ResidentResponse, error) {
	password := form.Password
	if strings.TrimSpace(password) == "" {
		password = d.defaultPassword
		d.logger.Warn("resident created with default password", zap.String("email", form.Email))
	}

	if err := d.registerResident(ctx, form, password); err != nil {
		return nil, err
	}
	return d.ListResidents(ctx)
}

// registerResident posts to the shared registration endpoint without
// touching the admin's own session.
func (d *ResidentDirectory) registerResident(ctx context.Context, form ResidentForm, password string) error {
	req := dto.RegisterRequest{
		Name:       form.Name,
		Email:      form.Email,
		Password:   password,
		Contact:    form.Contact,
		Role:       "resident",
		FlatNumber: form.FlatNumber,
	}
	if err := d.client.Post(ctx, "/api/auth/register", req, nil); err != nil {
		return fallbackMessage(err, "registration failed")
	}
	return nil
}
