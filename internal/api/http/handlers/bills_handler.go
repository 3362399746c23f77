package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/society-portal/internal/api/dto"
	"github.com/spec-kit/society-portal/internal/auth"
	"github.com/spec-kit/society-portal/internal/domain"
	"github.com/spec-kit/society-portal/internal/repository"
	"github.com/spec-kit/society-portal/internal/service"
	apperrors "github.com/spec-kit/society-portal/pkg/util"
)

// BillsHandler manages the admin bill directory.
type BillsHandler struct {
	billing *service.BillingService
}

// NewBillsHandler constructs handler.
func NewBillsHandler(billing *service.BillingService) *BillsHandler {
	return &BillsHandler{billing: billing}
}

// ListBills handles GET /api/admin/bills.
func (h *BillsHandler) ListBills(c *fiber.Ctx) error {
	bills, err := h.billing.ListBills(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		items = append(items, adminBillResponse(&bills[i]))
	}
	return c.JSON(items)
}

// CreateBill handles POST /api/admin/bills.
func (h *BillsHandler) CreateBill(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	var req dto.CreateBillRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ResidentID == "" {
		return apperrors.NewValidationError("residentId required", nil)
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return apperrors.NewValidationError("invalid due date", map[string]any{"dueDate": req.DueDate})
	}

	bill, err := h.billing.CreateBill(c.Context(), principal.Account.ID, service.BillCreateInput{
		ResidentID:  req.ResidentID,
		Amount:      req.Amount,
		Month:       req.Month,
		Year:        req.Year,
		DueDate:     dueDate,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(billResponse(bill))
}

func parseDueDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func billResponse(bill *domain.Bill) dto.BillResponse {
	return dto.BillResponse{
		ID:          bill.ID,
		ResidentID:  bill.ResidentID,
		Amount:      bill.Amount,
		Month:       bill.Month,
		Year:        bill.Year,
		DueDate:     bill.DueDate,
		Status:      string(bill.Status),
		Description: bill.Description,
		CreatedAt:   bill.CreatedAt,
		PaidAt:      bill.PaidAt,
	}
}

func adminBillResponse(bill *repository.BillWithResident) dto.BillResponse {
	resp := billResponse(&bill.Bill)
	resp.ResidentName = bill.ResidentName
	resp.FlatNumber = bill.FlatNumber
	return resp
}
