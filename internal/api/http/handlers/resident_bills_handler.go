package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/society-portal/internal/api/dto"
	"github.com/spec-kit/society-portal/internal/auth"
	"github.com/spec-kit/society-portal/internal/service"
	apperrors "github.com/spec-kit/society-portal/pkg/util"
)

// ResidentBillsHandler serves the resident's own bills and payments.
type ResidentBillsHandler struct {
	billing *service.BillingService
}

// NewResidentBillsHandler constructs handler.
func NewResidentBillsHandler(billing *service.BillingService) *ResidentBillsHandler {
	return &ResidentBillsHandler{billing: billing}
}

// ListOwnBills handles GET /api/resident/bills. Scoping to the caller happens
// here, from the token principal, never from client input.
func (h *ResidentBillsHandler) ListOwnBills(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("resident required")
	}
	bills, err := h.billing.ListResidentBills(c.Context(), principal.Account.ID)
	if err != nil {
		return err
	}
	items := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		items = append(items, billResponse(&bills[i]))
	}
	return c.JSON(items)
}

// Pay handles POST /api/resident/pay.
func (h *ResidentBillsHandler) Pay(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("resident required")
	}
	var req dto.PayRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BillID == "" {
		return apperrors.NewValidationError("billId required", nil)
	}

	bill, err := h.billing.PayBill(c.Context(), principal.Account.ID, req.BillID)
	if err != nil {
		return err
	}
	return c.JSON(billResponse(bill))
}
