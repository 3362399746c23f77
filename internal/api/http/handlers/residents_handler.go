package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/society-portal/internal/api/dto"
	"github.com/spec-kit/society-portal/internal/domain"
	"github.com/spec-kit/society-portal/internal/service"
)

// ResidentsHandler exposes the admin resident directory.
type ResidentsHandler struct {
	billing *service.BillingService
}

// NewResidentsHandler constructs handler.
func NewResidentsHandler(billing *service.BillingService) *ResidentsHandler {
	return &ResidentsHandler{billing: billing}
}

// ListResidents handles GET /api/admin/residents.
func (h *ResidentsHandler) ListResidents(c *fiber.Ctx) error {
	residents, err := h.billing.ListResidents(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ResidentResponse, 0, len(residents))
	for i := range residents {
		items = append(items, residentResponse(&residents[i]))
	}
	return c.JSON(items)
}

func residentResponse(account *domain.Account) dto.ResidentResponse {
	resp := dto.ResidentResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Contact:   account.Contact,
		Role:      string(account.Role),
		CreatedAt: account.CreatedAt,
	}
	if account.FlatNumber != nil {
		resp.FlatNumber = *account.FlatNumber
	}
	return resp
}
