package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/society-portal/internal/api/dto"
	"github.com/spec-kit/society-portal/internal/service"
)

// StatsHandler serves the admin dashboard aggregate.
type StatsHandler struct {
	billing *service.BillingService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(billing *service.BillingService) *StatsHandler {
	return &StatsHandler{billing: billing}
}

// Stats handles GET /api/admin/stats.
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.billing.Stats(c.Context())
	if err != nil {
		return err
	}

	resp := dto.StatsResponse{
		TotalReceived:  stats.TotalReceived,
		PendingAmount:  stats.PendingAmount,
		TotalResidents: stats.TotalResidents,
		RecentPayments: make([]dto.PaymentEntry, 0, len(stats.RecentPayments)),
	}
	for _, p := range stats.RecentPayments {
		resp.RecentPayments = append(resp.RecentPayments, dto.PaymentEntry{
			ID:           p.ID,
			ResidentName: p.ResidentName,
			FlatNumber:   p.FlatNumber,
			Amount:       p.Amount,
			PaidAt:       p.PaidAt,
		})
	}
	return c.JSON(resp)
}
