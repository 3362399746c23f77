package client

import (
	"context"

	"github.com/spec-kit/society-portal/internal/api/dto"
)

// Dashboard fetches the admin overview.
type Dashboard struct {
	client *Client
}

// NewDashboard builds the dashboard surface.
func NewDashboard(client *Client) *Dashboard {
	return &Dashboard{client: client}
}

// Stats returns the society-wide totals and recent payments.
func (d *Dashboard) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var stats dto.StatsResponse
	if err := d.client.Get(ctx, "/api/admin/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
