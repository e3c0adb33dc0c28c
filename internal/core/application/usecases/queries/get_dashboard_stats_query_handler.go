package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const urgencyHorizon = 48 * time.Hour

// GetDashboardStatsQueryHandler computes the workshop counters with a
// pair of aggregate selects, one over orders and one over steps.
type GetDashboardStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetDashboardStatsQueryHandler creates a handler for dashboard stats.
func NewGetDashboardStatsQueryHandler(db *gorm.DB) GetDashboardStatsQueryHandler {
	return GetDashboardStatsQueryHandler{db: db}
}

func (h GetDashboardStatsQueryHandler) Handle(ctx context.Context, query GetDashboardStatsQuery) (GetDashboardStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardStatsQueryResponse{}, err
	}

	var resp GetDashboardStatsQueryResponse
	deadline := query.Now().Add(urgencyHorizon)

	orderRow := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'processing'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (
				WHERE status IN ('pending', 'processing')
				AND delivery_date IS NOT NULL
				AND delivery_date <= ?
			)
		FROM orders
	`, deadline).Row()

	if err := orderRow.Scan(&resp.TotalOrders, &resp.PendingCount,
		&resp.ProcessingCount, &resp.CompletedCount, &resp.UrgentCount); err != nil {
		return GetDashboardStatsQueryResponse{}, err
	}

	stepRow := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE s.status = 'in_progress'),
			COUNT(*) FILTER (WHERE s.status = 'pending')
		FROM workflow_steps s
		JOIN orders o ON o.id = s.order_id
		WHERE o.status IN ('pending', 'processing')
	`).Row()

	if err := stepRow.Scan(&resp.ActiveStepCount, &resp.UpcomingStepCount); err != nil {
		return GetDashboardStatsQueryResponse{}, err
	}

	return resp, nil
}
