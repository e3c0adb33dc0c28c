package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/ports"
)

// StatsReader recomputes the workshop counters. Satisfied by
// queries.GetDashboardStatsQueryHandler.
type StatsReader interface {
	Handle(ctx context.Context, query queries.GetDashboardStatsQuery) (queries.GetDashboardStatsQueryResponse, error)
}

// DashboardSnapshot is the last computed counter set together with the
// order change that triggered it.
type DashboardSnapshot struct {
	OrderID    string
	Stats      queries.GetDashboardStatsQueryResponse
	ComputedAt time.Time
}

// DashboardSink keeps a live counter snapshot current by recomputing it
// on every order status change. Readers poll Snapshot; there is no push
// channel to clients here.
type DashboardSink struct {
	stats  StatsReader
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	snapshot DashboardSnapshot
}

// NewDashboardSink creates a dashboard sink over the given stats reader.
func NewDashboardSink(stats StatsReader, logger *slog.Logger) *DashboardSink {
	return &DashboardSink{
		stats:  stats,
		logger: logger.With("component", "dashboard"),
		now:    time.Now,
	}
}

// OnStepChanged is a no-op: step transitions only matter to the
// dashboard once they move the order's own status.
func (s *DashboardSink) OnStepChanged(_ context.Context, _ ports.StepChangedEvent) {}

// OnOrderChanged recomputes the counters. A failed recompute keeps the
// previous snapshot.
func (s *DashboardSink) OnOrderChanged(ctx context.Context, event ports.OrderChangedEvent) {
	query, err := queries.NewGetDashboardStatsQuery(s.now())
	if err != nil {
		s.logger.ErrorContext(ctx, "build stats query", "error", err)
		return
	}

	stats, err := s.stats.Handle(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "recompute dashboard stats", "error", err, "orderId", event.OrderID)
		return
	}

	s.mu.Lock()
	s.snapshot = DashboardSnapshot{
		OrderID:    event.OrderID,
		Stats:      stats,
		ComputedAt: s.now(),
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dashboard snapshot updated",
		"orderId", event.OrderID,
		"totalOrders", stats.TotalOrders,
		"processing", stats.ProcessingCount,
		"urgent", stats.UrgentCount,
	)
}

// Snapshot returns the last computed counter set. The zero value means
// no order change has been observed yet.
func (s *DashboardSink) Snapshot() DashboardSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
