package queries

import (
	"errors"
	"time"

	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

var ErrGetDashboardStatsQueryIsNotConstructed = errors.New(
	"GetDashboardStatsQuery must be created via NewGetDashboardStatsQuery constructor",
)

// GetDashboardStatsQuery computes workshop-wide counters as of a given
// instant. The instant anchors the urgency horizon.
type GetDashboardStatsQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewGetDashboardStatsQuery creates a stats query anchored at now.
func NewGetDashboardStatsQuery(now time.Time) (GetDashboardStatsQuery, error) {
	if now.IsZero() {
		return GetDashboardStatsQuery{}, errs.NewValueIsRequiredError("now")
	}
	return GetDashboardStatsQuery{now: now, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardStatsQueryIsNotConstructed)
}

// Now returns the instant the counters are computed against.
func (q GetDashboardStatsQuery) Now() time.Time {
	return q.now
}

// GetDashboardStatsQueryResponse is the workshop counter snapshot.
type GetDashboardStatsQueryResponse struct {
	TotalOrders     int64
	PendingCount    int64
	ProcessingCount int64
	CompletedCount  int64

	// UrgentCount is the number of unfinished orders whose delivery
	// date is already past or falls within the next 48 hours.
	UrgentCount int64

	ActiveStepCount   int64
	UpcomingStepCount int64
}
