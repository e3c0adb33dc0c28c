package jobs

import (
	"context"
	"log/slog"
	"time"

	"printflow/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// statsReader recomputes the workshop counters. Satisfied by
// queries.GetDashboardStatsQueryHandler.
type statsReader interface {
	Handle(ctx context.Context, query queries.GetDashboardStatsQuery) (queries.GetDashboardStatsQueryResponse, error)
}

// auditCounter exposes the slice of ports.AuditLogRepository the report
// needs.
type auditCounter interface {
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// DailyReportJob logs a structured end-of-day report: order counters
// plus the number of operations recorded since midnight.
type DailyReportJob struct {
	stats    statsReader
	auditLog auditCounter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewDailyReportJob creates the report job with a standard cron
// schedule expression.
func NewDailyReportJob(stats statsReader, auditLog auditCounter, schedule string, logger *slog.Logger) *DailyReportJob {
	return &DailyReportJob{
		stats:    stats,
		auditLog: auditLog,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "daily_report_job"),
		now:      time.Now,
	}
}

// Start schedules the report.
func (j *DailyReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.Run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Daily report job started", "schedule", j.schedule)
	return nil
}

// Stop stops the report job.
func (j *DailyReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Daily report job stopped")
}

// Run assembles and logs one report. Exposed so the report can also be
// triggered outside the schedule.
func (j *DailyReportJob) Run() {
	ctx := context.Background()
	now := j.now()

	query, err := queries.NewGetDashboardStatsQuery(now)
	if err != nil {
		j.logger.ErrorContext(ctx, "Daily report failed", "error", err)
		return
	}

	stats, err := j.stats.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Daily report failed", "error", err)
		return
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	operations, err := j.auditLog.CountSince(ctx, midnight)
	if err != nil {
		j.logger.ErrorContext(ctx, "Daily report failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Daily workshop report",
		"date", now.Format("2006-01-02"),
		"totalOrders", stats.TotalOrders,
		"pending", stats.PendingCount,
		"processing", stats.ProcessingCount,
		"completed", stats.CompletedCount,
		"urgent", stats.UrgentCount,
		"activeSteps", stats.ActiveStepCount,
		"upcomingSteps", stats.UpcomingStepCount,
		"operationsToday", operations,
	)
}
