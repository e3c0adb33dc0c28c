package jobs

import (
	"log/slog"

	"printflow/internal/core/ports"
)

// defaultReportSchedule fires at shift end.
const defaultReportSchedule = "0 18 * * *"

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dailyReportJob *DailyReportJob
}

// NewJobManager creates a job manager with all required jobs. An empty
// schedule falls back to the default.
func NewJobManager(stats statsReader, auditLog ports.AuditLogRepository, schedule string, logger *slog.Logger) *JobManager {
	if schedule == "" {
		schedule = defaultReportSchedule
	}
	return &JobManager{
		dailyReportJob: NewDailyReportJob(stats, auditLog, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	return jm.dailyReportJob.Start()
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dailyReportJob.Stop()
}
