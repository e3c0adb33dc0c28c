// Package jobs provides scheduled background tasks for the workflow
// system, implemented on github.com/robfig/cron/v3.
//
// DailyReportJob assembles the workshop counters and the day's
// operation-record count into a structured log report on a configurable
// cron schedule (default: 18:00 every day).
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(statsHandler, auditLog, schedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//	    log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
