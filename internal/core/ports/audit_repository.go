package ports

import (
	"context"
	"time"

	"printflow/internal/core/domain/model/audit"
)

// AuditLogFilter narrows an audit listing. Zero-valued fields match
// everything; string fields match exactly.
type AuditLogFilter struct {
	OrderNo      string
	OperatorName string
	Operation    string
	StepName     string
	Offset       int
	Limit        int
}

// AuditLogRepository is the write-once store for operation records.
// Append runs outside the command's business transaction: a record must
// survive a rolled-back attempt, and a failed append must never fail
// the attempt itself.
type AuditLogRepository interface {
	// Append stores one record. Records are never updated or deleted.
	Append(ctx context.Context, record audit.OperationLog) error

	// List returns records matching the filter, newest first, along
	// with the total match count for pagination.
	List(ctx context.Context, filter AuditLogFilter) ([]audit.OperationLog, int64, error)

	// CountSince returns the number of records stamped at or after the
	// given instant.
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
