// Package audit defines the write-once record of every attempted workflow
// operation. One record is produced per attempt, whether the attempt was
// authorized or not and whether it later succeeded or not. Records are
// never updated or deleted.
package audit

import (
	"time"

	"printflow/internal/core/domain/model/access"
	"printflow/internal/core/domain/model/kernel"
)

// RequestOrigin carries the transport-level metadata of the attempt.
type RequestOrigin struct {
	IP        string
	UserAgent string
}

// OperationLog is one immutable audit record. Operator identity and role
// names are snapshots captured at decision time, not re-derived on read.
// Checks holds the permission gates that ran, in evaluation order.
type OperationLog struct {
	ID            kernel.UUID
	OrderNo       string
	StepName      string
	PrintType     string
	Operation     string
	OperatorID    kernel.UUID
	OperatorName  string
	OperatorRoles []string
	RuleUsed      string
	Granted       bool
	Checks        []access.Check
	Success       bool
	ErrorMessage  string
	Note          string
	Timestamp     time.Time
	Origin        RequestOrigin
}

// NewOperationLog stamps a fresh record with an identity and timestamp.
// The caller fills in the decision fields before handing it to the
// repository.
func NewOperationLog(now time.Time) OperationLog {
	return OperationLog{
		ID:        kernel.NewUUID(),
		Timestamp: now,
	}
}
