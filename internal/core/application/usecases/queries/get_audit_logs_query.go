package queries

import (
	"errors"
	"math"

	"printflow/internal/core/ports"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

const (
	auditLogsDefaultLimit = 20
	auditLogsMaxLimit     = 200
)

var ErrGetAuditLogsQueryIsNotConstructed = errors.New(
	"GetAuditLogsQuery must be created via NewGetAuditLogsQuery constructor",
)

// GetAuditLogsQuery lists operation records, newest first, optionally
// narrowed by order number, operator, operation or step name.
type GetAuditLogsQuery struct {
	filter ports.AuditLogFilter

	guard guard.ConstructorGuard
}

// NewGetAuditLogsQuery creates a listing query. A zero limit falls back
// to the default page size.
func NewGetAuditLogsQuery(filter ports.AuditLogFilter) (GetAuditLogsQuery, error) {
	if filter.Offset < 0 {
		return GetAuditLogsQuery{}, errs.NewValueIsOutOfRangeError("offset", filter.Offset, 0, math.MaxInt)
	}
	if filter.Limit < 0 || filter.Limit > auditLogsMaxLimit {
		return GetAuditLogsQuery{}, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 0, auditLogsMaxLimit)
	}
	if filter.Limit == 0 {
		filter.Limit = auditLogsDefaultLimit
	}
	return GetAuditLogsQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditLogsQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditLogsQueryIsNotConstructed)
}

// Filter returns the normalized listing filter.
func (q GetAuditLogsQuery) Filter() ports.AuditLogFilter {
	return q.filter
}
