package queries

import (
	"context"

	"printflow/internal/core/domain/model/audit"
	"printflow/internal/core/ports"
)

// GetAuditLogsQueryResponse is one page of operation records together
// with the total match count.
type GetAuditLogsQueryResponse struct {
	Records []audit.OperationLog
	Total   int64
	Offset  int
	Limit   int
}

// GetAuditLogsQueryHandler pages through the operation record store.
type GetAuditLogsQueryHandler struct {
	auditLog ports.AuditLogRepository
}

// NewGetAuditLogsQueryHandler creates a handler for audit listings.
func NewGetAuditLogsQueryHandler(auditLog ports.AuditLogRepository) GetAuditLogsQueryHandler {
	return GetAuditLogsQueryHandler{auditLog: auditLog}
}

func (h GetAuditLogsQueryHandler) Handle(ctx context.Context, query GetAuditLogsQuery) (GetAuditLogsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAuditLogsQueryResponse{}, err
	}

	filter := query.Filter()
	records, total, err := h.auditLog.List(ctx, filter)
	if err != nil {
		return GetAuditLogsQueryResponse{}, err
	}

	return GetAuditLogsQueryResponse{
		Records: records,
		Total:   total,
		Offset:  filter.Offset,
		Limit:   filter.Limit,
	}, nil
}
