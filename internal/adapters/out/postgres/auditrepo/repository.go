package auditrepo

import (
	"context"
	"time"

	"printflow/internal/core/domain/model/audit"
	"printflow/internal/core/ports"

	"gorm.io/gorm"
)

// GormAuditLogRepository implements ports.AuditLogRepository using GORM.
// It always runs on the plain connection, never inside a command's
// transaction: a record must survive a rolled-back attempt.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates an audit log repository.
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append stores one record.
func (r *GormAuditLogRepository) Append(ctx context.Context, record audit.OperationLog) error {
	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// List returns records matching the filter, newest first, with the
// total match count for pagination.
func (r *GormAuditLogRepository) List(ctx context.Context, filter ports.AuditLogFilter) ([]audit.OperationLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&OperationLogDTO{})
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.OperatorName != "" {
		query = query.Where("operator_name = ?", filter.OperatorName)
	}
	if filter.Operation != "" {
		query = query.Where("operation = ?", filter.Operation)
	}
	if filter.StepName != "" {
		query = query.Where("step_name = ?", filter.StepName)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dtos []OperationLogDTO
	err := query.
		Order("timestamp DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&dtos).Error
	if err != nil {
		return nil, 0, err
	}

	records := make([]audit.OperationLog, 0, len(dtos))
	for _, dto := range dtos {
		record, recordErr := toDomain(dto)
		if recordErr != nil {
			return nil, 0, recordErr
		}
		records = append(records, record)
	}

	return records, total, nil
}

// CountSince returns the number of records stamped at or after since.
func (r *GormAuditLogRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OperationLogDTO{}).
		Where("timestamp >= ?", since).
		Count(&count).Error
	return count, err
}
