// Package auditrepo persists operation records. The table is
// append-only; rows are written once per attempt and never touched
// again.
package auditrepo

import (
	"time"

	"printflow/internal/core/domain/model/access"
	"printflow/internal/core/domain/model/audit"
	"printflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// OperationLogDTO is the database row for one recorded attempt.
// OperatorRoles and Checks are jsonb snapshots taken at decision time,
// so later role edits never rewrite history.
type OperationLogDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNo       string    `gorm:"type:varchar(32);index"`
	StepName      string    `gorm:"type:varchar(64);index"`
	PrintType     string    `gorm:"type:varchar(16)"`
	Operation     string    `gorm:"type:varchar(16);index"`
	OperatorID    uuid.UUID `gorm:"type:uuid;index"`
	OperatorName  string    `gorm:"type:varchar(64);index"`
	OperatorRoles []string  `gorm:"type:jsonb;serializer:json"`
	RuleUsed      string    `gorm:"type:varchar(64)"`
	Granted       bool
	Checks        []access.Check `gorm:"type:jsonb;serializer:json"`
	Success       bool
	ErrorMessage  string
	Note          string
	Timestamp     time.Time `gorm:"index"`
	IP            string    `gorm:"type:varchar(45)"`
	UserAgent     string
}

// TableName overrides GORM's default naming to use "operation_logs".
func (OperationLogDTO) TableName() string {
	return "operation_logs"
}

func fromDomain(record audit.OperationLog) OperationLogDTO {
	return OperationLogDTO{
		ID:            record.ID.Bytes(),
		OrderNo:       record.OrderNo,
		StepName:      record.StepName,
		PrintType:     record.PrintType,
		Operation:     record.Operation,
		OperatorID:    record.OperatorID.Bytes(),
		OperatorName:  record.OperatorName,
		OperatorRoles: record.OperatorRoles,
		RuleUsed:      record.RuleUsed,
		Granted:       record.Granted,
		Checks:        record.Checks,
		Success:       record.Success,
		ErrorMessage:  record.ErrorMessage,
		Note:          record.Note,
		Timestamp:     record.Timestamp,
		IP:            record.Origin.IP,
		UserAgent:     record.Origin.UserAgent,
	}
}

func toDomain(dto OperationLogDTO) (audit.OperationLog, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return audit.OperationLog{}, err
	}

	operatorID, err := kernel.UUIDFromBytes(dto.OperatorID[:])
	if err != nil {
		return audit.OperationLog{}, err
	}

	return audit.OperationLog{
		ID:            id,
		OrderNo:       dto.OrderNo,
		StepName:      dto.StepName,
		PrintType:     dto.PrintType,
		Operation:     dto.Operation,
		OperatorID:    operatorID,
		OperatorName:  dto.OperatorName,
		OperatorRoles: dto.OperatorRoles,
		RuleUsed:      dto.RuleUsed,
		Granted:       dto.Granted,
		Checks:        dto.Checks,
		Success:       dto.Success,
		ErrorMessage:  dto.ErrorMessage,
		Note:          dto.Note,
		Timestamp:     dto.Timestamp,
		Origin: audit.RequestOrigin{
			IP:        dto.IP,
			UserAgent: dto.UserAgent,
		},
	}, nil
}
