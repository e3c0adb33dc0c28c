// Package orderrepo persists order aggregates together with their steps.
// The aggregate is always loaded and stored whole; steps never exist
// without their order row.
package orderrepo

import (
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order aggregate.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNo      string    `gorm:"type:varchar(32);uniqueIndex"`
	PrintType    string    `gorm:"type:varchar(16)"`
	Status       string    `gorm:"type:varchar(16);index"`
	CustomerName string
	DeliveryDate *time.Time
	Steps        []StepDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StepDTO is the database row for one workflow step.
type StepDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	Name            string    `gorm:"type:varchar(64)"`
	Description     string
	Category        string `gorm:"type:varchar(16)"`
	StepOrder       int
	Status          string `gorm:"type:varchar(16);index"`
	Required        bool
	StartTime       *time.Time
	EndTime         *time.Time
	OperatorID      *uuid.UUID `gorm:"type:uuid"`
	OperatorName    string
	ConfirmUserID   *uuid.UUID `gorm:"type:uuid"`
	ConfirmUserName string
	Note            string
}

// TableName overrides GORM's default naming to use "workflow_steps".
func (StepDTO) TableName() string {
	return "workflow_steps"
}

// fromDomain converts an order aggregate with its steps to database rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	steps := aggregate.Steps()
	stepDTOs := make([]StepDTO, 0, len(steps))
	for _, step := range steps {
		stepDTOs = append(stepDTOs, stepFromDomain(aggregate.ID(), step))
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		OrderNo:      aggregate.OrderNo().String(),
		PrintType:    aggregate.PrintType().String(),
		Status:       aggregate.Status().String(),
		CustomerName: aggregate.CustomerName(),
		DeliveryDate: aggregate.DeliveryDate(),
		Steps:        stepDTOs,
	}
}

func stepFromDomain(orderID kernel.UUID, step *order.Step) StepDTO {
	var operatorID, confirmUserID *uuid.UUID
	if id := step.Operator(); id != nil {
		raw := id.Bytes()
		operatorID = &raw
	}
	if id := step.ConfirmUser(); id != nil {
		raw := id.Bytes()
		confirmUserID = &raw
	}

	return StepDTO{
		ID:              step.ID().Bytes(),
		OrderID:         orderID.Bytes(),
		Name:            step.Name(),
		Description:     step.Description(),
		Category:        step.Category().String(),
		StepOrder:       step.StepOrder(),
		Status:          step.Status().String(),
		Required:        step.Required(),
		StartTime:       step.StartTime(),
		EndTime:         step.EndTime(),
		OperatorID:      operatorID,
		OperatorName:    step.OperatorName(),
		ConfirmUserID:   confirmUserID,
		ConfirmUserName: step.ConfirmUserName(),
		Note:            step.Note(),
	}
}

// toDomain reconstructs the order aggregate from its rows using the
// restore constructors.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderNo, err := kernel.NewOrderNo(dto.OrderNo)
	if err != nil {
		return nil, err
	}

	printType, err := order.PrintTypeFromString(dto.PrintType)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	steps := make([]*order.Step, 0, len(dto.Steps))
	for _, stepDTO := range dto.Steps {
		step, stepErr := stepToDomain(stepDTO)
		if stepErr != nil {
			return nil, stepErr
		}
		steps = append(steps, step)
	}

	return order.RestoreOrder(id, orderNo, printType, dto.CustomerName, dto.DeliveryDate, status, steps)
}

func stepToDomain(dto StepDTO) (*order.Step, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	category, err := order.CategoryFromString(dto.Category)
	if err != nil {
		return nil, err
	}

	status, err := order.StepStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var operatorID, confirmUserID *kernel.UUID
	if dto.OperatorID != nil {
		opID, opErr := kernel.UUIDFromBytes((*dto.OperatorID)[:])
		if opErr != nil {
			return nil, opErr
		}
		operatorID = &opID
	}
	if dto.ConfirmUserID != nil {
		cuID, cuErr := kernel.UUIDFromBytes((*dto.ConfirmUserID)[:])
		if cuErr != nil {
			return nil, cuErr
		}
		confirmUserID = &cuID
	}

	return order.RestoreStep(order.StepRecord{
		ID:              id,
		Name:            dto.Name,
		Description:     dto.Description,
		StepOrder:       dto.StepOrder,
		Category:        category,
		Required:        dto.Required,
		Status:          status,
		StartTime:       dto.StartTime,
		EndTime:         dto.EndTime,
		OperatorID:      operatorID,
		OperatorName:    dto.OperatorName,
		ConfirmUserID:   confirmUserID,
		ConfirmUserName: dto.ConfirmUserName,
		Note:            dto.Note,
	})
}
