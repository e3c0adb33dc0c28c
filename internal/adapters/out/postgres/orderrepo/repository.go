package orderrepo

import (
	"context"
	"errors"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates an order repository on the given
// connection, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order aggregate with all its steps.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// stepMutableColumns are the step columns a workflow transition can
// change. Selecting them explicitly forces zero values through, which
// struct Updates would otherwise skip.
var stepMutableColumns = []string{
	"status", "start_time", "end_time",
	"operator_id", "operator_name",
	"confirm_user_id", "confirm_user_name",
	"note",
}

// Update saves the order row and every step row of the aggregate.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	tx := r.db.WithContext(ctx)

	result := tx.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("order_no", "print_type", "status", "customer_name", "delivery_date").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	for i := range dto.Steps {
		stepResult := tx.Model(&StepDTO{}).
			Where("id = ?", dto.Steps[i].ID).
			Select(stepMutableColumns).
			Updates(&dto.Steps[i])
		if stepResult.Error != nil {
			return stepResult.Error
		}
		if stepResult.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
	}

	return nil
}

// Get retrieves an order aggregate by ID, steps included.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getFirst(ctx, "id = ?", id.Bytes(), id.String())
}

// GetByStepID retrieves the order aggregate owning the given step.
func (r *GormOrderRepository) GetByStepID(ctx context.Context, stepID kernel.UUID) (*order.Order, error) {
	if err := stepID.Validate(); err != nil {
		return nil, err
	}

	var stepDTO StepDTO
	if err := r.db.WithContext(ctx).First(&stepDTO, "id = ?", stepID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("step", stepID.String())
		}
		return nil, err
	}

	return r.getFirst(ctx, "id = ?", stepDTO.OrderID, stepID.String())
}

// GetByOrderNo retrieves an order aggregate by its business number.
func (r *GormOrderRepository) GetByOrderNo(ctx context.Context, orderNo kernel.OrderNo) (*order.Order, error) {
	if err := orderNo.Validate(); err != nil {
		return nil, err
	}

	return r.getFirst(ctx, "order_no = ?", orderNo.String(), orderNo.String())
}

func (r *GormOrderRepository) getFirst(ctx context.Context, cond string, arg any, notFoundID string) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("category, step_order")
		}).
		First(&dto, cond, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", notFoundID)
		}
		return nil, err
	}

	return toDomain(dto)
}
