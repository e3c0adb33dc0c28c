package ports

import (
	"context"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are always loaded and stored together with their steps.
type OrderRepository interface {
	// Add persists a new order aggregate with all its steps.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and its steps.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByStepID retrieves the order aggregate owning the given step.
	// Workflow commands address steps directly; the whole aggregate is
	// needed for precedence checks and the status cascade.
	GetByStepID(ctx context.Context, stepID kernel.UUID) (*order.Order, error)

	// GetByOrderNo retrieves an order aggregate by its business number.
	GetByOrderNo(ctx context.Context, orderNo kernel.OrderNo) (*order.Order, error)
}
