// Package queries contains the read side of the workflow: order progress,
// audit listings and dashboard statistics. Query handlers read the
// database directly and return plain response structs; they never touch
// the aggregates.
package queries

import (
	"errors"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/guard"
)

var ErrGetOrderProgressQueryIsNotConstructed = errors.New(
	"GetOrderProgressQuery must be created via NewGetOrderProgressQuery constructor",
)

// GetOrderProgressQuery retrieves an order's full step pipeline with a
// startability flag per step.
type GetOrderProgressQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderProgressQuery creates a progress query for one order.
func NewGetOrderProgressQuery(orderID kernel.UUID) (GetOrderProgressQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderProgressQuery{}, err
	}
	return GetOrderProgressQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderProgressQueryIsNotConstructed)
}

// OrderID returns the order to inspect.
func (q GetOrderProgressQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StepProgress is one row of the progress listing.
type StepProgress struct {
	ID              kernel.UUID
	Name            string
	Category        string
	StepOrder       int
	Status          string
	Required        bool
	StartTime       *time.Time
	EndTime         *time.Time
	OperatorName    string
	ConfirmUserName string
	Note            string

	// CanStart reports whether the step is pending and every earlier
	// step in its category is completed or skipped. Permission and the
	// predecessor-note stop are evaluated only on the actual attempt.
	CanStart bool
}

// GetOrderProgressQueryResponse is the order header plus its steps in
// category and step order.
type GetOrderProgressQueryResponse struct {
	OrderID      kernel.UUID
	OrderNo      string
	PrintType    string
	Status       string
	CustomerName string
	DeliveryDate *time.Time
	Steps        []StepProgress
}
