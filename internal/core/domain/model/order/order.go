package order

import (
	"errors"
	"fmt"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root for a printing order. It owns the order's
// production steps and derives its own status from theirs.
//
// Invariants:
//   - status is a pure function of the step statuses (see DeriveStatus),
//     except explicit cancellation which is terminal
//   - (category, stepOrder) is unique across the order's steps
//   - steps are mutated only through the aggregate's methods
type Order struct {
	id           kernel.UUID
	orderNo      kernel.OrderNo
	printType    PrintType
	customerName string
	deliveryDate *time.Time
	status       Status
	steps        []*Step

	isConstructed bool
}

// NewOrder creates a pending Order owning the given steps, which are
// normally materialized from the print-type template at creation time.
func NewOrder(id kernel.UUID, orderNo kernel.OrderNo, printType PrintType, customerName string, deliveryDate *time.Time, steps []*Step) (*Order, error) {
	o := &Order{
		customerName:  customerName,
		deliveryDate:  deliveryDate,
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNo(orderNo),
		o.setPrintType(printType),
		o.setSteps(steps),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state.
// Used by repositories when loading the aggregate.
func RestoreOrder(id kernel.UUID, orderNo kernel.OrderNo, printType PrintType, customerName string, deliveryDate *time.Time, status Status, steps []*Step) (*Order, error) {
	o := &Order{
		customerName:  customerName,
		deliveryDate:  deliveryDate,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNo(orderNo),
		o.setPrintType(printType),
		o.setSteps(steps),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the Order was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNo returns the business order number.
func (o *Order) OrderNo() kernel.OrderNo {
	return o.orderNo
}

// PrintType returns the order's production scope.
func (o *Order) PrintType() PrintType {
	return o.printType
}

// CustomerName returns the name the order was placed under.
func (o *Order) CustomerName() string {
	return o.customerName
}

// DeliveryDate returns the promised delivery date, or nil if none was set.
func (o *Order) DeliveryDate() *time.Time {
	return o.deliveryDate
}

// Status returns the current order status.
func (o *Order) Status() Status {
	return o.status
}

// Steps returns the order's production steps in template order.
// The returned slice must not be modified.
func (o *Order) Steps() []*Step {
	return o.steps
}

// StepByID finds a step of this order by its identifier.
func (o *Order) StepByID(stepID kernel.UUID) (*Step, error) {
	for _, s := range o.steps {
		if s.ID().IsEqual(stepID) {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("stepID", stepID)
}

// StepsInCategory returns the order's steps belonging to the given
// category, preserving template order.
func (o *Order) StepsInCategory(category StepCategory) []*Step {
	var result []*Step
	for _, s := range o.steps {
		if s.Category() == category {
			result = append(result, s)
		}
	}
	return result
}

// IsCompleted reports whether every step is completed or skipped.
func (o *Order) IsCompleted() bool {
	return o.status == Completed
}

// Cancel cancels the order. Only pending or processing orders can be
// cancelled; the transition is terminal and exempt from status derivation.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// RefreshStatus re-derives the order status from its steps.
// Called after every step transition; a cancelled order keeps its status.
func (o *Order) RefreshStatus() {
	if o.status == Cancelled {
		return
	}
	o.status = DeriveStatus(o.steps)
}

// DeriveStatus computes an order status from a set of steps: Pending while
// no step has progressed past pending, Completed once every step is
// terminal, Processing otherwise.
func DeriveStatus(steps []*Step) Status {
	started := false
	finished := true
	for _, s := range steps {
		switch s.Status() {
		case StepPending:
			finished = false
		case StepInProgress:
			started = true
			finished = false
		case StepCompleted, StepSkipped:
			started = true
		}
	}

	if !started {
		return Pending
	}
	if finished {
		return Completed
	}
	return Processing
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNo(orderNo kernel.OrderNo) error {
	if err := orderNo.Validate(); err != nil {
		return err
	}
	o.orderNo = orderNo
	return nil
}

func (o *Order) setPrintType(printType PrintType) error {
	if err := printType.Validate(); err != nil {
		return err
	}
	o.printType = printType
	return nil
}

func (o *Order) setSteps(steps []*Step) error {
	if len(steps) == 0 {
		return errs.NewValueIsRequiredError("steps")
	}

	type position struct {
		category  StepCategory
		stepOrder int
	}
	seen := make(map[position]bool, len(steps))
	for _, s := range steps {
		if err := s.Validate(); err != nil {
			return err
		}
		pos := position{category: s.Category(), stepOrder: s.StepOrder()}
		if seen[pos] {
			return errs.NewValueIsInvalidErrorWithCause("steps is invalid",
				fmt.Errorf("duplicate step order %d in category %s", s.StepOrder(), s.Category()))
		}
		seen[pos] = true
	}

	o.steps = steps
	return nil
}
