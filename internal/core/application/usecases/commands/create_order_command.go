package commands

import (
	"errors"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new printing
// order. The order's steps are materialized from the print-type template
// by the handler.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	orderNo      kernel.OrderNo
	printType    order.PrintType
	customerName string
	deliveryDate *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
func NewCreateOrderCommand(orderID kernel.UUID, orderNo kernel.OrderNo, printType order.PrintType, customerName string, deliveryDate *time.Time) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customerName: customerName,
		deliveryDate: deliveryDate,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderNo(orderNo),
		cmd.setPrintType(printType),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNo returns the business order number.
func (c CreateOrderCommand) OrderNo() kernel.OrderNo {
	return c.orderNo
}

// PrintType returns the production scope of the order.
func (c CreateOrderCommand) PrintType() order.PrintType {
	return c.printType
}

// CustomerName returns the name the order is placed under.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// DeliveryDate returns the promised delivery date, or nil.
func (c CreateOrderCommand) DeliveryDate() *time.Time {
	return c.deliveryDate
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderNo(orderNo kernel.OrderNo) error {
	if err := orderNo.Validate(); err != nil {
		return err
	}
	c.orderNo = orderNo
	return nil
}

func (c *CreateOrderCommand) setPrintType(printType order.PrintType) error {
	if err := printType.Validate(); err != nil {
		return err
	}
	c.printType = printType
	return nil
}
