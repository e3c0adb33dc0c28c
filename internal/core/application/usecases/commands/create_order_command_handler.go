package commands

import (
	"context"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/ports"
)

// CreateOrderCommandHandler creates a new order with its full step list
// materialized from the print-type template, in pending status.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	templates  ports.StepTemplateProvider
	publisher  ports.EventPublisher
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, templates ports.StepTemplateProvider, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		templates:  templates,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle materializes the steps for the order's print type, persists the
// aggregate transactionally and announces the new order to event sinks.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	templates, err := h.templates.TemplateFor(cmd.PrintType())
	if err != nil {
		return err
	}

	steps := make([]*order.Step, 0, len(templates))
	for _, tpl := range templates {
		step, err := order.NewStep(kernel.NewUUID(), tpl.Name, tpl.Description, tpl.StepOrder, tpl.Category, tpl.Required)
		if err != nil {
			return err
		}
		steps = append(steps, step)
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.OrderNo(), cmd.PrintType(), cmd.CustomerName(), cmd.DeliveryDate(), steps)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		h.publisher.PublishOrderChanged(ctx, ports.OrderChangedEvent{
			OrderID:   aggregate.ID().String(),
			OrderNo:   aggregate.OrderNo().String(),
			NewStatus: aggregate.Status().String(),
			Timestamp: h.now(),
		})
	}

	return nil
}
