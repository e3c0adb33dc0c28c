package commands

import (
	"context"
	"time"

	"printflow/internal/core/ports"
)

// CancelOrderCommandHandler cancels a pending or processing order.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle cancels the order transactionally and announces the status
// change to event sinks.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	oldStatus := aggregate.Status()
	if err := aggregate.Cancel(); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		h.publisher.PublishOrderChanged(ctx, ports.OrderChangedEvent{
			OrderID:   aggregate.ID().String(),
			OrderNo:   aggregate.OrderNo().String(),
			OldStatus: oldStatus.String(),
			NewStatus: aggregate.Status().String(),
			Timestamp: h.now(),
		})
	}

	return nil
}
