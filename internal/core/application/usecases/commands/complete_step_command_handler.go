package commands

import (
	"context"
	"log/slog"
	"time"

	"printflow/internal/core/domain/model/access"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/services"
	"printflow/internal/core/ports"
)

// CompleteStepCommandHandler finishes a step, directly from pending or
// from in_progress. The returned result reports whether this completion
// finished the whole order.
type CompleteStepCommandHandler struct {
	op stepOperation
}

// NewCompleteStepCommandHandler creates a handler for completing steps.
func NewCompleteStepCommandHandler(
	uowFactory OrderUoWFactory,
	roles ports.RoleRepository,
	auditLog ports.AuditLogRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompleteStepCommandHandler {
	return CompleteStepCommandHandler{
		op: newStepOperation(uowFactory, roles, auditLog, publisher, logger),
	}
}

// Handle processes the completion attempt and returns the transition
// outcome.
func (h *CompleteStepCommandHandler) Handle(ctx context.Context, cmd CompleteStepCommand) (services.Result, error) {
	if err := cmd.Validate(); err != nil {
		return services.Result{}, err
	}

	return h.op.execute(ctx, access.OperationComplete, cmd.StepID(), cmd.UserID(), cmd.Origin(),
		func(o *order.Order, actor *access.Actor, now time.Time) (services.Result, error) {
			return h.op.engine.Complete(o, cmd.StepID(), actor, cmd.Note(), now)
		})
}
