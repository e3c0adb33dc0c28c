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

// SkipStepCommandHandler bypasses a step with a reason. The order cascade
// is identical to completion.
type SkipStepCommandHandler struct {
	op stepOperation
}

// NewSkipStepCommandHandler creates a handler for skipping steps.
func NewSkipStepCommandHandler(
	uowFactory OrderUoWFactory,
	roles ports.RoleRepository,
	auditLog ports.AuditLogRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) SkipStepCommandHandler {
	return SkipStepCommandHandler{
		op: newStepOperation(uowFactory, roles, auditLog, publisher, logger),
	}
}

// Handle processes the skip attempt and returns the transition outcome.
func (h *SkipStepCommandHandler) Handle(ctx context.Context, cmd SkipStepCommand) (services.Result, error) {
	if err := cmd.Validate(); err != nil {
		return services.Result{}, err
	}

	return h.op.execute(ctx, access.OperationSkip, cmd.StepID(), cmd.UserID(), cmd.Origin(),
		func(o *order.Order, actor *access.Actor, now time.Time) (services.Result, error) {
			return h.op.engine.Skip(o, cmd.StepID(), actor, cmd.Reason(), now)
		})
}
