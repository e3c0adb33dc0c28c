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

// StartStepCommandHandler begins work on a pending step. The engine call
// and the aggregate update share one transaction; the audit record and
// the change events sit outside it.
type StartStepCommandHandler struct {
	op stepOperation
}

// NewStartStepCommandHandler creates a handler for starting steps.
func NewStartStepCommandHandler(
	uowFactory OrderUoWFactory,
	roles ports.RoleRepository,
	auditLog ports.AuditLogRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) StartStepCommandHandler {
	return StartStepCommandHandler{
		op: newStepOperation(uowFactory, roles, auditLog, publisher, logger),
	}
}

// Handle processes the start attempt and returns the transition outcome.
// A NeedsAcknowledgementError is a soft stop: state is untouched and the
// caller re-submits with acknowledged set.
func (h *StartStepCommandHandler) Handle(ctx context.Context, cmd StartStepCommand) (services.Result, error) {
	if err := cmd.Validate(); err != nil {
		return services.Result{}, err
	}

	return h.op.execute(ctx, access.OperationStart, cmd.StepID(), cmd.UserID(), cmd.Origin(),
		func(o *order.Order, actor *access.Actor, now time.Time) (services.Result, error) {
			return h.op.engine.Start(o, cmd.StepID(), actor, cmd.Acknowledged(), now)
		})
}
