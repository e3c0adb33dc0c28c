package commands

import (
	"context"
	"log/slog"
	"time"

	"printflow/internal/core/domain/model/access"
	"printflow/internal/core/domain/model/audit"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/services"
	"printflow/internal/core/ports"
)

// stepOperation wires the shared machinery of the three step transition
// handlers: actor resolution, the unit of work around the engine call,
// the audit record for the attempt, and event publication after commit.
type stepOperation struct {
	uowFactory OrderUoWFactory
	roles      ports.RoleRepository
	auditLog   ports.AuditLogRepository
	publisher  ports.EventPublisher
	engine     services.WorkflowEngine
	logger     *slog.Logger
	now        func() time.Time
}

func newStepOperation(
	uowFactory OrderUoWFactory,
	roles ports.RoleRepository,
	auditLog ports.AuditLogRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) stepOperation {
	if logger == nil {
		logger = slog.Default()
	}
	return stepOperation{
		uowFactory: uowFactory,
		roles:      roles,
		auditLog:   auditLog,
		publisher:  publisher,
		engine:     services.NewWorkflowEngine(),
		logger:     logger.With("component", "workflow"),
		now:        time.Now,
	}
}

// transition is the engine call a handler runs against the loaded
// aggregate and resolved actor.
type transition func(o *order.Order, actor *access.Actor, now time.Time) (services.Result, error)

// execute runs one attempt end to end. Exactly one audit record is
// written per attempt, for denials and precondition failures as much as
// for successes, and a failing audit write never fails the attempt.
func (s stepOperation) execute(
	ctx context.Context,
	op access.Operation,
	stepID kernel.UUID,
	userID kernel.UUID,
	origin audit.RequestOrigin,
	run transition,
) (services.Result, error) {
	now := s.now()

	actor, err := s.roles.GetActor(ctx, userID)
	if err != nil {
		return services.Result{}, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Result{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByStepID(ctx, stepID)
	if err != nil {
		s.record(ctx, s.buildRecord(op, nil, actor, services.Result{}, err, origin, now))
		return services.Result{}, err
	}

	result, opErr := run(aggregate, actor, now)
	if opErr == nil {
		if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
			s.record(ctx, s.buildRecord(op, aggregate, actor, result, err, origin, now))
			return result, err
		}
		if err := uow.Commit(ctx); err != nil {
			s.record(ctx, s.buildRecord(op, aggregate, actor, result, err, origin, now))
			return result, err
		}
	}

	s.record(ctx, s.buildRecord(op, aggregate, actor, result, opErr, origin, now))

	if opErr != nil {
		return result, opErr
	}

	s.publish(ctx, aggregate, actor, result, now)
	return result, nil
}

func (s stepOperation) buildRecord(
	op access.Operation,
	aggregate *order.Order,
	actor *access.Actor,
	result services.Result,
	opErr error,
	origin audit.RequestOrigin,
	now time.Time,
) audit.OperationLog {
	rec := audit.NewOperationLog(now)
	rec.Operation = op.String()
	rec.StepName = result.StepName
	rec.Origin = origin

	if aggregate != nil {
		rec.OrderNo = aggregate.OrderNo().String()
		rec.PrintType = aggregate.PrintType().String()
	}
	if actor != nil {
		rec.OperatorID = actor.ID()
		rec.OperatorName = actor.Name()
		rec.OperatorRoles = actor.RoleNames()
	}

	rec.Granted = result.Decision.Granted
	rec.RuleUsed = result.Decision.RuleName
	rec.Checks = result.Decision.Checks

	if opErr != nil {
		rec.ErrorMessage = opErr.Error()
		return rec
	}

	rec.Success = true
	rec.Note = result.StepNote
	return rec
}

// record appends the audit row, swallowing any storage failure. The
// attempt's outcome must never depend on the audit channel.
func (s stepOperation) record(ctx context.Context, rec audit.OperationLog) {
	if s.auditLog == nil {
		return
	}
	if err := s.auditLog.Append(ctx, rec); err != nil {
		s.logger.ErrorContext(ctx, "audit append failed",
			"operation", rec.Operation,
			"orderNo", rec.OrderNo,
			"error", err)
	}
}

func (s stepOperation) publish(ctx context.Context, aggregate *order.Order, actor *access.Actor, result services.Result, now time.Time) {
	if s.publisher == nil {
		return
	}

	s.publisher.PublishStepChanged(ctx, ports.StepChangedEvent{
		OrderID:      aggregate.ID().String(),
		OrderNo:      aggregate.OrderNo().String(),
		StepID:       result.StepID.String(),
		StepName:     result.StepName,
		OldStatus:    result.OldStepStatus.String(),
		NewStatus:    result.NewStepStatus.String(),
		OperatorName: actor.Name(),
		Timestamp:    now,
	})

	if result.NewOrderStatus != result.OldOrderStatus {
		s.publisher.PublishOrderChanged(ctx, ports.OrderChangedEvent{
			OrderID:   aggregate.ID().String(),
			OrderNo:   aggregate.OrderNo().String(),
			OldStatus: result.OldOrderStatus.String(),
			NewStatus: result.NewOrderStatus.String(),
			Timestamp: now,
		})
	}
}
