package services

import (
	"fmt"
	"time"

	"printflow/internal/core/domain/model/access"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
)

// WorkflowEngine is the domain service driving the three legal step
// transitions. It evaluates permissions, status preconditions and
// precedence against an explicit snapshot (loaded aggregate, resolved
// actor, clock instant) and mutates the aggregate in memory; persistence
// and audit are the caller's concern.
//
// Precedence is checked within the step's own category only; the
// acknowledgement scan for predecessor notes runs across categories by
// global step order. The two traversals stay separate: one is a
// per-pipeline ordering constraint, the other a chronological note
// handoff.
type WorkflowEngine struct{}

// NewWorkflowEngine creates a new WorkflowEngine instance.
func NewWorkflowEngine() WorkflowEngine {
	return WorkflowEngine{}
}

// Result describes the outcome of a transition attempt. Decision is
// populated as soon as authorization has been evaluated, even when the
// attempt fails later, so callers can audit every attempt with its
// check trail.
type Result struct {
	Decision       access.Decision
	StepID         kernel.UUID
	StepName       string
	StepNote       string
	OldStepStatus  order.StepStatus
	NewStepStatus  order.StepStatus
	OldOrderStatus order.Status
	NewOrderStatus order.Status

	// OrderCompleted reports whether this transition finished the
	// whole order.
	OrderCompleted bool
}

// Start begins work on a pending step.
//
// Preconditions run strictly in this order, short-circuiting on the
// first failure: references, permission, step status, same-category
// precedence, predecessor note. The note check is skipped when
// acknowledged is true; calling Start twice before acknowledgement is
// harmless since the soft stop mutates nothing.
//
// On success the step moves to in_progress with the operator and start
// time recorded, and a pending order moves to processing.
func (e WorkflowEngine) Start(o *order.Order, stepID kernel.UUID, actor *access.Actor, acknowledged bool, now time.Time) (Result, error) {
	var result Result

	step, err := e.resolve(o, stepID, actor)
	if err != nil {
		return result, err
	}
	result.StepID = step.ID()
	result.StepName = step.Name()
	result.OldStepStatus = step.Status()
	result.OldOrderStatus = o.Status()

	result.Decision = actor.Authorize(step.Name(), o.PrintType(), access.OperationStart, now)
	if !result.Decision.Granted {
		return result, &PermissionDeniedError{Operation: access.OperationStart, StepName: step.Name(), Decision: result.Decision}
	}

	if step.Status() != order.StepPending {
		return result, &InvalidStateTransitionError{Operation: access.OperationStart, StepName: step.Name(), From: step.Status()}
	}

	if incomplete := e.openPredecessorsInCategory(o, step); len(incomplete) > 0 {
		return result, &PrecedingStepsIncompleteError{StepName: step.Name(), IncompleteNames: incomplete}
	}

	if !acknowledged {
		if prev := e.latestFinishedPredecessor(o, step); prev != nil && prev.Note() != "" {
			return result, &NeedsAcknowledgementError{StepName: step.Name(), PreviousStepName: prev.Name(), Note: prev.Note()}
		}
	}

	if err := step.Start(actor.ID(), actor.Name(), now); err != nil {
		return result, err
	}
	e.finish(&result, o, step)

	return result, nil
}

// Complete finishes a step, directly from pending or from in_progress.
// A non-empty note overwrites the step's annotation. If no open step
// remains afterwards the order is completed and the result says so.
func (e WorkflowEngine) Complete(o *order.Order, stepID kernel.UUID, actor *access.Actor, note string, now time.Time) (Result, error) {
	var result Result

	step, err := e.resolve(o, stepID, actor)
	if err != nil {
		return result, err
	}
	result.StepID = step.ID()
	result.StepName = step.Name()
	result.OldStepStatus = step.Status()
	result.OldOrderStatus = o.Status()

	result.Decision = actor.Authorize(step.Name(), o.PrintType(), access.OperationComplete, now)
	if !result.Decision.Granted {
		return result, &PermissionDeniedError{Operation: access.OperationComplete, StepName: step.Name(), Decision: result.Decision}
	}

	if step.Status().IsTerminal() {
		return result, &InvalidStateTransitionError{Operation: access.OperationComplete, StepName: step.Name(), From: step.Status()}
	}

	if err := step.Complete(actor.ID(), actor.Name(), note, now); err != nil {
		return result, err
	}
	e.finish(&result, o, step)

	return result, nil
}

// Skip bypasses a step with a reason, from pending or in_progress. The
// step's note is replaced with the formatted "skip reason: ..." string.
// The order cascade is identical to Complete.
func (e WorkflowEngine) Skip(o *order.Order, stepID kernel.UUID, actor *access.Actor, reason string, now time.Time) (Result, error) {
	var result Result

	step, err := e.resolve(o, stepID, actor)
	if err != nil {
		return result, err
	}
	result.StepID = step.ID()
	result.StepName = step.Name()
	result.OldStepStatus = step.Status()
	result.OldOrderStatus = o.Status()

	result.Decision = actor.Authorize(step.Name(), o.PrintType(), access.OperationSkip, now)
	if !result.Decision.Granted {
		return result, &PermissionDeniedError{Operation: access.OperationSkip, StepName: step.Name(), Decision: result.Decision}
	}

	if step.Status().IsTerminal() {
		return result, &InvalidStateTransitionError{Operation: access.OperationSkip, StepName: step.Name(), From: step.Status()}
	}

	if err := step.Skip(actor.ID(), actor.Name(), reason, now); err != nil {
		return result, err
	}
	e.finish(&result, o, step)

	return result, nil
}

// resolve validates the references of an attempt.
func (e WorkflowEngine) resolve(o *order.Order, stepID kernel.UUID, actor *access.Actor) (*order.Step, error) {
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("%w: order (%v)", ErrInvalidReference, err)
	}
	if err := actor.Validate(); err != nil {
		return nil, fmt.Errorf("%w: actor (%v)", ErrInvalidReference, err)
	}

	step, err := o.StepByID(stepID)
	if err != nil {
		return nil, fmt.Errorf("%w: step %s", ErrInvalidReference, stepID)
	}
	return step, nil
}

// openPredecessorsInCategory returns the names of same-category steps
// with a smaller step order that are neither completed nor skipped.
func (e WorkflowEngine) openPredecessorsInCategory(o *order.Order, step *order.Step) []string {
	var names []string
	for _, s := range o.StepsInCategory(step.Category()) {
		if s.StepOrder() < step.StepOrder() && !s.Status().IsTerminal() {
			names = append(names, s.Name())
		}
	}
	return names
}

// latestFinishedPredecessor returns the finished step with the highest
// step order below the given step's, scanning across both categories.
// Ties between categories resolve to the later step in template order.
func (e WorkflowEngine) latestFinishedPredecessor(o *order.Order, step *order.Step) *order.Step {
	var prev *order.Step
	for _, s := range o.Steps() {
		if s.StepOrder() >= step.StepOrder() || !s.Status().IsTerminal() {
			continue
		}
		if prev == nil || s.StepOrder() >= prev.StepOrder() {
			prev = s
		}
	}
	return prev
}

// finish fills the result fields after a successful mutation and
// cascades the order status.
func (e WorkflowEngine) finish(result *Result, o *order.Order, step *order.Step) {
	o.RefreshStatus()
	result.StepNote = step.Note()
	result.NewStepStatus = step.Status()
	result.NewOrderStatus = o.Status()
	result.OrderCompleted = o.Status() == order.Completed && result.OldOrderStatus != order.Completed
}
