package services

import (
	"errors"
	"fmt"
	"strings"

	"printflow/internal/core/domain/model/access"
	"printflow/internal/core/domain/model/order"
)

// Sentinel errors classifying workflow failures. All are expected,
// recoverable-by-caller conditions; callers match them with errors.Is.
var (
	// ErrInvalidReference indicates a missing order, step or actor.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrPermissionDenied indicates no rule of the actor grants the operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidStateTransition indicates a status precondition violation.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrPrecedingStepsIncomplete indicates earlier same-category steps
	// are still open.
	ErrPrecedingStepsIncomplete = errors.New("preceding steps incomplete")

	// ErrNeedsAcknowledgement is the soft stop: a finished predecessor
	// left a note the caller must acknowledge before starting the step.
	ErrNeedsAcknowledgement = errors.New("needs acknowledgement")
)

// PermissionDeniedError carries the full authorization decision so the
// denial can be audited with its check trail.
type PermissionDeniedError struct {
	Operation access.Operation
	StepName  string
	Decision  access.Decision
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: no rule authorizes %s on step %s", ErrPermissionDenied, e.Operation, e.StepName)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// InvalidStateTransitionError reports an operation attempted from a step
// status that does not allow it.
type InvalidStateTransitionError struct {
	Operation access.Operation
	StepName  string
	From      order.StepStatus
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s step %s from status %s", ErrInvalidStateTransition, e.Operation, e.StepName, e.From)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// PrecedingStepsIncompleteError lists the names of the same-category
// steps that must finish first.
type PrecedingStepsIncompleteError struct {
	StepName        string
	IncompleteNames []string
}

func (e *PrecedingStepsIncompleteError) Error() string {
	return fmt.Sprintf("%s: step %s requires %s to finish first",
		ErrPrecedingStepsIncomplete, e.StepName, strings.Join(e.IncompleteNames, ", "))
}

func (e *PrecedingStepsIncompleteError) Unwrap() error {
	return ErrPrecedingStepsIncomplete
}

// NeedsAcknowledgementError is not a hard failure: it tells the caller to
// show the predecessor's note and re-invoke start once acknowledged.
// No state is persisted between the two calls.
type NeedsAcknowledgementError struct {
	StepName         string
	PreviousStepName string
	Note             string
}

func (e *NeedsAcknowledgementError) Error() string {
	return fmt.Sprintf("%s: step %s carries a note: %s", ErrNeedsAcknowledgement, e.PreviousStepName, e.Note)
}

func (e *NeedsAcknowledgementError) Unwrap() error {
	return ErrNeedsAcknowledgement
}
