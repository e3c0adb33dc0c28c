package order

import (
	"fmt"

	"printflow/internal/pkg/errs"
)

// StepStatus represents the lifecycle state of a single production step.
//
// State transitions:
//
//	StepPending ──> StepInProgress ──> StepCompleted
//	     │                │
//	     │                └──> StepSkipped
//	     ├──> StepCompleted
//	     └──> StepSkipped
//
// Completing directly from pending is permitted: a step does not have to
// pass through in_progress first. Completed and skipped are terminal.
type StepStatus int

const (
	// StepUnknown represents an invalid or undefined step status.
	StepUnknown StepStatus = iota

	// StepPending is the initial status: the step has not been worked on.
	StepPending

	// StepInProgress indicates an operator has started the step.
	StepInProgress

	// StepCompleted indicates the step finished normally. Terminal.
	StepCompleted

	// StepSkipped indicates the step was bypassed with a reason. Terminal.
	StepSkipped
)

func getStepStatusStrings() map[StepStatus]string {
	return map[StepStatus]string{
		StepUnknown:    "unknown",
		StepPending:    "pending",
		StepInProgress: "in_progress",
		StepCompleted:  "completed",
		StepSkipped:    "skipped",
	}
}

func getValidStepStatusStrings() map[StepStatus]string {
	//nolint:exhaustive // StepUnknown is intentionally excluded as it's invalid
	return map[StepStatus]string{
		StepPending:    "pending",
		StepInProgress: "in_progress",
		StepCompleted:  "completed",
		StepSkipped:    "skipped",
	}
}

// StepStatusFromString parses the persisted representation of a step status.
func StepStatusFromString(value string) (StepStatus, error) {
	for s, str := range getValidStepStatusStrings() {
		if str == value {
			return s, nil
		}
	}
	return StepUnknown, errs.NewValueIsInvalidErrorWithCause(
		"stepStatus is invalid",
		fmt.Errorf("%q is not a valid step status", value),
	)
}

// Validate checks if the StepStatus value is valid.
func (s StepStatus) Validate() error {
	if _, ok := getValidStepStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"stepStatus is invalid",
			fmt.Errorf("%d is not a valid step status", s),
		)
	}
	return nil
}

// String returns the persisted representation of the step status.
// Safe to call on any value, including invalid ones.
func (s StepStatus) String() string {
	if str, ok := getStepStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Start transitions the status to StepInProgress.
// Only a pending step can be started.
func (s StepStatus) Start() (StepStatus, error) {
	if s != StepPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"stepStatus is invalid",
			fmt.Errorf("%s is not a valid status to start", s.String()),
		)
	}
	return StepInProgress, nil
}

// Complete transitions the status to StepCompleted.
// Allowed from pending or in_progress.
func (s StepStatus) Complete() (StepStatus, error) {
	if s != StepPending && s != StepInProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"stepStatus is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return StepCompleted, nil
}

// Skip transitions the status to StepSkipped.
// Allowed from pending or in_progress.
func (s StepStatus) Skip() (StepStatus, error) {
	if s != StepPending && s != StepInProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"stepStatus is invalid",
			fmt.Errorf("%s is not a valid status to skip", s.String()),
		)
	}
	return StepSkipped, nil
}

// IsTerminal reports whether the step can no longer change state.
func (s StepStatus) IsTerminal() bool {
	return s == StepCompleted || s == StepSkipped
}
