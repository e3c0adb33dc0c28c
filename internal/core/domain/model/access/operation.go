package access

import (
	"fmt"

	"printflow/internal/pkg/errs"
)

// Operation names an action a user can attempt on a production step.
// Start, complete and skip drive the step state machine; view, edit_note
// and approve exist only as permission vocabulary.
type Operation int

const (
	// OperationUnknown represents an invalid or undefined operation.
	OperationUnknown Operation = iota

	// OperationStart begins work on a pending step.
	OperationStart

	// OperationComplete finishes a step.
	OperationComplete

	// OperationSkip bypasses a step with a reason.
	OperationSkip

	// OperationView reads step details.
	OperationView

	// OperationEditNote edits a step's annotation.
	OperationEditNote

	// OperationApprove signs off a step.
	OperationApprove
)

func getOperationStrings() map[Operation]string {
	return map[Operation]string{
		OperationStart:    "start",
		OperationComplete: "complete",
		OperationSkip:     "skip",
		OperationView:     "view",
		OperationEditNote: "edit_note",
		OperationApprove:  "approve",
	}
}

// OperationFromString parses the persisted representation of an operation.
func OperationFromString(value string) (Operation, error) {
	for op, str := range getOperationStrings() {
		if str == value {
			return op, nil
		}
	}
	return OperationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"operation is invalid",
		fmt.Errorf("%q is not a valid operation", value),
	)
}

// Validate checks that the Operation is one of the defined values.
func (o Operation) Validate() error {
	if _, ok := getOperationStrings()[o]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"operation is invalid",
			fmt.Errorf("%d is not a valid operation", o),
		)
	}
	return nil
}

// String returns the persisted representation of the operation.
func (o Operation) String() string {
	if str, ok := getOperationStrings()[o]; ok {
		return str
	}
	return "unknown"
}
