package order

import (
	"fmt"

	"printflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It is derived from
// the order's step statuses and never set arbitrarily, with cancellation
// as the only externally driven transition.
//
// State transitions:
//
//	Pending ──> Processing ──> Completed
//	   │             │
//	   └──> Cancelled <──┘
//
// Completed and Cancelled are final states.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: no production step has started yet.
	Pending

	// Processing indicates at least one step has started and work remains.
	Processing

	// Completed indicates every step is completed or skipped.
	Completed

	// Cancelled indicates the order was cancelled before completion.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Processing: "processing",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Processing: "processing",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// StatusFromString parses the persisted representation of a status.
func StatusFromString(value string) (Status, error) {
	for s, str := range getValidStatusStrings() {
		if str == value {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid order status", value),
	)
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid order status", s),
		)
	}
	return nil
}

// String returns the persisted representation of the status.
// Safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Processing -> Cancelled
//
// Completed and Cancelled orders cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Processing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}

// IsFinal reports whether the status admits no further transitions.
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled
}
