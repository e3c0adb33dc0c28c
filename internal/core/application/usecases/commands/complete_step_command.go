package commands

import (
	"errors"

	"printflow/internal/core/domain/model/audit"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/guard"
)

var ErrCompleteStepCommandIsNotConstructed = errors.New(
	"CompleteStepCommand must be created via NewCompleteStepCommand constructor",
)

// CompleteStepCommand represents a request to finish a step. The note is
// optional; when present it overwrites the step's annotation.
type CompleteStepCommand struct { //nolint:recvcheck //using for validation
	stepID kernel.UUID
	userID kernel.UUID
	note   string
	origin audit.RequestOrigin

	guard guard.ConstructorGuard
}

// NewCompleteStepCommand creates a command to complete a step.
func NewCompleteStepCommand(stepID, userID kernel.UUID, note string, origin audit.RequestOrigin) (CompleteStepCommand, error) {
	cmd := CompleteStepCommand{
		note:   note,
		origin: origin,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setUserID(userID),
	); err != nil {
		return CompleteStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStepCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStepCommandIsNotConstructed)
}

// StepID returns the step to complete.
func (c CompleteStepCommand) StepID() kernel.UUID {
	return c.stepID
}

// UserID returns the acting user.
func (c CompleteStepCommand) UserID() kernel.UUID {
	return c.userID
}

// Note returns the optional completion note.
func (c CompleteStepCommand) Note() string {
	return c.note
}

// Origin returns the request's transport metadata for the audit record.
func (c CompleteStepCommand) Origin() audit.RequestOrigin {
	return c.origin
}

func (c *CompleteStepCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}
	c.stepID = stepID
	return nil
}

func (c *CompleteStepCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}
