package commands

import (
	"errors"

	"printflow/internal/core/domain/model/audit"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/guard"
)

var ErrStartStepCommandIsNotConstructed = errors.New(
	"StartStepCommand must be created via NewStartStepCommand constructor",
)

// StartStepCommand represents a request to begin work on a step.
// Acknowledged marks the re-invocation after the caller confirmed a
// predecessor's note; nothing is persisted between the two calls.
type StartStepCommand struct { //nolint:recvcheck //using for validation
	stepID       kernel.UUID
	userID       kernel.UUID
	acknowledged bool
	origin       audit.RequestOrigin

	guard guard.ConstructorGuard
}

// NewStartStepCommand creates a command to start a step.
func NewStartStepCommand(stepID, userID kernel.UUID, acknowledged bool, origin audit.RequestOrigin) (StartStepCommand, error) {
	cmd := StartStepCommand{
		acknowledged: acknowledged,
		origin:       origin,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setUserID(userID),
	); err != nil {
		return StartStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartStepCommand) Validate() error {
	return c.guard.Validate(ErrStartStepCommandIsNotConstructed)
}

// StepID returns the step to start.
func (c StartStepCommand) StepID() kernel.UUID {
	return c.stepID
}

// UserID returns the acting user.
func (c StartStepCommand) UserID() kernel.UUID {
	return c.userID
}

// Acknowledged reports whether a predecessor note was acknowledged.
func (c StartStepCommand) Acknowledged() bool {
	return c.acknowledged
}

// Origin returns the request's transport metadata for the audit record.
func (c StartStepCommand) Origin() audit.RequestOrigin {
	return c.origin
}

func (c *StartStepCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}
	c.stepID = stepID
	return nil
}

func (c *StartStepCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}
