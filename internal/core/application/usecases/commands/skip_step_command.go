package commands

import (
	"errors"
	"strings"

	"printflow/internal/core/domain/model/audit"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

var ErrSkipStepCommandIsNotConstructed = errors.New(
	"SkipStepCommand must be created via NewSkipStepCommand constructor",
)

// SkipStepCommand represents a request to bypass a step. A reason is
// mandatory; the step's note ends up as "skip reason: {reason}".
type SkipStepCommand struct { //nolint:recvcheck //using for validation
	stepID kernel.UUID
	userID kernel.UUID
	reason string
	origin audit.RequestOrigin

	guard guard.ConstructorGuard
}

// NewSkipStepCommand creates a command to skip a step.
func NewSkipStepCommand(stepID, userID kernel.UUID, reason string, origin audit.RequestOrigin) (SkipStepCommand, error) {
	cmd := SkipStepCommand{
		origin: origin,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setUserID(userID),
		cmd.setReason(reason),
	); err != nil {
		return SkipStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SkipStepCommand) Validate() error {
	return c.guard.Validate(ErrSkipStepCommandIsNotConstructed)
}

// StepID returns the step to skip.
func (c SkipStepCommand) StepID() kernel.UUID {
	return c.stepID
}

// UserID returns the acting user.
func (c SkipStepCommand) UserID() kernel.UUID {
	return c.userID
}

// Reason returns the raw skip reason.
func (c SkipStepCommand) Reason() string {
	return c.reason
}

// Origin returns the request's transport metadata for the audit record.
func (c SkipStepCommand) Origin() audit.RequestOrigin {
	return c.origin
}

func (c *SkipStepCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}
	c.stepID = stepID
	return nil
}

func (c *SkipStepCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *SkipStepCommand) setReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
