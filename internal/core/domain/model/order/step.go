package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
)

// ErrStepIsNotConstructed is returned when a Step instance was not created
// through NewStep or RestoreStep.
var ErrStepIsNotConstructed = errors.New("Step must be created via NewStep or RestoreStep constructor")

// Step is one unit of production work within an order's pipeline,
// scoped to a category. Steps are created in bulk from the order's
// print-type template and mutated only through the aggregate.
//
// Invariants:
//   - stepOrder is 1-based and unique within (order, category)
//   - status transitions follow the StepStatus state machine
//   - operator is recorded on start, confirming user on completion/skip
type Step struct {
	id          kernel.UUID
	name        string
	description string
	stepOrder   int
	category    StepCategory
	required    bool

	status          StepStatus
	startTime       *time.Time
	endTime         *time.Time
	operatorID      *kernel.UUID
	operatorName    string
	confirmUserID   *kernel.UUID
	confirmUserName string
	note            string

	isConstructed bool
}

// StepRecord carries the full persisted state of a step for rehydration.
type StepRecord struct {
	ID              kernel.UUID
	Name            string
	Description     string
	StepOrder       int
	Category        StepCategory
	Required        bool
	Status          StepStatus
	StartTime       *time.Time
	EndTime         *time.Time
	OperatorID      *kernel.UUID
	OperatorName    string
	ConfirmUserID   *kernel.UUID
	ConfirmUserName string
	Note            string
}

// NewStep creates a pending Step with validation. This is the only way to
// create a fresh step; persistence rehydration goes through RestoreStep.
func NewStep(id kernel.UUID, name string, description string, stepOrder int, category StepCategory, required bool) (*Step, error) {
	step := &Step{
		description:   description,
		required:      required,
		status:        StepPending,
		isConstructed: true,
	}

	if err := errors.Join(
		step.setID(id),
		step.setName(name),
		step.setStepOrder(stepOrder),
		step.setCategory(category),
	); err != nil {
		return nil, err
	}

	return step, nil
}

// RestoreStep reconstructs a Step from persisted state.
// Used by repositories when loading the aggregate.
func RestoreStep(rec StepRecord) (*Step, error) {
	step := &Step{
		description:     rec.Description,
		required:        rec.Required,
		startTime:       rec.StartTime,
		endTime:         rec.EndTime,
		operatorID:      rec.OperatorID,
		operatorName:    rec.OperatorName,
		confirmUserID:   rec.ConfirmUserID,
		confirmUserName: rec.ConfirmUserName,
		note:            rec.Note,
		isConstructed:   true,
	}

	if err := errors.Join(
		step.setID(rec.ID),
		step.setName(rec.Name),
		step.setStepOrder(rec.StepOrder),
		step.setCategory(rec.Category),
		rec.Status.Validate(),
	); err != nil {
		return nil, err
	}
	step.status = rec.Status

	return step, nil
}

// Validate ensures the Step was properly constructed.
func (s *Step) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStepIsNotConstructed
	}
	return nil
}

// IsEqual compares two steps by their unique identifiers.
func (s *Step) IsEqual(other *Step) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the step's unique identifier.
func (s *Step) ID() kernel.UUID {
	return s.id
}

// Name returns the step's name.
func (s *Step) Name() string {
	return s.name
}

// Description returns the step's description.
func (s *Step) Description() string {
	return s.description
}

// StepOrder returns the 1-based ordinal position within the step's category.
func (s *Step) StepOrder() int {
	return s.stepOrder
}

// Category returns the pipeline the step belongs to.
func (s *Step) Category() StepCategory {
	return s.category
}

// Required reports whether the step is marked required by its template.
func (s *Step) Required() bool {
	return s.required
}

// Status returns the current step status.
func (s *Step) Status() StepStatus {
	return s.status
}

// StartTime returns when the step was started, or nil.
func (s *Step) StartTime() *time.Time {
	return s.startTime
}

// EndTime returns when the step was completed or skipped, or nil.
func (s *Step) EndTime() *time.Time {
	return s.endTime
}

// Operator returns the ID of the user who started the step, or nil.
func (s *Step) Operator() *kernel.UUID {
	return s.operatorID
}

// OperatorName returns the name of the user who started the step.
func (s *Step) OperatorName() string {
	return s.operatorName
}

// ConfirmUser returns the ID of the user who completed or skipped the step,
// or nil.
func (s *Step) ConfirmUser() *kernel.UUID {
	return s.confirmUserID
}

// ConfirmUserName returns the name of the user who completed or skipped
// the step.
func (s *Step) ConfirmUserName() string {
	return s.confirmUserName
}

// Note returns the step's free-text annotation. After a skip it holds the
// formatted "skip reason: ..." string, not the raw reason.
func (s *Step) Note() string {
	return s.note
}

// Start moves the step to in_progress, recording the operator and the
// start time. Only a pending step can be started.
func (s *Step) Start(operatorID kernel.UUID, operatorName string, now time.Time) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	newStatus, err := s.status.Start()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.startTime = &now
	s.operatorID = &operatorID
	s.operatorName = operatorName
	return nil
}

// Complete moves the step to completed, recording the confirming user and
// the end time. Allowed from pending or in_progress. A non-empty note
// overwrites any existing annotation.
func (s *Step) Complete(confirmUserID kernel.UUID, confirmUserName string, note string, now time.Time) error {
	if err := confirmUserID.Validate(); err != nil {
		return err
	}

	newStatus, err := s.status.Complete()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.endTime = &now
	s.confirmUserID = &confirmUserID
	s.confirmUserName = confirmUserName
	if note != "" {
		s.note = note
	}
	return nil
}

// Skip moves the step to skipped, recording the confirming user, the end
// time, and the formatted skip annotation. Allowed from pending or
// in_progress.
func (s *Step) Skip(confirmUserID kernel.UUID, confirmUserName string, reason string, now time.Time) error {
	if err := confirmUserID.Validate(); err != nil {
		return err
	}

	newStatus, err := s.status.Skip()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.endTime = &now
	s.confirmUserID = &confirmUserID
	s.confirmUserName = confirmUserName
	s.note = fmt.Sprintf("skip reason: %s", reason)
	return nil
}

func (s *Step) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Step) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Step) setStepOrder(stepOrder int) error {
	if stepOrder < 1 {
		return errs.NewValueIsInvalidErrorWithCause("stepOrder is invalid",
			fmt.Errorf("%d is not greater than 0", stepOrder))
	}
	s.stepOrder = stepOrder
	return nil
}

func (s *Step) setCategory(category StepCategory) error {
	if err := category.Validate(); err != nil {
		return err
	}
	s.category = category
	return nil
}
