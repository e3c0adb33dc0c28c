package access

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"
)

// ErrRuleIsNotConstructed is returned when a Rule instance was not created
// through the NewRule constructor.
var ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule constructor")

// Rule is a named, reusable permission policy describing which steps,
// operations and time windows a holder may act on. Rules only grant;
// there is no deny rule.
//
// A rule authorizes (step, printType, operation, now) iff all five gates
// pass, evaluated strictly in this order:
//  1. the rule is active
//  2. the print-type scope matches (see Scope.Matches)
//  3. the step allowlist is empty (wildcard) or contains the step name
//  4. the operation is in the allowed set
//  5. the time window allows the current instant
type Rule struct {
	id           kernel.UUID
	name         string
	scope        Scope
	allowedSteps []string
	operations   map[Operation]bool
	window       TimeWindow
	isActive     bool

	// maxConcurrentSteps caps a holder's in-flight steps. Declared on
	// the rule but not enforced by any engine path.
	maxConcurrentSteps int

	// requirePreviousComplete is declared on the rule; the step
	// machine's precedence invariant makes it effectively always true.
	requirePreviousComplete bool

	isConstructed bool
}

// NewRule creates a Rule with validation.
func NewRule(
	id kernel.UUID,
	name string,
	scope Scope,
	allowedSteps []string,
	operations []Operation,
	window TimeWindow,
	isActive bool,
	maxConcurrentSteps int,
	requirePreviousComplete bool,
) (*Rule, error) {
	rule := &Rule{
		allowedSteps:            allowedSteps,
		isActive:                isActive,
		requirePreviousComplete: requirePreviousComplete,
		isConstructed:           true,
	}

	if err := errors.Join(
		rule.setID(id),
		rule.setName(name),
		rule.setScope(scope),
		rule.setOperations(operations),
		rule.setWindow(window),
		rule.setMaxConcurrentSteps(maxConcurrentSteps),
	); err != nil {
		return nil, err
	}

	return rule, nil
}

// Validate ensures the Rule was properly constructed.
func (r *Rule) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRuleIsNotConstructed
	}
	return nil
}

// ID returns the rule's unique identifier.
func (r *Rule) ID() kernel.UUID {
	return r.id
}

// Name returns the rule's unique name.
func (r *Rule) Name() string {
	return r.name
}

// Scope returns the rule's print-type scope.
func (r *Rule) Scope() Scope {
	return r.scope
}

// AllowedSteps returns the step-name allowlist. Empty means all steps.
func (r *Rule) AllowedSteps() []string {
	return r.allowedSteps
}

// Operations returns the allowed operations in no particular order.
func (r *Rule) Operations() []Operation {
	ops := make([]Operation, 0, len(r.operations))
	for op := range r.operations {
		ops = append(ops, op)
	}
	return ops
}

// Window returns the rule's time restriction.
func (r *Rule) Window() TimeWindow {
	return r.window
}

// IsActive reports whether the rule currently grants anything.
func (r *Rule) IsActive() bool {
	return r.isActive
}

// MaxConcurrentSteps returns the declared concurrency cap (0 = none).
func (r *Rule) MaxConcurrentSteps() int {
	return r.maxConcurrentSteps
}

// RequiresPreviousComplete returns the declared precedence flag.
func (r *Rule) RequiresPreviousComplete() bool {
	return r.requirePreviousComplete
}

// Authorizes evaluates the five gates and reports whether all pass.
func (r *Rule) Authorizes(stepName string, printType order.PrintType, op Operation, now time.Time) bool {
	granted, _ := r.Evaluate(stepName, printType, op, now)
	return granted
}

// Evaluate runs the gates in order, short-circuiting on the first failure,
// and returns the grant result plus the trail of checks that ran.
func (r *Rule) Evaluate(stepName string, printType order.PrintType, op Operation, now time.Time) (bool, []Check) {
	checks := make([]Check, 0, 5)

	record := func(name string, passed bool, detail string) bool {
		checks = append(checks, Check{Rule: r.name, Name: name, Passed: passed, Detail: detail})
		return passed
	}

	if !record("is_active", r.isActive, "") {
		return false, checks
	}
	if !record("print_type", r.scope.Matches(printType),
		fmt.Sprintf("scope %s, order %s", r.scope, printType)) {
		return false, checks
	}
	if !record("step_name", r.stepAllowed(stepName), stepName) {
		return false, checks
	}
	if !record("operation", r.operations[op], op.String()) {
		return false, checks
	}
	if !record("time_window", r.window.Allows(now), r.window.String()) {
		return false, checks
	}

	return true, checks
}

func (r *Rule) stepAllowed(stepName string) bool {
	if len(r.allowedSteps) == 0 {
		return true
	}
	for _, name := range r.allowedSteps {
		if name == stepName {
			return true
		}
	}
	return false
}

func (r *Rule) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rule) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Rule) setScope(scope Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	r.scope = scope
	return nil
}

func (r *Rule) setOperations(operations []Operation) error {
	if len(operations) == 0 {
		return errs.NewValueIsRequiredError("operations")
	}
	r.operations = make(map[Operation]bool, len(operations))
	for _, op := range operations {
		if err := op.Validate(); err != nil {
			return err
		}
		r.operations[op] = true
	}
	return nil
}

func (r *Rule) setWindow(window TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	r.window = window
	return nil
}

func (r *Rule) setMaxConcurrentSteps(limit int) error {
	if limit < 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxConcurrentSteps is invalid",
			fmt.Errorf("%d is negative", limit))
	}
	r.maxConcurrentSteps = limit
	return nil
}
