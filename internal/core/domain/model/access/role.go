package access

import (
	"errors"
	"strings"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"
)

// ErrRoleIsNotConstructed is returned when a Role instance was not created
// through the NewRole constructor.
var ErrRoleIsNotConstructed = errors.New("Role must be created via NewRole constructor")

// Role bundles permission rules under a name assignable to users.
// A role authorizes a request iff at least one of its rules does
// (union semantics, first match wins).
type Role struct {
	id    kernel.UUID
	name  string
	rules []*Rule

	isConstructed bool
}

// NewRole creates a Role with validation. A role without rules is legal
// and grants nothing.
func NewRole(id kernel.UUID, name string, rules []*Rule) (*Role, error) {
	role := &Role{isConstructed: true}

	if err := errors.Join(
		role.setID(id),
		role.setName(name),
		role.setRules(rules),
	); err != nil {
		return nil, err
	}

	return role, nil
}

// Validate ensures the Role was properly constructed.
func (r *Role) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRoleIsNotConstructed
	}
	return nil
}

// ID returns the role's unique identifier.
func (r *Role) ID() kernel.UUID {
	return r.id
}

// Name returns the role's name.
func (r *Role) Name() string {
	return r.name
}

// Rules returns the role's permission rules.
func (r *Role) Rules() []*Rule {
	return r.rules
}

// Authorizes reports whether any rule of the role grants the request.
func (r *Role) Authorizes(stepName string, printType order.PrintType, op Operation, now time.Time) bool {
	decision := r.Evaluate(stepName, printType, op, now)
	return decision.Granted
}

// Evaluate runs the role's rules in order, short-circuiting on the first
// grant, and collects the check trail of every rule that was consulted.
func (r *Role) Evaluate(stepName string, printType order.PrintType, op Operation, now time.Time) Decision {
	decision := Decision{RoleName: r.name}

	for _, rule := range r.rules {
		granted, checks := rule.Evaluate(stepName, printType, op, now)
		decision.Checks = append(decision.Checks, checks...)
		if granted {
			decision.Granted = true
			decision.RuleName = rule.Name()
			return decision
		}
	}

	return decision
}

func (r *Role) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Role) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Role) setRules(rules []*Rule) error {
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return err
		}
	}
	r.rules = rules
	return nil
}
