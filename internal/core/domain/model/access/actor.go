package access

import (
	"errors"
	"strings"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not
// created through the NewActor constructor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the acting user as resolved by the identity provider at call
// time: identity plus the snapshot of held roles. The engine never fetches
// roles itself; it evaluates whatever snapshot it is handed.
type Actor struct {
	id    kernel.UUID
	name  string
	roles []*Role

	isConstructed bool
}

// NewActor creates an Actor with validation. An actor without roles is
// legal and is denied everything.
func NewActor(id kernel.UUID, name string, roles []*Role) (*Actor, error) {
	actor := &Actor{isConstructed: true}

	if err := errors.Join(
		actor.setID(id),
		actor.setName(name),
		actor.setRoles(roles),
	); err != nil {
		return nil, err
	}

	return actor, nil
}

// Validate ensures the Actor was properly constructed.
func (a *Actor) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor's unique identifier.
func (a *Actor) ID() kernel.UUID {
	return a.id
}

// Name returns the actor's display name.
func (a *Actor) Name() string {
	return a.name
}

// Roles returns the actor's held roles.
func (a *Actor) Roles() []*Role {
	return a.roles
}

// RoleNames returns the names of the held roles, for audit snapshots.
func (a *Actor) RoleNames() []string {
	names := make([]string, 0, len(a.roles))
	for _, role := range a.roles {
		names = append(names, role.Name())
	}
	return names
}

// Authorize evaluates the request against the actor's roles in order,
// short-circuiting on the first grant. The returned decision carries the
// granting role and rule if any, and the full trail of checks consulted.
func (a *Actor) Authorize(stepName string, printType order.PrintType, op Operation, now time.Time) Decision {
	var all []Check

	for _, role := range a.roles {
		decision := role.Evaluate(stepName, printType, op, now)
		all = append(all, decision.Checks...)
		if decision.Granted {
			decision.Checks = all
			return decision
		}
	}

	return Decision{Checks: all}
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *Actor) setRoles(roles []*Role) error {
	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return err
		}
	}
	a.roles = roles
	return nil
}
