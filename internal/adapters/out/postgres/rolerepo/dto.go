// Package rolerepo loads operator identities with their roles and
// permission rules. The read produces an immutable access.Actor
// snapshot; role administration writes are out of scope here.
package rolerepo

import (
	"printflow/internal/core/domain/model/access"
	"printflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// OperatorDTO is the database row for a workshop user account.
type OperatorDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(64)"`
	Roles []RoleDTO `gorm:"many2many:operator_roles"`
}

// TableName overrides GORM's default naming to use "operators".
func (OperatorDTO) TableName() string {
	return "operators"
}

// RoleDTO is the database row for a named role.
type RoleDTO struct {
	ID    uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name  string              `gorm:"type:varchar(64);uniqueIndex"`
	Rules []PermissionRuleDTO `gorm:"foreignKey:RoleID;references:ID"`
}

// TableName overrides GORM's default naming to use "roles".
func (RoleDTO) TableName() string {
	return "roles"
}

// PermissionRuleDTO is the database row for one permission rule.
// AllowedSteps and Operations are jsonb arrays; an empty allowed-steps
// array means the rule covers every step.
type PermissionRuleDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID       uuid.UUID `gorm:"type:uuid;index"`
	Name         string    `gorm:"type:varchar(64)"`
	Scope        string    `gorm:"type:varchar(16)"`
	AllowedSteps []string  `gorm:"type:jsonb;serializer:json"`
	Operations   []string  `gorm:"type:jsonb;serializer:json"`
	WindowKind   string    `gorm:"type:varchar(16)"`
	WindowStart  *string   `gorm:"type:varchar(5)"`
	WindowEnd    *string   `gorm:"type:varchar(5)"`
	IsActive     bool

	MaxConcurrentSteps      int
	RequirePreviousComplete bool
}

// TableName overrides GORM's default naming to use "permission_rules".
func (PermissionRuleDTO) TableName() string {
	return "permission_rules"
}

// toDomain reconstructs the actor snapshot from its rows.
func toDomain(dto OperatorDTO) (*access.Actor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	roles := make([]*access.Role, 0, len(dto.Roles))
	for _, roleDTO := range dto.Roles {
		role, roleErr := roleToDomain(roleDTO)
		if roleErr != nil {
			return nil, roleErr
		}
		roles = append(roles, role)
	}

	return access.NewActor(id, dto.Name, roles)
}

func roleToDomain(dto RoleDTO) (*access.Role, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	rules := make([]*access.Rule, 0, len(dto.Rules))
	for _, ruleDTO := range dto.Rules {
		rule, ruleErr := ruleToDomain(ruleDTO)
		if ruleErr != nil {
			return nil, ruleErr
		}
		rules = append(rules, rule)
	}

	return access.NewRole(id, dto.Name, rules)
}

func ruleToDomain(dto PermissionRuleDTO) (*access.Rule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	scope, err := access.ScopeFromString(dto.Scope)
	if err != nil {
		return nil, err
	}

	operations := make([]access.Operation, 0, len(dto.Operations))
	for _, opString := range dto.Operations {
		op, opErr := access.OperationFromString(opString)
		if opErr != nil {
			return nil, opErr
		}
		operations = append(operations, op)
	}

	window, err := windowToDomain(dto)
	if err != nil {
		return nil, err
	}

	return access.NewRule(
		id,
		dto.Name,
		scope,
		dto.AllowedSteps,
		operations,
		window,
		dto.IsActive,
		dto.MaxConcurrentSteps,
		dto.RequirePreviousComplete,
	)
}

func windowToDomain(dto PermissionRuleDTO) (access.TimeWindow, error) {
	kind, err := access.WindowKindFromString(dto.WindowKind)
	if err != nil {
		return access.TimeWindow{}, err
	}

	var start, end *access.ClockTime
	if dto.WindowStart != nil {
		startTime, startErr := access.ClockTimeFromString(*dto.WindowStart)
		if startErr != nil {
			return access.TimeWindow{}, startErr
		}
		start = &startTime
	}
	if dto.WindowEnd != nil {
		endTime, endErr := access.ClockTimeFromString(*dto.WindowEnd)
		if endErr != nil {
			return access.TimeWindow{}, endErr
		}
		end = &endTime
	}

	return access.RestoreTimeWindow(kind, start, end)
}
