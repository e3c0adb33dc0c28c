package rolerepo

import (
	"context"
	"errors"

	"printflow/internal/core/domain/model/access"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRoleRepository implements ports.RoleRepository using GORM.
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a role repository on the given connection.
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// GetActor loads an operator with all held roles and their rules.
// The returned snapshot is detached from the session; later role edits
// do not affect decisions already in flight.
func (r *GormRoleRepository) GetActor(ctx context.Context, userID kernel.UUID) (*access.Actor, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto OperatorDTO
	err := r.db.WithContext(ctx).
		Preload("Roles.Rules").
		First(&dto, "id = ?", userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("operator", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
