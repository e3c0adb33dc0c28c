package ports

import (
	"context"

	"printflow/internal/core/domain/model/access"
	"printflow/internal/core/domain/model/kernel"
)

// RoleRepository resolves the acting user's permission snapshot.
// The workflow engine never fetches roles itself; command handlers load
// an immutable Actor snapshot once per call and hand it in.
type RoleRepository interface {
	// GetActor loads a user's identity together with all held roles
	// and their permission rules, as of now.
	GetActor(ctx context.Context, userID kernel.UUID) (*access.Actor, error)
}
