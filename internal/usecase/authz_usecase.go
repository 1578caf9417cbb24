// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"afya/internal/domain/entity"

	"github.com/google/uuid"
)

// AuthzUsecase resolves the role set of an authenticated identity and derives
// the capabilities the rest of the application keys decisions on.
//
// Resolution is fail-closed: when the role assignments cannot be read the
// identity is treated as holding no roles at all.
type AuthzUsecase interface {
	// ResolveRoles returns the role labels assigned to the user, served from
	// the query cache when warm. Unknown users resolve to an empty set.
	ResolveRoles(ctx context.Context, userID uuid.UUID) (entity.Roles, error)

	// Capabilities derives the capability set from the resolved roles.
	Capabilities(ctx context.Context, userID uuid.UUID) (entity.CapabilitySet, error)

	// RequireAdmin returns domainerrors.ErrAccessDenied unless the user holds
	// the admin role. Resolution failures deny.
	RequireAdmin(ctx context.Context, userID uuid.UUID) error
}
