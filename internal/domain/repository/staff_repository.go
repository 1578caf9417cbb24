package repository

import (
	"context"

	"afya/internal/domain/entity"

	"github.com/google/uuid"
)

// RoleAssignment is one (user, role) pair from the role assignment collection.
type RoleAssignment struct {
	UserID uuid.UUID
	Role   entity.RoleLabel
}

// StaffRepository reads staff profiles and reads/writes role assignments.
// Profiles are provisioned externally and are read-only here.
type StaffRepository interface {
	// ListProfiles retrieves every staff profile.
	ListProfiles(ctx context.Context) ([]*entity.UserProfile, error)

	// ListRoleAssignments retrieves every role assignment row.
	ListRoleAssignments(ctx context.Context) ([]RoleAssignment, error)

	// RolesForUser retrieves the role labels assigned to one user id.
	RolesForUser(ctx context.Context, userID uuid.UUID) (entity.Roles, error)

	// GrantRole inserts one (user, role) assignment row.
	GrantRole(ctx context.Context, userID uuid.UUID, role entity.RoleLabel) error

	// RevokeRole deletes the (user, role) assignment row if present.
	RevokeRole(ctx context.Context, userID uuid.UUID, role entity.RoleLabel) error
}
