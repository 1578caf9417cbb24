package persistence

import (
	"context"

	"afya/internal/domain/entity"
	domainerrors "afya/internal/domain/errors"
	"afya/internal/domain/repository"
	"afya/internal/domain/store"
	"afya/internal/errors"

	"github.com/google/uuid"
)

type staffRepository struct {
	client store.Client
}

// NewStaffRepository creates a staff repository backed by the record store.
func NewStaffRepository(client store.Client) repository.StaffRepository {
	return &staffRepository{client: client}
}

// ListProfiles retrieves every staff profile.
func (r *staffRepository) ListProfiles(ctx context.Context) ([]*entity.UserProfile, error) {
	rows, err := r.client.Select(ctx, store.CollectionProfiles, store.Query{})
	if err != nil {
		return nil, domainerrors.NewTransportError(err, "list profiles")
	}

	profiles := make([]*entity.UserProfile, len(rows))
	for i, row := range rows {
		profiles[i] = &entity.UserProfile{
			ID:           row.UUID("id"),
			FullName:     row.String("full_name"),
			Email:        row.String("email"),
			County:       row.String("county"),
			FacilityName: row.String("facility_name"),
		}
	}

	return profiles, nil
}

// ListRoleAssignments retrieves every role assignment row.
func (r *staffRepository) ListRoleAssignments(ctx context.Context) ([]repository.RoleAssignment, error) {
	rows, err := r.client.Select(ctx, store.CollectionUserRoles, store.Query{})
	if err != nil {
		return nil, domainerrors.NewTransportError(err, "list role assignments")
	}

	assignments := make([]repository.RoleAssignment, len(rows))
	for i, row := range rows {
		assignments[i] = repository.RoleAssignment{
			UserID: row.UUID("user_id"),
			Role:   entity.RoleLabel(row.String("role")),
		}
	}

	return assignments, nil
}

// RolesForUser retrieves the role labels assigned to one user id.
func (r *staffRepository) RolesForUser(ctx context.Context, userID uuid.UUID) (entity.Roles, error) {
	query := store.Query{
		Filter: store.Filter{All: []store.Cond{{Column: "user_id", Op: store.OpEq, Value: userID}}},
	}

	rows, err := r.client.Select(ctx, store.CollectionUserRoles, query)
	if err != nil {
		return nil, domainerrors.NewTransportError(err, "load user roles")
	}

	roles := make(entity.Roles, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, entity.RoleLabel(row.String("role")))
	}

	return roles, nil
}

// GrantRole inserts one (user, role) assignment row. A pre-existing identical
// assignment is not an error; the grant is idempotent.
func (r *staffRepository) GrantRole(ctx context.Context, userID uuid.UUID, role entity.RoleLabel) error {
	row := store.Row{
		"user_id": userID,
		"role":    string(role),
	}

	if _, err := r.client.Insert(ctx, store.CollectionUserRoles, row); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil
		}

		return domainerrors.NewTransportError(err, "grant role")
	}

	return nil
}

// RevokeRole deletes the (user, role) assignment row if present. Revoking an
// absent assignment is a no-op.
func (r *staffRepository) RevokeRole(ctx context.Context, userID uuid.UUID, role entity.RoleLabel) error {
	filter := store.Filter{All: []store.Cond{
		{Column: "user_id", Op: store.OpEq, Value: userID},
		{Column: "role", Op: store.OpEq, Value: string(role)},
	}}

	if err := r.client.Delete(ctx, store.CollectionUserRoles, filter, false); err != nil {
		return domainerrors.NewTransportError(err, "revoke role")
	}

	return nil
}
