package persistence

import (
	"context"
	"testing"

	"afya/internal/domain/entity"
	domainerrors "afya/internal/domain/errors"
	"afya/internal/domain/store"
	"afya/internal/errors"
	"afya/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffRepositoryListProfiles(t *testing.T) {
	st := memory.NewStore()
	repo := NewStaffRepository(st)

	id := uuid.New()
	st.Seed(store.CollectionProfiles, store.Row{
		"id":            id,
		"full_name":     "Grace Njeri",
		"email":         "grace@example.org",
		"county":        "Kiambu",
		"facility_name": "Kiambu Level 5",
	})

	profiles, err := repo.ListProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	assert.Equal(t, id, profiles[0].ID)
	assert.Equal(t, "Grace Njeri", profiles[0].FullName)
	assert.Equal(t, "grace@example.org", profiles[0].Email)
	assert.Equal(t, "Kiambu Level 5", profiles[0].FacilityName)
}

func TestStaffRepositoryRolesForUser(t *testing.T) {
	st := memory.NewStore()
	repo := NewStaffRepository(st)

	userID := uuid.New()
	otherID := uuid.New()
	st.Seed(store.CollectionUserRoles,
		store.Row{"user_id": userID, "role": "admin"},
		store.Row{"user_id": userID, "role": "healthcare_worker"},
		store.Row{"user_id": otherID, "role": "healthcare_worker"},
	)

	roles, err := repo.RolesForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.Roles{entity.RoleAdmin, entity.RoleHealthcareWorker}, roles)

	roles, err = repo.RolesForUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestStaffRepositoryGrantRoleIdempotent(t *testing.T) {
	st := memory.NewStore()
	repo := NewStaffRepository(st)
	userID := uuid.New()

	require.NoError(t, repo.GrantRole(context.Background(), userID, entity.RoleAdmin))
	require.NoError(t, repo.GrantRole(context.Background(), userID, entity.RoleAdmin))

	assert.Len(t, st.Rows(store.CollectionUserRoles), 1)
}

func TestStaffRepositoryRevokeRole(t *testing.T) {
	st := memory.NewStore()
	repo := NewStaffRepository(st)
	userID := uuid.New()

	st.Seed(store.CollectionUserRoles,
		store.Row{"user_id": userID, "role": "admin"},
		store.Row{"user_id": userID, "role": "healthcare_worker"},
	)

	require.NoError(t, repo.RevokeRole(context.Background(), userID, entity.RoleAdmin))

	roles, err := repo.RolesForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, entity.Roles{entity.RoleHealthcareWorker}, roles)

	// Revoking an assignment that is already gone stays a no-op.
	require.NoError(t, repo.RevokeRole(context.Background(), userID, entity.RoleAdmin))
}

func TestStaffRepositoryTransportFailure(t *testing.T) {
	st := memory.NewStore()
	repo := NewStaffRepository(st)
	st.Fail(errors.New("tls handshake timeout"))

	_, err := repo.ListRoleAssignments(context.Background())
	require.Error(t, err)

	var transportErr *domainerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "STORE_UNAVAILABLE", transportErr.ErrorCode())
}
