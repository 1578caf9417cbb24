package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"afya/internal/domain/entity"
	domainerrors "afya/internal/domain/errors"
	"afya/internal/domain/store"
	"afya/internal/errors"
	"afya/internal/infra/cache"
	"afya/internal/infra/persistence"
	"afya/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthzFixture() (*memory.Store, *cache.MemoryQueryCache, *authzService) {
	st := memory.NewStore()
	qc := cache.NewMemoryQueryCache(discardLogger())
	srv := NewAuthzService(persistence.NewStaffRepository(st), qc, discardLogger())

	return st, qc, srv.(*authzService)
}

func TestAuthzResolveRoles(t *testing.T) {
	st, _, srv := newAuthzFixture()
	userID := uuid.New()
	st.Seed(store.CollectionUserRoles,
		store.Row{"user_id": userID, "role": "admin"},
		store.Row{"user_id": userID, "role": "healthcare_worker"},
	)

	roles, err := srv.ResolveRoles(context.Background(), userID)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.Roles{entity.RoleAdmin, entity.RoleHealthcareWorker}, roles)

	// The second resolution is served from the cache even if the store is gone.
	st.Fail(errors.New("store down"))
	roles, err = srv.ResolveRoles(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}

func TestAuthzResolveRolesUnknownUser(t *testing.T) {
	_, _, srv := newAuthzFixture()

	roles, err := srv.ResolveRoles(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestAuthzResolveRolesNilIdentity(t *testing.T) {
	st, _, srv := newAuthzFixture()
	// No store call is made for the nil identity, so a broken store is fine.
	st.Fail(errors.New("store down"))

	roles, err := srv.ResolveRoles(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.Empty(t, roles)

	caps, err := srv.Capabilities(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.False(t, caps.IsAdmin)
	assert.False(t, caps.IsHealthcareWorker)
}

func TestAuthzCapabilities(t *testing.T) {
	st, _, srv := newAuthzFixture()
	worker := uuid.New()
	st.Seed(store.CollectionUserRoles, store.Row{"user_id": worker, "role": "healthcare_worker"})

	caps, err := srv.Capabilities(context.Background(), worker)
	require.NoError(t, err)
	assert.False(t, caps.IsAdmin)
	assert.True(t, caps.IsHealthcareWorker)
}

func TestAuthzCapabilitiesFailClosed(t *testing.T) {
	st, _, srv := newAuthzFixture()
	st.Fail(errors.New("store down"))

	caps, err := srv.Capabilities(context.Background(), uuid.New())
	require.Error(t, err)
	assert.False(t, caps.IsAdmin)
	assert.False(t, caps.IsHealthcareWorker)
	assert.Empty(t, caps.Roles)
}

func TestAuthzRequireAdmin(t *testing.T) {
	st, _, srv := newAuthzFixture()
	admin := uuid.New()
	worker := uuid.New()
	st.Seed(store.CollectionUserRoles,
		store.Row{"user_id": admin, "role": "admin"},
		store.Row{"user_id": worker, "role": "healthcare_worker"},
	)

	assert.NoError(t, srv.RequireAdmin(context.Background(), admin))
	assert.ErrorIs(t, srv.RequireAdmin(context.Background(), worker), domainerrors.ErrAccessDenied)
	assert.ErrorIs(t, srv.RequireAdmin(context.Background(), uuid.New()), domainerrors.ErrAccessDenied)
}

func TestAuthzRequireAdminFailsClosedOnStoreFailure(t *testing.T) {
	st, _, srv := newAuthzFixture()
	st.Fail(errors.New("store down"))

	err := srv.RequireAdmin(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrAccessDenied)
}
