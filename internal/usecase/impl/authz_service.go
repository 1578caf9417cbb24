// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"afya/internal/domain/entity"
	domainerrors "afya/internal/domain/errors"
	"afya/internal/domain/repository"
	"afya/internal/domain/service"
	"afya/internal/usecase"

	"github.com/google/uuid"
)

// authzService implements the AuthzUsecase interface.
type authzService struct {
	staffRepo repository.StaffRepository
	cache     service.QueryCache
	logger    *slog.Logger
}

// NewAuthzService is the constructor for authzService.
func NewAuthzService(
	staffRepo repository.StaffRepository,
	cache service.QueryCache,
	logger *slog.Logger,
) usecase.AuthzUsecase {
	return &authzService{
		staffRepo: staffRepo,
		cache:     cache,
		logger:    logger,
	}
}

// ResolveRoles returns the role labels assigned to the user, served from the
// query cache when warm.
func (srv *authzService) ResolveRoles(ctx context.Context, userID uuid.UUID) (entity.Roles, error) {
	// An unauthenticated caller has no roles; skip the store and the cache.
	if userID == uuid.Nil {
		return nil, nil
	}

	key := service.NewCacheKey(service.OpUserRoles, userID.String())

	return service.Fetch(ctx, srv.cache, key, func(ctx context.Context) (entity.Roles, error) {
		return srv.staffRepo.RolesForUser(ctx, userID)
	})
}

// Capabilities derives the capability set from the resolved roles. On
// resolution failure the zero set is returned alongside the error, so a caller
// that ignores the error still grants nothing.
func (srv *authzService) Capabilities(ctx context.Context, userID uuid.UUID) (entity.CapabilitySet, error) {
	roles, err := srv.ResolveRoles(ctx, userID)
	if err != nil {
		return entity.CapabilitySet{}, err
	}

	return entity.DeriveCapabilities(roles), nil
}

// RequireAdmin returns ErrAccessDenied unless the user holds the admin role.
func (srv *authzService) RequireAdmin(ctx context.Context, userID uuid.UUID) error {
	roles, err := srv.ResolveRoles(ctx, userID)
	if err != nil {
		// Fail closed: an unreadable role set denies rather than errors out.
		srv.logger.Warn("role resolution failed, denying access", "userID", userID, "error", err)

		return domainerrors.ErrAccessDenied
	}

	if !roles.Contains(entity.RoleAdmin) {
		return domainerrors.ErrAccessDenied
	}

	return nil
}
