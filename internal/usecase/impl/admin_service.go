package impl

import (
	"context"
	"log/slog"

	"afya/internal/domain/entity"
	"afya/internal/domain/repository"
	"afya/internal/domain/service"
	"afya/internal/usecase"

	"github.com/google/uuid"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	staffRepo repository.StaffRepository
	authz     usecase.AuthzUsecase
	cache     service.QueryCache
	logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(
	staffRepo repository.StaffRepository,
	authz usecase.AuthzUsecase,
	cache service.QueryCache,
	logger *slog.Logger,
) usecase.AdminUsecase {
	return &adminService{
		staffRepo: staffRepo,
		authz:     authz,
		cache:     cache,
		logger:    logger,
	}
}

// ListStaffAccounts retrieves every staff profile joined with its role
// assignments.
func (srv *adminService) ListStaffAccounts(ctx context.Context, actorID uuid.UUID) ([]*entity.StaffAccount, error) {
	if err := srv.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	key := service.NewCacheKey(service.OpAdminUsers)

	return service.Fetch(ctx, srv.cache, key, func(ctx context.Context) ([]*entity.StaffAccount, error) {
		return srv.loadStaffAccounts(ctx)
	})
}

// SetAdmin grants or revokes the admin role on the target user.
func (srv *adminService) SetAdmin(ctx context.Context, actorID, targetID uuid.UUID, grant bool) error {
	if err := srv.authz.RequireAdmin(ctx, actorID); err != nil {
		return err
	}

	var err error
	if grant {
		err = srv.staffRepo.GrantRole(ctx, targetID, entity.RoleAdmin)
	} else {
		err = srv.staffRepo.RevokeRole(ctx, targetID, entity.RoleAdmin)
	}
	if err != nil {
		return err
	}

	srv.logger.Info("admin role changed", "actorID", actorID, "targetID", targetID, "grant", grant)
	srv.cache.Invalidate(service.AnyOf(
		service.ForOperation(service.OpAdminUsers),
		service.ForKey(service.NewCacheKey(service.OpUserRoles, targetID.String())),
	))

	return nil
}

// loadStaffAccounts joins profiles with role assignments. A profile without
// assignments appears with an empty role set; an assignment without a profile
// is dropped.
func (srv *adminService) loadStaffAccounts(ctx context.Context) ([]*entity.StaffAccount, error) {
	profiles, err := srv.staffRepo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	assignments, err := srv.staffRepo.ListRoleAssignments(ctx)
	if err != nil {
		return nil, err
	}

	rolesByUser := make(map[uuid.UUID]entity.Roles, len(profiles))
	for _, assignment := range assignments {
		rolesByUser[assignment.UserID] = append(rolesByUser[assignment.UserID], assignment.Role)
	}

	accounts := make([]*entity.StaffAccount, len(profiles))
	for i, profile := range profiles {
		accounts[i] = &entity.StaffAccount{
			Profile: *profile,
			Roles:   rolesByUser[profile.ID],
		}
	}

	return accounts, nil
}
