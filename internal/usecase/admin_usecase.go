package usecase

import (
	"context"

	"afya/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminUsecase defines the interface for staff and role administration.
// Every operation requires the acting user to hold the admin role.
type AdminUsecase interface {
	// ListStaffAccounts retrieves every staff profile joined with its role
	// assignments. A profile with no assignments appears with an empty role set.
	ListStaffAccounts(ctx context.Context, actorID uuid.UUID) ([]*entity.StaffAccount, error)

	// SetAdmin grants or revokes the admin role on the target user. Granting
	// an already-granted role, or revoking an absent one, is a no-op.
	SetAdmin(ctx context.Context, actorID, targetID uuid.UUID, grant bool) error
}
