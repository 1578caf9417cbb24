package handler

import (
	"net/http"

	deliverycontext "afya/internal/delivery/context"
	"afya/internal/delivery/http/response"
	"afya/internal/domain/entity"
	"afya/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AdminHandler handles staff and role administration endpoints.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(adminUC usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUC: adminUC}
}

// staffAccountResponse is the wire shape of one staff account row.
type staffAccountResponse struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	County       string    `json:"county,omitempty"`
	FacilityName string    `json:"facility_name,omitempty"`
	Roles        []string  `json:"roles"`
	IsAdmin      bool      `json:"is_admin"`
}

func toStaffAccountResponse(account *entity.StaffAccount) staffAccountResponse {
	return staffAccountResponse{
		ID:           account.Profile.ID,
		FullName:     account.Profile.FullName,
		Email:        account.Profile.Email,
		County:       account.Profile.County,
		FacilityName: account.Profile.FacilityName,
		Roles:        account.Roles.ToStrings(),
		IsAdmin:      account.IsAdmin(),
	}
}

// ListStaffAccounts returns every staff profile with its role assignments.
func (h *AdminHandler) ListStaffAccounts(c echo.Context) error {
	accounts, err := h.adminUC.ListStaffAccounts(c.Request().Context(), deliverycontext.GetUserID(c))
	if err != nil {
		return err
	}

	responses := make([]staffAccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = toStaffAccountResponse(account)
	}

	return response.Success(c, http.StatusOK, responses, "")
}

// setAdminRequest toggles the admin role on a target user.
type setAdminRequest struct {
	IsAdmin *bool `json:"is_admin" validate:"required"`
}

// SetAdmin grants or revokes the admin role on the target user.
func (h *AdminHandler) SetAdmin(c echo.Context) error {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "User id must be a UUID")
	}

	var req setAdminRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "BINDING_ERROR", "Malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "is_admin is required")
	}

	actorID := deliverycontext.GetUserID(c)
	if err := h.adminUC.SetAdmin(c.Request().Context(), actorID, targetID, *req.IsAdmin); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Admin role updated")
}
