package handler

import (
	"net/http"

	deliverycontext "afya/internal/delivery/context"
	"afya/internal/delivery/http/response"
	"afya/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AccountHandler handles endpoints about the authenticated caller.
type AccountHandler struct {
	authzUC usecase.AuthzUsecase
}

// NewAccountHandler is the constructor for AccountHandler.
func NewAccountHandler(authzUC usecase.AuthzUsecase) *AccountHandler {
	return &AccountHandler{authzUC: authzUC}
}

// capabilitiesResponse is the wire shape of the caller's capability set.
type capabilitiesResponse struct {
	Roles              []string `json:"roles"`
	IsAdmin            bool     `json:"is_admin"`
	IsHealthcareWorker bool     `json:"is_healthcare_worker"`
}

// Capabilities returns the roles and capability flags of the caller.
func (h *AccountHandler) Capabilities(c echo.Context) error {
	caps, err := h.authzUC.Capabilities(c.Request().Context(), deliverycontext.GetUserID(c))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, capabilitiesResponse{
		Roles:              caps.Roles.ToStrings(),
		IsAdmin:            caps.IsAdmin,
		IsHealthcareWorker: caps.IsHealthcareWorker,
	}, "")
}
