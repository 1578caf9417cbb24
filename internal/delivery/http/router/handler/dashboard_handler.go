package handler

import (
	"net/http"

	"afya/internal/delivery/http/response"
	"afya/internal/usecase"

	"github.com/labstack/echo/v4"
)

// DashboardHandler handles the aggregated dashboard endpoints.
type DashboardHandler struct {
	dashboardUC usecase.DashboardUsecase
}

// NewDashboardHandler is the constructor for DashboardHandler.
func NewDashboardHandler(dashboardUC usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// Summary returns the dashboard figures.
func (h *DashboardHandler) Summary(c echo.Context) error {
	summary, err := h.dashboardUC.Summary(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, summary, "")
}

// Counties returns the distinct counties for search filters.
func (h *DashboardHandler) Counties(c echo.Context) error {
	counties, err := h.dashboardUC.Counties(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, counties, "")
}
