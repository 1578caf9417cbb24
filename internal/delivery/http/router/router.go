// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"afya/internal/delivery/http/middleware"
	"afya/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	PatientHandler   *handler.PatientHandler
	AdminHandler     *handler.AdminHandler
	DashboardHandler *handler.DashboardHandler
	AccountHandler   *handler.AccountHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	patientHandler   *handler.PatientHandler
	adminHandler     *handler.AdminHandler
	dashboardHandler *handler.DashboardHandler
	accountHandler   *handler.AccountHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		patientHandler:   params.PatientHandler,
		adminHandler:     params.AdminHandler,
		dashboardHandler: params.DashboardHandler,
		accountHandler:   params.AccountHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Caller identity routes
	accountGroup := e.Group("/account")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.GET("/capabilities", r.accountHandler.Capabilities)
	}

	// Patient record routes: any authenticated staff member
	patientGroup := e.Group("/patients")
	patientGroup.Use(r.authMiddleware.Authenticate)
	{
		patientGroup.GET("", r.patientHandler.ListPatients)
		patientGroup.POST("", r.patientHandler.CreatePatient)
		patientGroup.GET("/:id", r.patientHandler.GetPatient)
		patientGroup.PUT("/:id", r.patientHandler.UpdatePatient)
		patientGroup.DELETE("/:id", r.patientHandler.DeletePatient)
	}

	// Dashboard routes: any authenticated staff member
	dashboardGroup := e.Group("/dashboard")
	dashboardGroup.Use(r.authMiddleware.Authenticate)
	{
		dashboardGroup.GET("/summary", r.dashboardHandler.Summary)
		dashboardGroup.GET("/counties", r.dashboardHandler.Counties)
	}

	// Administration routes: authenticated admins only
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/users", r.adminHandler.ListStaffAccounts)
		adminGroup.PUT("/users/:id/admin-role", r.adminHandler.SetAdmin)
	}
}
