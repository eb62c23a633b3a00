package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resolveit/complaint-sync/internal/api/http/handlers"
	"github.com/resolveit/complaint-sync/internal/auth"
	"github.com/resolveit/complaint-sync/internal/view"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Auth           *handlers.AuthHandler
	Dashboard      *handlers.DashboardHandler
	Alerts         *handlers.AlertsHandler
	Complaints     *handlers.ComplaintsHandler
	Officers       *handlers.OfficersHandler
	Analytics      *handlers.AnalyticsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Get)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/password-reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password-reset", cfg.Auth.ResetPassword)
	app.Post("/officers/register", cfg.Officers.Register)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Post("/auth/logout", cfg.Auth.Logout)
	protected.Get("/dashboard", cfg.Dashboard.Get)
	protected.Get("/alerts", cfg.Alerts.Drain)

	complaints := protected.Group("/complaints")
	complaints.Get("/", cfg.Complaints.List)
	complaints.Post("/refresh", cfg.Complaints.Refresh)
	complaints.Get("/:id", cfg.Complaints.Get)
	complaints.Post("/", auth.RequireAction(view.ActionSubmit), cfg.Complaints.Submit)
	complaints.Post("/:id/status", auth.RequireAction(view.ActionUpdateStatus), cfg.Complaints.UpdateStatus)
	complaints.Post("/:id/priority", auth.RequireAction(view.ActionUpdatePriority), cfg.Complaints.UpdatePriority)
	complaints.Post("/:id/assign", auth.RequireAction(view.ActionAssign), cfg.Complaints.Assign)
	complaints.Post("/:id/escalate", auth.RequireAction(view.ActionEscalate), cfg.Complaints.Escalate)
	complaints.Post("/:id/notes", auth.RequireAction(view.ActionAddNote), cfg.Complaints.AddNote)
	complaints.Post("/:id/replies", auth.RequireAction(view.ActionReply), cfg.Complaints.AddReply)

	officers := protected.Group("/officers")
	officers.Get("/", auth.RequireAction(view.ActionManageOfficers), cfg.Officers.List)
	officers.Get("/pending", auth.RequireAction(view.ActionManageOfficers), cfg.Officers.Pending)
	officers.Post("/pending/:id/approve", auth.RequireAction(view.ActionManageOfficers), cfg.Officers.Approve)
	officers.Post("/pending/:id/reject", auth.RequireAction(view.ActionManageOfficers), cfg.Officers.Reject)
	officers.Get("/:email/workload", auth.RequireAction(view.ActionViewWorkload), cfg.Officers.Workload)

	analytics := protected.Group("/analytics", auth.RequireAction(view.ActionViewAnalytics))
	analytics.Get("/overview", cfg.Analytics.Overview)
	analytics.Get("/local", cfg.Analytics.Local)
}
