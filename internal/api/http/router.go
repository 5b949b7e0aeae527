package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/airport-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/airport-dashboard/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Pages         *handlers.PagesHandler
	Users         *handlers.UsersHandler
	Notifications *handlers.NotificationsHandler
	AirportData   *handlers.AirportDataHandler
	SessionGate   *auth.SessionGate
}

// RegisterRoutes wires HTTP routes. The session gate runs on every route so
// each request carries at most one detached identity snapshot.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.SessionGate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", cfg.Pages.Index)
	app.Get("/passenger", cfg.Pages.PassengerServices)
	app.Get("/signup", cfg.Auth.SignupPage)
	app.Post("/signup", cfg.Auth.Signup)
	app.Get("/login", cfg.Auth.LoginPage)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/logout", cfg.Auth.Logout)

	app.Get("/dashboard/:airport_code", cfg.Pages.Dashboard)
	app.Get("/portal/:role", cfg.Pages.Portal)
	app.Get("/staff", cfg.Pages.StaffPortal)
	app.Get("/staff/gate-management", cfg.Pages.GateManagement)
	app.Get("/settings", cfg.Pages.Settings)

	app.Get("/manage-users", cfg.Users.List)
	app.Post("/manage-users", cfg.Users.Manage)

	api := app.Group("/api")
	api.Post("/staff-notifications", cfg.Notifications.Create)
	api.Get("/staff/notifications", cfg.Notifications.List)
	api.Post("/staff-notifications/:id/ack", cfg.Notifications.Acknowledge)

	api.Get("/admin/staff-allocation", cfg.AirportData.StaffAllocation)
	api.Get("/baggage/track", cfg.AirportData.TrackBaggage)
	api.Post("/complaints/submit", cfg.AirportData.SubmitComplaint)

	airport := api.Group("/airport/:code")
	airport.Get("/dashboard-data", cfg.AirportData.DashboardData)
	airport.Get("/staff-list", cfg.AirportData.StaffList)
	airport.Get("/manager-overview", cfg.AirportData.ManagerOverview)
	airport.Get("/:dataset", cfg.AirportData.Dataset)
}
