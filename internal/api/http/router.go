package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/society-portal/internal/api/http/handlers"
	"github.com/spec-kit/society-portal/internal/auth"
	"github.com/spec-kit/society-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Bills          *handlers.BillsHandler
	Residents      *handlers.ResidentsHandler
	Stats          *handlers.StatsHandler
	ResidentBills  *handlers.ResidentBillsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/stats", cfg.Stats.Stats)
	admin.Get("/bills", cfg.Bills.ListBills)
	admin.Post("/bills", cfg.Bills.CreateBill)
	admin.Get("/residents", cfg.Residents.ListResidents)

	resident := api.Group("/resident", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleResident))
	resident.Get("/bills", cfg.ResidentBills.ListOwnBills)
	resident.Post("/pay", cfg.ResidentBills.Pay)
}
