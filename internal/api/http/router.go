package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-records/internal/api/http/handlers"
	"github.com/spec-kit/employee-records/internal/auth"
	"github.com/spec-kit/employee-records/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	Departments    *handlers.DepartmentsHandler
	Leaves         *handlers.LeavesHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The bearer middleware runs on every
// request and only resolves identity; enforcement happens per-route via
// the access-decision handlers, so public routes are simply registered
// without one.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/validate", cfg.Auth.Validate)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", auth.RequireAuthenticated(), cfg.Auth.ChangePassword)

	employees := app.Group("/employees")
	employees.Get("/", auth.RequireAuthenticated(), cfg.Employees.List)
	employees.Get("/:id", auth.RequireAuthenticated(), cfg.Employees.Get)
	employees.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Employees.Create)
	employees.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Employees.Update)
	employees.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Employees.Delete)

	departments := app.Group("/departments")
	departments.Get("/", auth.RequireAuthenticated(), cfg.Departments.List)
	departments.Get("/:id", auth.RequireAuthenticated(), cfg.Departments.Get)
	departments.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Departments.Create)
	departments.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Departments.Update)
	departments.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Departments.Delete)

	leaves := app.Group("/leaves")
	leaves.Post("/", auth.RequireAuthenticated(), cfg.Leaves.Submit)
	leaves.Get("/", auth.RequireAuthenticated(), cfg.Leaves.ListByEmployee)
	leaves.Get("/pending", auth.RequireRole(domain.RoleManager, domain.RoleAdmin), cfg.Leaves.ListPending)
	leaves.Post("/:id/decision", auth.RequireRole(domain.RoleManager, domain.RoleAdmin), cfg.Leaves.Decide)

	reports := app.Group("/reports")
	reports.Get("/headcount", auth.RequireRole(domain.RoleManager, domain.RoleAdmin), cfg.Reports.Headcount)
}
