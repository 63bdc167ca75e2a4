package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/api/http/handlers"
	"github.com/spec-kit/auth-gateway/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Main           *handlers.MainHandler
	Admin          *handlers.AdminHandler
	Join           *handlers.JoinHandler
	Login          *handlers.LoginHandler
	Health         *handlers.HealthHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The policy middleware runs before every
// route, including unmatched paths, so unauthenticated requests never reach a
// handler or the 404 fallthrough.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", cfg.Main.Index)
	app.Get("/admin", cfg.Admin.Index)
	app.Post("/join", cfg.Join.Join)
	app.Post("/login", cfg.Login.Login)
}
