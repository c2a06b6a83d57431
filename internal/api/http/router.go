package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-workflow/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
	Workers *handlers.WorkersHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	tickets := app.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/status", cfg.Tickets.Summary)
	tickets.Get("/:id", cfg.Tickets.GetTicket)

	workers := app.Group("/workers")
	workers.Get("/", cfg.Workers.ListWorkers)
	workers.Post("/:name/assign", cfg.Workers.Assign)
	workers.Post("/:name/resolve", cfg.Workers.Resolve)
	workers.Post("/:name/verify", cfg.Workers.Verify)
}
