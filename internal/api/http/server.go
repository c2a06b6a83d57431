package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-workflow/internal/observability"
)

// ServerConfig bundles what NewApp needs.
type ServerConfig struct {
	AppName string
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Timeout time.Duration
	Routes  RouteConfig
}

// NewApp builds a fiber app with middlewares and routes registered.
func NewApp(cfg ServerConfig) *fiber.App {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, cfg.Metrics, cfg.Timeout)
	RegisterRoutes(app, cfg.Routes)
	return app
}
