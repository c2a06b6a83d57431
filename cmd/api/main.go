package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-workflow/internal/api/http"
	"github.com/spec-kit/ticket-workflow/internal/api/http/handlers"
	"github.com/spec-kit/ticket-workflow/internal/app"
	"github.com/spec-kit/ticket-workflow/internal/config"
	"github.com/spec-kit/ticket-workflow/internal/observability"
)

func main() {
	rosterPath := pflag.String("roster", "", "YAML roster file (overrides ROSTER_FILE)")
	logLevel := pflag.String("log-level", "", "log level (overrides LOG_LEVEL)")
	port := pflag.String("port", "", "HTTP port (overrides APP_PORT)")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *rosterPath != "" {
		if err := cfg.Roster.ApplyFile(*rosterPath); err != nil {
			log.Fatalf("failed to load roster: %v", err)
		}
	}
	if *logLevel != "" {
		cfg.Logger.Level = *logLevel
	}
	if *port != "" {
		cfg.App.Port = *port
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workflow, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build workflow", zap.Error(err))
	}
	defer workflow.Close()

	server := httptransport.NewApp(httptransport.ServerConfig{
		AppName: cfg.App.Name,
		Logger:  logger,
		Metrics: workflow.Metrics,
		Timeout: cfg.App.RequestTimeout(),
		Routes: httptransport.RouteConfig{
			Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, workflow.Redis, workflow.Metrics),
			Tickets: handlers.NewTicketsHandler(workflow.Tickets),
			Workers: handlers.NewWorkersHandler(workflow.Tickets),
		},
	})

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.Strings("employees", cfg.Roster.Employees),
			zap.Strings("supervisors", cfg.Roster.Supervisors),
			zap.Bool("forwarding", workflow.Forwarding()))
		if err := server.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = server.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
