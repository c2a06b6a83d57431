package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-workflow/internal/config"
	"github.com/spec-kit/ticket-workflow/internal/events"
	"github.com/spec-kit/ticket-workflow/internal/observability"
	"github.com/spec-kit/ticket-workflow/internal/persistence"
	"github.com/spec-kit/ticket-workflow/internal/repository"
	"github.com/spec-kit/ticket-workflow/internal/service"
	"github.com/spec-kit/ticket-workflow/internal/worker"
)

// App holds the wired workflow engine shared by the HTTP server and the
// command-line driver.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Tickets *service.TicketService
	Redis   *persistence.Redis

	notifier *worker.NotificationWorker
}

// New builds repositories, the event dispatcher, the ticket service and the
// notification pipeline. Event forwarding only starts when Redis is
// configured.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	workers, err := repository.NewWorkerRepository(cfg.Roster.Employees, cfg.Roster.Supervisors)
	if err != nil {
		return nil, fmt.Errorf("build roster: %w", err)
	}

	dispatcher := events.NewInMemoryDispatcher()
	tickets := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repository.NewTicketRepository(),
		WorkerRepo: workers,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)

	// A disabled *Redis must not reach the worker as a non-nil Publisher.
	var publisher worker.Publisher
	if redis.Enabled() {
		publisher = redis
	}
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifier := worker.StartNotificationWorker(ctx, notifications, publisher, cfg.Notification, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  observability.NewMetrics(),
		Tickets:  tickets,
		Redis:    redis,
		notifier: notifier,
	}, nil
}

// Forwarding reports whether workflow events are being published to Redis.
func (a *App) Forwarding() bool {
	return a.notifier != nil
}

// Close drains the notification queue and releases the Redis client.
func (a *App) Close() {
	if a.notifier != nil {
		a.notifier.Close()
	}
	a.Redis.Close()
}
