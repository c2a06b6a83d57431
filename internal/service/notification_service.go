package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-workflow/internal/config"
	"github.com/spec-kit/ticket-workflow/internal/events"
)

// EventSink accepts events for asynchronous delivery. Enqueue must not block.
type EventSink interface {
	Enqueue(event events.Event) bool
}

// NotificationService handles emitting notifications for workflow events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	sink       EventSink
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// AttachSink sets where events are forwarded after being logged.
func (n *NotificationService) AttachSink(sink EventSink) {
	n.sink = sink
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.dispatcher.Subscribe(events.EventTicketResolved, n.handleTicketResolved)
	n.dispatcher.Subscribe(events.EventTicketVerified, n.handleTicketVerified)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.Int64("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.forward(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketAssigned",
		zap.Int64("ticket_id", event.TicketID),
		zap.String("worker", event.Actor.Name),
		zap.String("role", string(event.Actor.Role)))
	n.forward(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketResolved(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketResolved", zap.Int64("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.forward(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketVerified(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketVerified", zap.Int64("ticket_id", event.TicketID), zap.String("supervisor", event.Actor.Name))
	n.forward(ctx, event)
	return nil
}

func (n *NotificationService) forward(_ context.Context, event events.Event) {
	if n.sink == nil {
		return
	}
	if !n.sink.Enqueue(event) {
		n.logger.Warn("notification queue full; dropping event",
			zap.String("channel", n.cfg.Channel),
			zap.String("event_type", string(event.Type)),
			zap.Int64("ticket_id", event.TicketID))
	}
}
