package worker

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-workflow/internal/config"
	"github.com/spec-kit/ticket-workflow/internal/events"
	"github.com/spec-kit/ticket-workflow/internal/service"
)

// Publisher delivers an encoded event to a channel. *persistence.Redis
// satisfies it.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// NotificationWorker drains queued workflow events on its own goroutine so
// slow delivery never holds up a command.
type NotificationWorker struct {
	queue     chan events.Event
	publisher Publisher
	channel   string
	logger    *zap.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewNotificationWorker builds an idle worker. Call Run to start draining.
func NewNotificationWorker(publisher Publisher, cfg config.NotificationConfig, logger *zap.Logger) *NotificationWorker {
	size := cfg.QueueSize
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		queue:     make(chan events.Event, size),
		publisher: publisher,
		channel:   cfg.Channel,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Enqueue offers an event without blocking. It reports false when the
// queue is full or the worker has been closed.
func (w *NotificationWorker) Enqueue(event events.Event) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	select {
	case w.queue <- event:
		return true
	default:
		return false
	}
}

// Run publishes events until Close is called and the queue is drained, or
// ctx is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.queue:
			if !ok {
				return
			}
			w.publish(ctx, event)
		}
	}
}

// Close stops accepting events and waits for Run to finish.
func (w *NotificationWorker) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()
	<-w.done
}

func (w *NotificationWorker) publish(ctx context.Context, event events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		w.logger.Error("encode event", zap.String("event_id", event.ID), zap.Error(err))
		return
	}
	if err := w.publisher.Publish(ctx, w.channel, payload); err != nil {
		w.logger.Warn("publish event",
			zap.String("channel", w.channel),
			zap.String("event_id", event.ID),
			zap.Error(err))
		return
	}
	w.logger.Debug("event published", zap.String("channel", w.channel), zap.String("event_id", event.ID))
}

// StartNotificationWorker registers notification handlers and, when a
// publisher is given, starts forwarding events to it. The returned worker
// is nil when forwarding is off.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, publisher Publisher, cfg config.NotificationConfig, logger *zap.Logger) *NotificationWorker {
	if notificationService == nil {
		return nil
	}
	notificationService.RegisterHandlers()
	if publisher == nil {
		return nil
	}
	w := NewNotificationWorker(publisher, cfg, logger)
	notificationService.AttachSink(w)
	go w.Run(ctx)
	return w
}
