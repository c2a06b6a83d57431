package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/ticket-workflow/internal/config"
	"github.com/spec-kit/ticket-workflow/internal/events"
)

type recordingSink struct {
	accept bool
	events []events.Event
}

func (s *recordingSink) Enqueue(e events.Event) bool {
	if !s.accept {
		return false
	}
	s.events = append(s.events, e)
	return true
}

func TestNotificationService_ForwardsAllWorkflowEvents(t *testing.T) {
	svc, dispatcher := newTestService(t)
	core, logs := observer.New(zap.InfoLevel)
	notifier := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{Channel: "ticket-events"})
	sink := &recordingSink{accept: true}
	notifier.AttachSink(sink)
	notifier.RegisterHandlers()

	ctx := context.Background()
	create(t, svc, "others", "x")
	_, err := svc.AssignTicket(ctx, "tom")
	require.NoError(t, err)
	_, err = svc.ResolveTicket(ctx, "tom", "ok")
	require.NoError(t, err)
	_, err = svc.AssignTicket(ctx, "neil")
	require.NoError(t, err)
	_, err = svc.VerifyTicket(ctx, "neil")
	require.NoError(t, err)

	require.Len(t, sink.events, 5)
	assert.Equal(t, events.EventTicketVerified, sink.events[4].Type)
	assert.Equal(t, "neil", sink.events[4].Actor.Name)

	assert.Equal(t, 1, logs.FilterMessage("TicketCreated").Len())
	assert.Equal(t, 2, logs.FilterMessage("TicketAssigned").Len())
	assert.Equal(t, 1, logs.FilterMessage("TicketResolved").Len())
	assert.Equal(t, 1, logs.FilterMessage("TicketVerified").Len())
}

func TestNotificationService_WarnsWhenSinkFull(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	core, logs := observer.New(zap.WarnLevel)
	notifier := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{Channel: "c"})
	notifier.AttachSink(&recordingSink{accept: false})
	notifier.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCreated, TicketID: 3}))
	assert.Equal(t, 1, logs.FilterMessage("notification queue full; dropping event").Len())
}

func TestNotificationService_WithoutDispatcherOrSink(t *testing.T) {
	notifier := NewNotificationService(nil, nil, config.NotificationConfig{})
	notifier.RegisterHandlers()
	assert.NoError(t, notifier.handleTicketCreated(context.Background(), events.Event{Type: events.EventTicketCreated}))
}
