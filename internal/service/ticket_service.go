package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-workflow/internal/domain"
	"github.com/spec-kit/ticket-workflow/internal/events"
	"github.com/spec-kit/ticket-workflow/internal/repository"
	apperrors "github.com/spec-kit/ticket-workflow/pkg/util/errorutil"
)

// TicketService is the workflow engine. Every exported method runs to
// completion under mu, so callers on several goroutines still observe one
// command at a time.
type TicketService struct {
	mu         sync.Mutex
	tickets    repository.TicketRepository
	workers    repository.WorkerRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	WorkerRepo repository.WorkerRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Type        string
	Description string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		workers:    deps.WorkerRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateTicket files a new ticket. Predefined types are auto-resolved on the
// spot; the catch-all type joins the open queue.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	ticketType, ok := domain.ParseTicketType(input.Type)
	if !ok {
		return nil, apperrors.NewInvalidTicketType(input.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket := domain.NewTicket(ticketType, input.Description)
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if ticket.State == domain.TicketStateOpen {
		s.tickets.EnqueueOpen(ctx, ticket)
	}

	s.logger.Debug("ticket created",
		zap.Int64("ticket_id", ticket.ID),
		zap.String("type", string(ticket.Type)),
		zap.String("state", string(ticket.State)))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			TicketType: ticket.Type,
			State:      ticket.State,
			Comment:    ticket.Comment,
		},
	})
	return ticket.Snapshot(), nil
}

// GetTicket looks a ticket up by its textual ID.
func (s *TicketService) GetTicket(ctx context.Context, rawID string) (*domain.Ticket, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return nil, apperrors.NewInvalidID(rawID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewTicketNotFound(rawID)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return ticket.Snapshot(), nil
}

// Summary counts every ticket ever created by lifecycle bucket. Assigned
// tickets are reported inside the open bucket as well as on their own.
func (s *TicketService) Summary(ctx context.Context) domain.StatusSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var open, assigned, closed int
	for _, ticket := range s.tickets.List(ctx) {
		switch ticket.State {
		case domain.TicketStateClosed, domain.TicketStateAutoResolved, domain.TicketStateResolved:
			closed++
		case domain.TicketStateAssigned:
			assigned++
		case domain.TicketStateOpen:
			open++
		}
	}
	return domain.StatusSummary{
		Open:     open + assigned,
		Assigned: assigned,
		Closed:   closed,
		Total:    open + assigned + closed,
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func workerActor(w *domain.Worker) events.Actor {
	return events.Actor{Role: w.Role, Name: w.Name}
}
