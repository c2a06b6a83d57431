package repository

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/ticket-workflow/internal/domain"
)

// ErrNotFound is returned when a lookup has no match.
var ErrNotFound = errors.New("repository: not found")

// TicketRepository encapsulates the ticket store and its two queues.
//
// Both queues are append-only. Claimed tickets stay where they are and
// callers filter them by field checks when scanning.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Touch(ctx context.Context, ticket *domain.Ticket)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context) []*domain.Ticket
	EnqueueOpen(ctx context.Context, ticket *domain.Ticket)
	OpenQueue(ctx context.Context) []*domain.Ticket
	EnqueueVerification(ctx context.Context, ticket *domain.Ticket)
	VerificationQueue(ctx context.Context) []*domain.Ticket
}

type ticketRepository struct {
	counter           int64
	byID              map[int64]*domain.Ticket
	order             []*domain.Ticket
	openQueue         []*domain.Ticket
	verificationQueue []*domain.Ticket
	now               func() time.Time
}

// NewTicketRepository instantiates an empty in-memory store.
func NewTicketRepository() TicketRepository {
	return &ticketRepository{
		byID: make(map[int64]*domain.Ticket),
		now:  time.Now,
	}
}

// Create assigns the next sequential ID and registers the ticket.
func (r *ticketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	if ticket == nil {
		return errors.New("repository: nil ticket")
	}
	r.counter++
	ticket.ID = r.counter
	ticket.CreatedAt = r.now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.byID[ticket.ID] = ticket
	r.order = append(r.order, ticket)
	return nil
}

func (r *ticketRepository) Touch(_ context.Context, ticket *domain.Ticket) {
	ticket.UpdatedAt = r.now()
}

func (r *ticketRepository) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ticket, nil
}

// List returns every ticket in creation order.
func (r *ticketRepository) List(_ context.Context) []*domain.Ticket {
	return append([]*domain.Ticket(nil), r.order...)
}

func (r *ticketRepository) EnqueueOpen(_ context.Context, ticket *domain.Ticket) {
	r.openQueue = append(r.openQueue, ticket)
}

func (r *ticketRepository) OpenQueue(_ context.Context) []*domain.Ticket {
	return append([]*domain.Ticket(nil), r.openQueue...)
}

func (r *ticketRepository) EnqueueVerification(_ context.Context, ticket *domain.Ticket) {
	r.verificationQueue = append(r.verificationQueue, ticket)
}

func (r *ticketRepository) VerificationQueue(_ context.Context) []*domain.Ticket {
	return append([]*domain.Ticket(nil), r.verificationQueue...)
}
