package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-workflow/internal/domain"
	"github.com/spec-kit/ticket-workflow/internal/events"
	apperrors "github.com/spec-kit/ticket-workflow/pkg/util/errorutil"
)

// Assignment reports which ticket a worker picked up.
type Assignment struct {
	Ticket *domain.Ticket
	Worker string
	Role   domain.WorkerRole
}

// WorkerStatus is a read-only view of a worker in the registry.
type WorkerStatus struct {
	Name            string
	Role            domain.WorkerRole
	CurrentTicketID *int64
}

// AssignTicket hands the named worker the first eligible ticket. An idle
// employee claims from the open queue; otherwise an idle supervisor claims
// from the verification queue.
func (s *TicketService) AssignTicket(ctx context.Context, workerName string) (*Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if employee, err := s.workers.FindEmployee(ctx, workerName); err == nil && employee.Idle() {
		for _, ticket := range s.tickets.OpenQueue(ctx) {
			if ticket.ResolvedBy != nil {
				continue
			}
			ticket.ResolvedBy = employee
			ticket.State = domain.TicketStateAssigned
			employee.Take(ticket)
			s.tickets.Touch(ctx, ticket)
			return s.assigned(ctx, ticket, employee), nil
		}
	}

	if supervisor, err := s.workers.FindSupervisor(ctx, workerName); err == nil && supervisor.Idle() {
		for _, ticket := range s.tickets.VerificationQueue(ctx) {
			if ticket.State != domain.TicketStateResolved || ticket.ResolvedBy == nil || ticket.VerifiedBy != nil {
				continue
			}
			ticket.VerifiedBy = supervisor
			supervisor.Take(ticket)
			s.tickets.Touch(ctx, ticket)
			return s.assigned(ctx, ticket, supervisor), nil
		}
	}

	s.logger.Debug("no eligible ticket", zap.String("worker", workerName))
	return nil, apperrors.NewNoEligibleTicket(workerName)
}

// ResolveTicket closes out the employee's current ticket with a comment and
// queues it for supervisor verification. The employee is free afterwards.
func (s *TicketService) ResolveTicket(ctx context.Context, employeeName, comment string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee, err := s.workers.FindEmployee(ctx, employeeName)
	if err != nil {
		return nil, apperrors.NewNoTicketAssigned(employeeName)
	}
	ticket := employee.CurrentTicket
	if ticket == nil || ticket.State != domain.TicketStateAssigned || ticket.ResolvedBy != employee {
		return nil, apperrors.NewNoTicketAssigned(employeeName)
	}

	oldState := ticket.State
	ticket.Comment = comment
	ticket.State = domain.TicketStateResolved
	s.tickets.Touch(ctx, ticket)
	s.tickets.EnqueueVerification(ctx, ticket)
	employee.Release()

	s.logger.Debug("ticket resolved",
		zap.Int64("ticket_id", ticket.ID),
		zap.String("employee", employee.Name))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketResolved,
		TicketID: ticket.ID,
		Actor:    workerActor(employee),
		Payload: events.TicketResolvedPayload{
			OldState: oldState,
			NewState: ticket.State,
			Comment:  ticket.Comment,
		},
	})
	return ticket.Snapshot(), nil
}

// VerifyTicket confirms the supervisor's current ticket and frees them.
// The ticket stays in the resolved state; the closed state is never entered.
func (s *TicketService) VerifyTicket(ctx context.Context, supervisorName string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	supervisor, err := s.workers.FindSupervisor(ctx, supervisorName)
	if err != nil || supervisor.CurrentTicket == nil {
		return nil, apperrors.NewNoTicketAssigned(supervisorName)
	}

	ticket := supervisor.CurrentTicket
	ticket.State = domain.TicketStateResolved
	s.tickets.Touch(ctx, ticket)
	supervisor.Release()

	s.logger.Debug("ticket verified",
		zap.Int64("ticket_id", ticket.ID),
		zap.String("supervisor", supervisor.Name))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketVerified,
		TicketID: ticket.ID,
		Actor:    workerActor(supervisor),
		Payload: events.TicketVerifiedPayload{
			Supervisor: supervisor.Name,
			State:      ticket.State,
		},
	})
	return ticket.Snapshot(), nil
}

// ListWorkers returns the roster with each worker's current ticket.
func (s *TicketService) ListWorkers(ctx context.Context) []WorkerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []WorkerStatus
	for _, role := range []domain.WorkerRole{domain.WorkerRoleEmployee, domain.WorkerRoleSupervisor} {
		for _, w := range s.workers.List(ctx, role) {
			status := WorkerStatus{Name: w.Name, Role: w.Role}
			if w.CurrentTicket != nil {
				id := w.CurrentTicket.ID
				status.CurrentTicketID = &id
			}
			out = append(out, status)
		}
	}
	return out
}

func (s *TicketService) assigned(ctx context.Context, ticket *domain.Ticket, w *domain.Worker) *Assignment {
	s.logger.Debug("ticket assigned",
		zap.Int64("ticket_id", ticket.ID),
		zap.String("worker", w.Name),
		zap.String("role", string(w.Role)))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    workerActor(w),
		Payload: events.TicketAssignedPayload{
			Role:   w.Role,
			Worker: w.Name,
		},
	})
	return &Assignment{Ticket: ticket.Snapshot(), Worker: w.Name, Role: w.Role}
}
