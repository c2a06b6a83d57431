package dto

import "github.com/spec-kit/ticket-workflow/internal/domain"

// ResolveTicketRequest payload.
type ResolveTicketRequest struct {
	Comment string `json:"comment"`
}

// AssignmentResponse reports the ticket a worker picked up.
type AssignmentResponse struct {
	Worker string            `json:"worker"`
	Role   domain.WorkerRole `json:"role"`
	Ticket TicketResponse    `json:"ticket"`
}

// WorkerResponse describes a roster entry.
type WorkerResponse struct {
	Name            string            `json:"name"`
	Role            domain.WorkerRole `json:"role"`
	CurrentTicketID *int64            `json:"current_ticket_id"`
}
