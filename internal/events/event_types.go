package events

import (
	"time"

	"github.com/spec-kit/ticket-workflow/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventTicketAssigned EventType = "ticket_assigned"
	EventTicketResolved EventType = "ticket_resolved"
	EventTicketVerified EventType = "ticket_verified"
)

// AllEventTypes lists every type the workflow publishes.
var AllEventTypes = []EventType{
	EventTicketCreated,
	EventTicketAssigned,
	EventTicketResolved,
	EventTicketVerified,
}

// Actor identifies the worker behind an event. Empty for system actions.
type Actor struct {
	Role domain.WorkerRole `json:"role,omitempty"`
	Name string            `json:"name,omitempty"`
}

// Event represents a domain event emitted by the workflow.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketType domain.TicketType  `json:"ticket_type"`
	State      domain.TicketState `json:"state"`
	Comment    string             `json:"comment"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Role   domain.WorkerRole `json:"role"`
	Worker string            `json:"worker"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	OldState domain.TicketState `json:"old_state"`
	NewState domain.TicketState `json:"new_state"`
	Comment  string             `json:"comment,omitempty"`
}

// TicketVerifiedPayload payload.
type TicketVerifiedPayload struct {
	Supervisor string             `json:"supervisor"`
	State      domain.TicketState `json:"state"`
}
