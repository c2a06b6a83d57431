package dto

import (
	"time"

	"github.com/spec-kit/ticket-workflow/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// TicketResponse describes a single ticket.
type TicketResponse struct {
	ID          int64              `json:"id"`
	Type        domain.TicketType  `json:"type"`
	Description string             `json:"description"`
	Comment     string             `json:"comment"`
	State       domain.TicketState `json:"state"`
	ResolvedBy  *string            `json:"resolved_by"`
	VerifiedBy  *string            `json:"verified_by"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// StatusSummaryResponse carries the aggregate counts.
type StatusSummaryResponse struct {
	Open     int `json:"open"`
	Assigned int `json:"assigned"`
	Closed   int `json:"closed"`
	Total    int `json:"total"`
}
