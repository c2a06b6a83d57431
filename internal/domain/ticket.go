package domain

import "time"

// TicketType enumerates the categories a ticket can be filed under.
type TicketType string

const (
	TicketTypeCheckWalletBalance TicketType = "check-wallet-balance"
	TicketTypeChangeLanguage     TicketType = "change-language"
	TicketTypeOthers             TicketType = "others"
)

// autoResolveComments holds the canned comment for each auto-resolvable type.
var autoResolveComments = map[TicketType]string{
	TicketTypeCheckWalletBalance: "sent automatic SMS to customer",
	TicketTypeChangeLanguage:     "automatic IVR call made to the customer",
}

// ParseTicketType maps user input onto the closed set of ticket types.
// "other" is accepted as an alias for the catch-all category.
func ParseTicketType(raw string) (TicketType, bool) {
	switch TicketType(raw) {
	case TicketTypeCheckWalletBalance, TicketTypeChangeLanguage, TicketTypeOthers:
		return TicketType(raw), true
	case "other":
		return TicketTypeOthers, true
	}
	return "", false
}

// AutoResolveComment returns the canned comment for predefined types.
func (t TicketType) AutoResolveComment() (string, bool) {
	comment, ok := autoResolveComments[t]
	return comment, ok
}

// IsAutoResolved reports whether tickets of this type skip the workflow.
func (t TicketType) IsAutoResolved() bool {
	_, ok := autoResolveComments[t]
	return ok
}

// TicketState enumerates lifecycle states for tickets.
type TicketState string

const (
	TicketStateOpen         TicketState = "open"
	TicketStateAutoResolved TicketState = "auto-resolved"
	TicketStateAssigned     TicketState = "assigned"
	TicketStateResolved     TicketState = "resolved"
	TicketStateClosed       TicketState = "resolution-verified"
)

// Ticket is the aggregate tracked by the workflow.
type Ticket struct {
	ID          int64
	Type        TicketType
	Description string
	Comment     string
	State       TicketState
	ResolvedBy  *Worker
	VerifiedBy  *Worker
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTicket builds an unsaved ticket in its initial state. The ID is left
// zero until the store registers it.
func NewTicket(ticketType TicketType, description string) *Ticket {
	ticket := &Ticket{
		Type:        ticketType,
		Description: description,
		Comment:     description,
		State:       TicketStateOpen,
	}
	if comment, ok := ticketType.AutoResolveComment(); ok {
		ticket.Comment = comment
		ticket.State = TicketStateAutoResolved
	}
	return ticket
}

// ResolverName returns the resolving employee's name, or "" when unset.
func (t *Ticket) ResolverName() string {
	return t.ResolvedBy.NameOrEmpty()
}

// VerifierName returns the verifying supervisor's name, or "" when unset.
func (t *Ticket) VerifierName() string {
	return t.VerifiedBy.NameOrEmpty()
}

// Snapshot returns a copy detached from later state changes of t.
func (t *Ticket) Snapshot() *Ticket {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

// StatusSummary aggregates ticket counts by lifecycle bucket.
type StatusSummary struct {
	Open     int
	Assigned int
	Closed   int
	Total    int
}
