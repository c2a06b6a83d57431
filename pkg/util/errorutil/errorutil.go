package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes reported by the workflow.
const (
	CodeInvalidTicketType = "INVALID_TICKET_TYPE"
	CodeInvalidID         = "INVALID_ID"
	CodeTicketNotFound    = "TICKET_NOT_FOUND"
	CodeNoTicketAssigned  = "NO_TICKET_ASSIGNED"
	CodeNoEligibleTicket  = "NO_ELIGIBLE_TICKET"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeInternal          = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewInvalidTicketType(ticketType string) error {
	return NewDomainError(CodeInvalidTicketType, "invalid ticket type", http.StatusBadRequest,
		map[string]any{"type": ticketType})
}

func NewInvalidID(raw string) error {
	return NewDomainError(CodeInvalidID, fmt.Sprintf("invalid format of ticket id %q", raw), http.StatusBadRequest,
		map[string]any{"ticket_id": raw})
}

func NewTicketNotFound(raw string) error {
	return NewDomainError(CodeTicketNotFound, "ticket not found", http.StatusNotFound,
		map[string]any{"ticket_id": raw})
}

func NewNoTicketAssigned(worker string) error {
	return NewDomainError(CodeNoTicketAssigned, fmt.Sprintf("%s has no ticket assigned", worker), http.StatusConflict,
		map[string]any{"worker": worker})
}

func NewNoEligibleTicket(worker string) error {
	return NewDomainError(CodeNoEligibleTicket, fmt.Sprintf("no open tickets found for %s", worker), http.StatusNotFound,
		map[string]any{"worker": worker})
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// HasCode reports whether err carries a DomainError with the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Code == code
}
