package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"invalid type", NewInvalidTicketType("refund"), CodeInvalidTicketType, http.StatusBadRequest},
		{"invalid id", NewInvalidID("abc"), CodeInvalidID, http.StatusBadRequest},
		{"not found", NewTicketNotFound("9"), CodeTicketNotFound, http.StatusNotFound},
		{"no ticket", NewNoTicketAssigned("tom"), CodeNoTicketAssigned, http.StatusConflict},
		{"no eligible", NewNoEligibleTicket("sam"), CodeNoEligibleTicket, http.StatusNotFound},
		{"validation", NewValidationError("bad", nil), CodeValidationFailed, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
			assert.True(t, HasCode(tt.err, tt.code))
		})
	}
}

func TestToDomainError_WrapsUnknown(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	cause := errors.New("boom")
	de := ToDomainError(cause)
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.ErrorIs(t, de, cause)
	assert.Contains(t, de.Error(), "boom")
}

func TestHasCode_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("assign: %w", NewNoEligibleTicket("neil"))
	assert.True(t, HasCode(err, CodeNoEligibleTicket))
	assert.False(t, HasCode(err, CodeTicketNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
}
