package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaggedConstructorsKeepMessageAndSentinel(t *testing.T) {
	err := NewBadRequestError("failed to read request body")

	assert.Equal(t, "failed to read request body", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.True(t, IsBadRequest(err))
	assert.False(t, IsNotFound(err))
}

func TestNotFoundNamesTheEntity(t *testing.T) {
	err := NewNotFound("testimonial")

	assert.Equal(t, "testimonial not found", err.Error())
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.True(t, IsNotFound(err))
}

func TestValidationErrorsCarryField(t *testing.T) {
	err := NewMissingRequiredFieldError("client_name")
	assert.Equal(t, "client_name", err.Field)
	assert.True(t, IsBadRequest(err))
	assert.True(t, errors.Is(err, ErrMissingRequiredField))

	invalid := NewInvalidFieldError("rating", "must be between 1 and 5")
	assert.True(t, IsInvalidFieldError(invalid))
	assert.Equal(t, "malformed request: invalid field: Invalid field rating: must be between 1 and 5", invalid.Error())

	assert.Equal(t, http.StatusRequestEntityTooLarge, StatusCode(NewMaxBodySizeExceededError(10)))
}

func TestNewDatabaseErrorClassifiesCauses(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
	}{
		{"duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "idx_quote_number"`), http.StatusConflict},
		{"sqlite unique", errors.New("UNIQUE constraint failed: quotations.quote_number"), http.StatusConflict},
		{"not found", errors.New("record not found"), http.StatusNotFound},
		{"mysql duplicate", errors.New("Error 1062: Duplicate entry 'NT-2026-0001' for key"), http.StatusConflict},
		{"connection", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
		{"other", errors.New("syntax error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "quotation", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, "Failed to create quotation", err.Details)
		})
	}
}

func TestNewDatabaseErrorPassesApiErrThrough(t *testing.T) {
	notFound := NewNotFound("project")
	err := NewDatabaseError("update", "project", fmt.Errorf("wrapped: %w", notFound))

	assert.Same(t, notFound, err)
	assert.Equal(t, "project not found", err.Error())
}

func TestAuthErrorsMatchUnauthorized(t *testing.T) {
	for _, err := range []*ApiErr{
		NewMissingTokenError(),
		NewExpiredTokenError(),
		NewInvalidTokenError(nil),
		NewInvalidCredentialsError(),
		NewUnknownPrincipalError("mallory"),
	} {
		assert.True(t, IsUnauthorized(err), err.Error())
		assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	}
	assert.True(t, IsExpiredTokenError(NewExpiredTokenError()))
}

func TestGetFullErrorFollowsCauses(t *testing.T) {
	inner := NewStorageWriteError("projects", errors.New("disk full"))
	outer := NewInternalErrorWithCause("upload failed", inner)

	assert.Equal(t, "upload failed -> file storage write failed: Could not store file in projects -> disk full", outer.GetFullError())
}

func TestStatusCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
	assert.Equal(t, http.StatusBadRequest, StatusCode(NewInvalidFileTypeError("text/plain", "image/")))
}
