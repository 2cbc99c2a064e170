package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest   = errors.New("malformed request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
	ErrCORSBlocked  = errors.New("request blocked by CORS policy")
)

// ApiErr is an error that knows how it should be rendered over HTTP.
type ApiErr struct {
	StatusCode int
	err        error
	Details    string // shown to the client next to the error
	Field      string // request field at fault, if any
	Cause      error  // underlying failure, rendered only in the full chain
}

func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// GetFullError returns the message followed by every cause in the chain,
// separated by " -> ".
func (e *ApiErr) GetFullError() string {
	if e.Cause == nil {
		return e.Error()
	}
	var inner *ApiErr
	if errors.As(e.Cause, &inner) {
		return e.Error() + " -> " + inner.GetFullError()
	}
	return e.Error() + " -> " + e.Cause.Error()
}

// Unwrap exposes the sentinel the error was built from, so errors.Is
// matches it.
func (e *ApiErr) Unwrap() error {
	return e.err
}

// taggedErr keeps the caller's message while still matching a sentinel.
type taggedErr struct {
	msg      string
	sentinel error
}

func (t taggedErr) Error() string { return t.msg }
func (t taggedErr) Unwrap() error { return t.sentinel }

func tagged(message string, sentinel error) error {
	return taggedErr{msg: message, sentinel: sentinel}
}

func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, err: tagged(message, ErrBadRequest)}
}

func NewInternalErrorWithCause(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        tagged(message, ErrInternal),
		Cause:      cause,
	}
}

func NewCORSError(origin string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrCORSBlocked,
		Details:    fmt.Sprintf("Origin '%s' is not allowed by CORS policy", origin),
	}
}

func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StatusCode reports the HTTP status an error should be rendered with.
func StatusCode(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
