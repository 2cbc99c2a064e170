package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrMissingToken       = errors.New("missing access token")
	ErrExpiredToken       = errors.New("expired access token")
	ErrInvalidToken       = errors.New("invalid access token")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnknownPrincipal   = errors.New("unknown principal")
)

var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrInvalidFileType      = errors.New("invalid file type")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
)

// unauthorized builds a 401 that matches both ErrUnauthorized and kind.
// Token problems are reported against the authorization header.
func unauthorized(kind error, details string, cause error) *ApiErr {
	e := &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        fmt.Errorf("%w: %w", ErrUnauthorized, kind),
		Details:    details,
		Cause:      cause,
	}
	if kind != ErrInvalidCredentials {
		e.Field = "authorization"
	}
	return e
}

// badRequest builds a 400 that matches both ErrBadRequest and kind.
func badRequest(kind error, field, details string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%w: %w", ErrBadRequest, kind),
		Details:    details,
		Field:      field,
	}
}

func NewMissingTokenError() *ApiErr {
	return unauthorized(ErrMissingToken, "Missing access token", nil)
}

func NewExpiredTokenError() *ApiErr {
	return unauthorized(ErrExpiredToken, "Access token has expired", nil)
}

func NewInvalidTokenError(cause error) *ApiErr {
	return unauthorized(ErrInvalidToken, "Could not validate credentials", cause)
}

// NewInvalidCredentialsError is the same for an unknown user and a wrong
// password.
func NewInvalidCredentialsError() *ApiErr {
	return unauthorized(ErrInvalidCredentials, "", nil)
}

func NewUnknownPrincipalError(username string) *ApiErr {
	return unauthorized(ErrUnknownPrincipal, fmt.Sprintf("%q is not an allowed admin", username), nil)
}

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	e := badRequest(ErrMalformedPayload, "payload", fmt.Sprintf("Malformed %s payload", payloadType))
	e.Cause = cause
	return e
}

func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	return badRequest(ErrMissingRequiredField, fieldName, "Missing required field: "+fieldName)
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return badRequest(ErrInvalidField, fieldName, fmt.Sprintf("Invalid field %s: %s", fieldName, reason))
}

func NewInvalidFileTypeError(contentType string, allowedPrefixes ...string) *ApiErr {
	return badRequest(ErrInvalidFileType, "file",
		fmt.Sprintf("File must be one of [%s], got %q", strings.Join(allowedPrefixes, ", "), contentType))
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		err:        ErrMaxBodySizeExceeded,
		Details:    fmt.Sprintf("Request body exceeds the %d byte limit", maxSize),
		Field:      "body_size",
	}
}

func IsMissingTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsExpiredTokenError(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsInvalidCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}
