package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrTransactionFailed  = errors.New("transaction failed")
	ErrStorageWrite       = errors.New("file storage write failed")
	ErrStorageRead        = errors.New("file storage read failed")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// driverFailures maps driver error text to a status. Postgres, MySQL and
// SQLite all word these differently.
var driverFailures = []struct {
	markers []string
	status  int
	kind    error
}{
	{[]string{"duplicate key", "unique constraint", "duplicate entry"}, http.StatusConflict, ErrAlreadyExists},
	{[]string{"record not found"}, http.StatusNotFound, ErrNotFound},
	{[]string{"connection refused", "failed to connect", "bad connection"}, http.StatusServiceUnavailable, ErrDatabaseConnection},
}

// NewDatabaseError classifies a repository failure. An ApiErr anywhere in
// the cause chain is returned unchanged.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	details := fmt.Sprintf("Failed to %s %s", operation, entity)
	if cause != nil {
		msg := strings.ToLower(cause.Error())
		for _, f := range driverFailures {
			for _, marker := range f.markers {
				if !strings.Contains(msg, marker) {
					continue
				}
				kind := f.kind
				if kind != ErrDatabaseConnection {
					kind = fmt.Errorf("%s %w", entity, f.kind)
				}
				return &ApiErr{StatusCode: f.status, err: kind, Details: details, Cause: cause}
			}
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

func NewTransactionFailedError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrTransactionFailed,
		Details:    fmt.Sprintf("Transaction failed during %s", operation),
		Cause:      cause,
	}
}

func NewStorageWriteError(category string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageWrite,
		Details:    fmt.Sprintf("Could not store file in %s", category),
		Cause:      cause,
		Field:      "file",
	}
}

func NewStorageReadError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageRead,
		Details:    fmt.Sprintf("Could not read %s", path),
		Cause:      cause,
	}
}
