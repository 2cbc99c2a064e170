package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrConfigInvalid       = errors.New("configuration invalid")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrNotificationFailed = errors.New("notification failed")
	ErrRenderFailed       = errors.New("document rendering failed")
)

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    "Invalid configuration: " + configName,
		Cause:      cause,
		Field:      configName,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("Environment variable %s is missing or invalid", varName),
		Field:      varName,
	}
}

// NewServiceUnavailableError is used when a dependency such as the database
// cannot be reached at all.
func NewServiceUnavailableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    service + " is unavailable",
		Cause:      cause,
	}
}

// NewNotificationError reports a failed delivery to an outbound channel
// (email, sms).
func NewNotificationError(channel string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrNotificationFailed,
		Details:    fmt.Sprintf("Failed to deliver %s notification", channel),
		Cause:      cause,
	}
}

func NewRenderError(document string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrRenderFailed,
		Details:    "Failed to render " + document,
		Cause:      cause,
	}
}

// IsConfigError matches both invalid settings and missing environment
// variables.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid) || errors.Is(err, ErrEnvironmentVariable)
}

func IsNotificationError(err error) bool {
	return errors.Is(err, ErrNotificationFailed)
}
