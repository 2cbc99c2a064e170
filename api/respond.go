package api

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"time"

	"github.com/netriktechworks/site-backend/errs"
	"github.com/netriktechworks/site-backend/services"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
	alerts services.Notifier
}

// NewResponder builds a responder. When alerts is set, unexpected errors
// are also sent to it.
func NewResponder(logger zerolog.Logger, alerts ...services.Notifier) Responder {
	r := Responder{logger: logger}
	if len(alerts) > 0 {
		r.alerts = alerts[0]
	}
	return r
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusOK, data)
}

// WriteCreated writes data with a 201 status.
func (r Responder) WriteCreated(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusCreated, data)
}

// WriteMessage writes {"message": message}.
func (r Responder) WriteMessage(w http.ResponseWriter, message string) {
	r.writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (r Responder) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Check if response is too large (e.g., > 10MB)
	const maxResponseSize = 10 * 1024 * 1024 // 10MB
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large, truncating")

		truncatedJSON, err := json.Marshal(map[string]any{
			"error":        "Response too large",
			"message":      "The requested data exceeds the maximum response size",
			"maxSizeMB":    maxResponseSize / (1024 * 1024),
			"actualSizeMB": len(jsonData) / (1024 * 1024),
		})
		if err != nil {
			r.logger.Error().Err(err).Msg("error marshaling truncated response")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write(truncatedJSON)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// SendErrorNotification forwards an unexpected error to the alert channel
// without blocking the response.
func (r Responder) SendErrorNotification(errMsg string) {
	if r.alerts == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := r.alerts.Notify(ctx, services.Message{
			Subject: "Unexpected API error",
			Text:    errMsg,
			HTML:    "<pre>" + html.EscapeString(errMsg) + "</pre>",
		})
		if err != nil {
			r.logger.Error().Err(err).Msg("Error sending error notification")
		}
	}()
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.SendErrorNotification(err.Error())
		r.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal Server Error",
			Status:  "error",
			Details: "An unexpected error occurred",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
		r.SendErrorNotification(apiErr.GetFullError())
	}

	response := ErrorResponse{
		Error:   apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}
	// Add full error chain for debugging (especially useful for database errors)
	if apiErr.Cause != nil {
		response.Cause = apiErr.GetFullError()
	}

	r.writeJSON(w, apiErr.StatusCode, response)
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
