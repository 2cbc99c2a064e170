package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/netriktechworks/site-backend/database"
	"github.com/netriktechworks/site-backend/models"
	"github.com/netriktechworks/site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 30 * time.Second

type contactHandler struct {
	responder      Responder
	logger         zerolog.Logger
	submissionRepo *database.ContactSubmissionRepo
	notifier       services.Notifier
}

func newContactHandler(submissionRepo *database.ContactSubmissionRepo, notifier services.Notifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:      NewResponder(logger, notifier),
		logger:         logger,
		submissionRepo: submissionRepo,
		notifier:       notifier,
	}
}

// submitContact stores a contact-form submission and notifies the team
// @Summary Submit contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param submission body ContactSubmissionRequest true "Contact form"
// @Success 201 {object} models.ContactSubmission
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or invalid field"
// @Router /contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactSubmissionRequest
		if err := readJSON(w, r, h.logger, "contact submission", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := requireStrings(
			requiredString{"name", &req.Name},
			requiredString{"email", &req.Email},
			requiredString{"phone", &req.Phone},
			requiredString{"service", &req.Service},
			requiredString{"message", &req.Message},
		); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := services.CheckEmail("email", req.Email); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		submission := &models.ContactSubmission{
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.TrimSpace(req.Email),
			Phone:   strings.TrimSpace(req.Phone),
			Service: strings.TrimSpace(req.Service),
			Message: req.Message,
		}
		if err := h.submissionRepo.Insert(r.Context(), submission); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "submission", err))
			return
		}

		h.logger.Info().Str("submissionID", submission.ID.String()).Str("service", submission.Service).Msg("New contact submission")
		h.notify(submission)

		h.responder.WriteCreated(w, submission)
	}
}

// notify sends the submission to the configured channels in the
// background. Delivery failures are logged only.
func (h contactHandler) notify(submission *models.ContactSubmission) {
	if h.notifier == nil {
		return
	}
	msg := services.ContactSubmissionMessage(submission)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := h.notifier.Notify(ctx, msg); err != nil {
			h.logger.Error().Err(err).Str("submissionID", submission.ID.String()).Msg("Failed to notify about contact submission")
		}
	}()
}

// getContactSubmissions lists submissions, newest first
// @Summary List contact submissions
// @Tags Contact
// @Produce json
// @Param unread_only query bool false "Only unread submissions"
// @Success 200 {array} models.ContactSubmission
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/contact-submissions [get]
func (h contactHandler) getContactSubmissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		unreadOnly, err := queryBool(r, "unread_only")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		submissions, err := h.submissionRepo.FindAll(r.Context(), unreadOnly)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "submissions", err))
			return
		}

		h.responder.WriteJSON(w, submissions)
	}
}

// markSubmissionRead flags a submission as read
// @Summary Mark submission read
// @Tags Contact
// @Produce json
// @Param submissionID path string true "Submission ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Submission not found"
// @Router /admin/contact-submissions/{submissionID}/read [patch]
func (h contactHandler) markSubmissionRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "submissionID", "submission")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.submissionRepo.MarkRead(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("mark read", "submission", err))
			return
		}

		h.responder.WriteMessage(w, "Submission marked as read")
	}
}
