package api

import (
	"context"
	"net/http"
	"time"

	"github.com/netriktechworks/site-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const apiBanner = "Netrik Techworks API v1.0.0"

type statusHandler struct {
	responder   Responder
	logger      zerolog.Logger
	database    database.Database
	startupTime time.Time
}

func newStatusHandler(database database.Database, startupTime time.Time) statusHandler {
	logger := log.With().Str("handlerName", "statusHandler").Logger()

	return statusHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		database:    database,
		startupTime: startupTime,
	}
}

// root identifies the API
// @Summary API banner
// @Tags Status
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func (h statusHandler) root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteMessage(w, apiBanner)
	}
}

// HealthResponse reports process and database health
type HealthResponse struct {
	Status        string `json:"status" example:"healthy"`
	Database      string `json:"database" example:"ok"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// health checks that the database answers
// @Summary Health check
// @Tags Status
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse "Database unreachable"
// @Router /health [get]
func (h statusHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.database.Ping(ctx); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, HealthResponse{
			Status:        "healthy",
			Database:      "ok",
			UptimeSeconds: int64(time.Since(h.startupTime).Seconds()),
		})
	}
}
