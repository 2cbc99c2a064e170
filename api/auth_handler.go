package api

import (
	"net/http"

	"github.com/netriktechworks/site-backend/auth"
	"github.com/netriktechworks/site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	tokens    *auth.TokenIssuer
}

func newAuthHandler(tokens *auth.TokenIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tokens:    tokens,
	}
}

// login exchanges admin credentials for a bearer token
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Admin credentials"
// @Success 200 {object} auth.Session
// @Failure 400 {object} ErrorResponse "Bad Request - Missing username or password"
// @Failure 401 {object} ErrorResponse "Unauthorized - Incorrect username or password"
// @Router /admin/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := readJSON(w, r, h.logger, "login", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.Username == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("username"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		session, err := h.tokens.Login(req.Username, req.Password)
		if err != nil {
			h.logger.Warn().Str("username", req.Username).Msg("Failed admin login")
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("username", req.Username).Time("expiresAt", session.ExpiresAt).Msg("Admin logged in")
		h.responder.WriteJSON(w, session)
	}
}
