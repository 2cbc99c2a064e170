package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/netriktechworks/site-backend/auth"
	"github.com/netriktechworks/site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authMiddleware struct {
	responder Responder
	logger    zerolog.Logger
	tokens    *auth.TokenIssuer
}

func newAuthMiddleware(tokens *auth.TokenIssuer) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		logger:    logger,
		tokens:    tokens,
	}
}

// authenticate rejects requests without a valid admin bearer token and
// stores the admin's username in the request context.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		username, err := m.tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			m.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected admin request")
			m.responder.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithAdmin(r.Context(), username)))
	})
}

// RecoverPanics turns a panicking handler into a logged 500. Responses that
// already started are left as they are.
func RecoverPanics(next http.Handler) http.Handler {
	responder := NewResponder(log.With().Str("handlerName", "recoverer").Logger())

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("requestID", middleware.GetReqID(r.Context())).
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Msg("Recovered from panic")

			if ww.Status() == 0 {
				responder.WriteError(ww, errs.NewInternalErrorWithCause("handler panicked", nil))
			}
		}()

		next.ServeHTTP(ww, r)
	})
}

// RequestLogger writes one console line per request, colored by status.
// 5xx responses are also logged through the global logger so they reach
// whatever sink it is configured with.
func RequestLogger(next http.Handler) http.Handler {
	console := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = console.Error()
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Str("requestID", middleware.GetReqID(r.Context())).
				Msg("Server error response")
		case status >= 400:
			event = console.Warn()
		default:
			event = console.Info()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Str("requestID", middleware.GetReqID(r.Context())).
			Msg("HTTP Request")
	})
}

// RejectDisallowedPreflight answers preflight requests from unknown origins
// with a JSON 403 instead of the bare response the cors handler gives.
func RejectDisallowedPreflight(allowedOrigins []string) func(http.Handler) http.Handler {
	responder := NewResponder(log.Logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && r.Method == http.MethodOptions && !originAllowed(allowedOrigins, origin) {
				responder.WriteError(w, errs.NewCORSError(origin))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
