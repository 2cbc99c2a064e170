package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/netriktechworks/site-backend/auth"
	"github.com/netriktechworks/site-backend/config"
	"github.com/netriktechworks/site-backend/database"
	"github.com/netriktechworks/site-backend/services"
	"github.com/netriktechworks/site-backend/storage"
	"github.com/rs/zerolog/log"
)

// Dependencies are the collaborators handlers need besides the database.
type Dependencies struct {
	Tokens *auth.TokenIssuer
	Files  storage.FileStore
	// Notifier receives new contact submissions and unexpected errors.
	// Optional.
	Notifier services.Notifier
	// Now defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, database database.Database, deps Dependencies) (Server, error) {
	if deps.Tokens == nil {
		return Server{}, fmt.Errorf("token issuer is required")
	}
	if deps.Files == nil {
		return Server{}, fmt.Errorf("file store is required")
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(database, deps, withConfig(c), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 180),  // Timeout for reading the entire request
		WriteTimeout: config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180), // Timeout for writing the response
		IdleTimeout:  config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180),  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, deps Dependencies, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(RequestLogger)
	chiRouter.Use(RecoverPanics)

	acceptedOrigins := config.GetStrings(router.config, "ACCEPTED_ORIGINS")
	if len(acceptedOrigins) == 0 {
		acceptedOrigins = []string{"*"}
	}
	chiRouter.Use(RejectDisallowedPreflight(acceptedOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	uploadLimit := int64(config.GetInt(router.config, "MAX_UPLOAD_MB", 10)) << 20
	handlers := initializeHandlers(database, deps, uploadLimit, router.startupTime)
	authMiddleware := newAuthMiddleware(deps.Tokens)

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
