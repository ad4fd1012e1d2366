package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog/log"
)

// Dependencies are the collaborators the handlers are built from. Contact and
// Images may be unconfigured; their routes then answer 503.
type Dependencies struct {
	Database database.Database
	Auth     *auth.Service
	LeetCode *services.LeetCodeClient
	Contact  *services.ContactService
	Images   *services.ImageStore
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.ServerConfig, deps Dependencies) (Server, error) {
	if deps.Auth == nil {
		return Server{}, fmt.Errorf("auth service is required")
	}

	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	startupTime := time.Now()

	router := newRouter(deps, withConfig(cfg), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      config.ServerConfig
	startupTime time.Time
}

func withConfig(c config.ServerConfig) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	chiRouter.Use(CORSCheckMiddleware(router.config.AcceptedOrigins))
	chiRouter.Use(corsMiddleware(router.config.AcceptedOrigins))

	handlers := initializeHandlers(deps, router.config, router.startupTime)
	authMiddleware := newAuthMiddleware(deps.Auth)

	if router.config.APIPrefix == "" {
		setupRoutes(chiRouter, handlers, authMiddleware)
	} else {
		chiRouter.Route(router.config.APIPrefix, func(r chi.Router) {
			setupRoutes(r, handlers, authMiddleware)
		})
	}

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
