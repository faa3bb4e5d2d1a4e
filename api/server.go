package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/config"
	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database, mediaStore services.MediaStore, settings config.Settings, adminSecret string) (Server, error) {
	if mediaStore == nil {
		return Server{}, fmt.Errorf("media store is required")
	}

	address := fmt.Sprintf("0.0.0.0:%s", settings.Port)
	startupTime := time.Now()

	router := newRouter(database, mediaStore,
		withSettings(settings),
		withAdminSecret(adminSecret),
		withStartupTime(startupTime),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
		IdleTimeout:  settings.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	settings    config.Settings
	adminSecret string
	startupTime time.Time
}

func withSettings(s config.Settings) func(*router) {
	return func(r *router) {
		r.settings = s
	}
}

func withAdminSecret(secret string) func(*router) {
	return func(r *router) {
		r.adminSecret = secret
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, mediaStore services.MediaStore, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(AttachRequestLogger)
	chiRouter.Use(LogInternalServerErrors)
	if router.settings.MetricsEnabled {
		chiRouter.Use(MetricsMiddleware)
	}

	acceptedOrigins := router.settings.AcceptedOrigins
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	handlers := initializeHandlers(database, mediaStore, router.settings.MaxUploadBytes)
	authMiddleware := newAuthMiddleware(router.adminSecret)

	setupFrontendRoutes(chiRouter, handlers, authMiddleware)
	setupOperationalRoutes(chiRouter, router.startupTime, router.settings.MetricsEnabled)
	if local, ok := mediaStore.(*services.LocalMediaStore); ok {
		setupStaticRoutes(chiRouter, local.Dir())
	}

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
