// Package server provides HTTP server management and lifecycle handling
// for the drug-safety API. It includes server setup, middleware
// configuration, route management, and graceful shutdown with proper
// error handling and logging.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nexahealth/nexahealth-api/config"
	"github.com/nexahealth/nexahealth-api/data"
	"github.com/nexahealth/nexahealth-api/handlers"
	"github.com/nexahealth/nexahealth-api/health"
	"github.com/nexahealth/nexahealth-api/interfaces"
	"github.com/nexahealth/nexahealth-api/logging"
	"github.com/nexahealth/nexahealth-api/metrics"
	"github.com/nexahealth/nexahealth-api/reports"
	"github.com/nexahealth/nexahealth-api/validation"
)

// Server represents the HTTP server
type Server struct {
	server        *http.Server
	router        chi.Router
	dataContainer *data.DataContainer
	reportStore   reports.Store
	validator     interfaces.InputValidator
	config        *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, dataContainer *data.DataContainer, reportStore reports.Store) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:        router,
		dataContainer: dataContainer,
		reportStore:   reportStore,
		validator:     validation.NewInputValidator(),
		config:        cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(metrics.Metrics)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(RateLimitHandler)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	healthChecker := health.NewHealthChecker(s.dataContainer)

	// API routes
	s.router.Post("/diagnose", handlers.Diagnose(s.dataContainer, s.validator))
	s.router.Post("/extract-keywords", handlers.ExtractKeywords(s.dataContainer, s.validator))
	s.router.Post("/verify-drug", handlers.VerifyDrug(s.dataContainer, s.validator))
	s.router.Post("/verify-recommendations", handlers.VerifyRecommendations(s.dataContainer))
	s.router.Get("/flagged", handlers.Flagged(s.dataContainer))
	s.router.Post("/submit-report", handlers.SubmitReport(s.reportStore))
	s.router.Get("/health", handlers.HealthCheck(s.dataContainer, healthChecker))
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start starts the HTTP server
func (s *Server) Start() error {
	logging.Info("Starting server", "addr", s.server.Addr, "env", s.config.Env)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if closeErr := s.server.Close(); closeErr != nil {
			logging.Error("Server close error", "error", closeErr)
		}
		return err
	}

	logging.Info("Server exited gracefully")
	return nil
}
