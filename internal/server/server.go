package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/navitrade/newsflow/internal/modules/ingest"
	"github.com/navitrade/newsflow/internal/modules/prices"
	"github.com/navitrade/newsflow/internal/modules/scoring"
	"github.com/navitrade/newsflow/internal/modules/universe"
)

// Config holds server configuration
type Config struct {
	Port      int
	Log       zerolog.Logger
	Signals   *scoring.SignalRepository
	Articles  *ingest.ArticleRepository
	Companies *universe.CompanyRepository
	Prices    *prices.SyncService
	DevMode   bool
}

// Server is the read-only HTTP surface over the pipeline's datastore.
// Nothing here mutates state; all writes happen in batch jobs.
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	signals   *scoring.SignalRepository
	articles  *ingest.ArticleRepository
	companies *universe.CompanyRepository
	prices    *prices.SyncService
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		signals:   cfg.Signals,
		articles:  cfg.Articles,
		companies: cfg.Companies,
		prices:    cfg.Prices,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/signals", s.handleListSignals)
		r.Get("/articles/stats", s.handleArticleStats)
		r.Get("/companies/{symbol}", s.handleGetCompany)
		r.Get("/companies/{symbol}/stats", s.handleCompanyStats)
	})
}

// loggingMiddleware logs requests with zerolog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
