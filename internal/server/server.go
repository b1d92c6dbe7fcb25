// Package server exposes the zinc decoder over HTTP.
//
// Routes:
//
//	GET  /healthz     liveness
//	POST /v1/grid     Zinc grid text in, Haystack JSON grid out
//	POST /v1/scalar   one Zinc token in, its kind and JSON value out
//	POST /v1/check    fast-path eligibility report for a grid
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/Neumenon/zinc/internal/config"
	"github.com/Neumenon/zinc/zinc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Response headers set by /v1/grid.
const (
	HeaderPath    = "X-Zinc-Path"
	HeaderParseID = "X-Parse-Id"
)

// Server is the HTTP decode service.
type Server struct {
	parser *zinc.Parser
	cfg    config.ServerConfig
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// New creates a Server around parser. A nil logger logs nothing.
func New(parser *zinc.Parser, cfg config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		parser: parser,
		cfg:    cfg,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(accessLog(s.logger))
	s.router.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/grid", s.handleGrid)
		r.Post("/scalar", s.handleScalar)
		r.Post("/check", s.handleCheck)
	})
}

// Start listens on cfg.Addr until Shutdown. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.cfg.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
