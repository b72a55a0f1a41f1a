// Package server wires the HTTP router, middleware chain and handlers
// into a single server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	authhandler "arthakarya/ms_coretax_exporter/internal/adapters/http/auth"
	exporthandler "arthakarya/ms_coretax_exporter/internal/adapters/http/export"
	healthhandler "arthakarya/ms_coretax_exporter/internal/adapters/http/health"
	"arthakarya/ms_coretax_exporter/internal/infrastructure/config"
	"arthakarya/ms_coretax_exporter/internal/infrastructure/http/middleware"
)

// Options holds everything the server needs to assemble its routes.
type Options struct {
	Config        config.AppConfig
	Logger        *slog.Logger
	AuthHandler   *authhandler.Handler
	ExportHandler *exporthandler.Handler
	HealthHandler *healthhandler.Handler
}

// Server hosts the HTTP API.
type Server struct {
	log        *slog.Logger
	cfg        config.HTTPSettings
	httpServer *http.Server
}

// New creates the server with all routes and middleware wired.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.AuthHandler == nil || opts.ExportHandler == nil || opts.HealthHandler == nil {
		return nil, errors.New("all handlers are required")
	}

	requestTimeout := opts.Config.HTTP.WriteTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	session := middleware.NewSessionAuthenticator(opts.Config.Auth, opts.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.RequestTimeout(requestTimeout))
	r.Use(session.Middleware)

	r.Get("/health", opts.HealthHandler.Status)

	r.Post("/auth/login", opts.AuthHandler.Login)
	r.Post("/auth/logout", opts.AuthHandler.Logout)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/invoices", opts.ExportHandler.List)
		r.Post("/invoices/export", opts.ExportHandler.Export)
	})

	return &Server{
		log: opts.Logger,
		cfg: opts.Config.HTTP,
		httpServer: &http.Server{
			Addr:         opts.Config.HTTP.Address(),
			Handler:      r,
			ReadTimeout:  opts.Config.HTTP.ReadTimeout,
			WriteTimeout: opts.Config.HTTP.WriteTimeout,
			IdleTimeout:  opts.Config.HTTP.IdleTimeout,
		},
	}, nil
}

// Handler exposes the assembled router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the server and blocks until the context is cancelled or the
// listener fails. Shutdown is graceful within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server started", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
		defer cancel()

		s.log.Info("shutting down HTTP server")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.cfg.ShutdownTimeout > 0 {
		return s.cfg.ShutdownTimeout
	}
	return 10 * time.Second
}
