// Package server wires the data service: routes, middleware and the
// http.Server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"fundraiser-display/internal/auth"
	"fundraiser-display/internal/config"
	"fundraiser-display/internal/goals"
	"fundraiser-display/internal/percentage"
)

// Store is everything the routes need from persistence.
type Store interface {
	goals.Store
	percentage.Store
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	config *config.Config
	store  Store
	guard  auth.Middleware
	logger *zerolog.Logger
}

// New creates a server. It does not start listening.
func New(cfg *config.Config, store Store, logger *zerolog.Logger) *Server {
	return &Server{
		config: cfg,
		store:  store,
		guard:  auth.New([]byte(cfg.AdminJWTSecret)),
		logger: logger,
	}
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if !s.guard.Enabled() {
		s.logger.Warn().Msg("ADMIN_JWT_SECRET not set: write endpoints are open")
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", ln.Addr().String()).
			Str("prefix", s.config.APIPrefix).
			Msg("API server is running")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().Dur("timeout", timeout).Msg("Shutting down API server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
