// Package server provides the HTTP server implementation for the taskboard API.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/yesaroun/taskboard/internal/auth"
	"github.com/yesaroun/taskboard/internal/server/cache"
	"github.com/yesaroun/taskboard/internal/storage"
	"github.com/yesaroun/taskboard/internal/store"
	"github.com/yesaroun/taskboard/internal/views"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	store    *store.Store
	tokens   *auth.TokenManager
	uploads  *storage.Storage
	recorder *views.Recorder
	cache    *cache.Cache
	logger   *zerolog.Logger
	config   Config
}

// New creates a new server instance with the given configuration.
func New(
	st *store.Store,
	tokens *auth.TokenManager,
	uploads *storage.Storage,
	recorder *views.Recorder,
	logger *zerolog.Logger,
	cfg Config,
) *Server {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 30 * time.Second
	}

	return &Server{
		store:    st,
		tokens:   tokens,
		uploads:  uploads,
		recorder: recorder,
		cache:    cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		logger:   logger,
		config:   cfg,
	}
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Addr returns the listen address derived from the configuration.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// Run serves HTTP until ctx is canceled, then drains in-flight requests and
// pending view writes before returning.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	s.recorder.Close()
	s.logger.Info().Msg("HTTP server stopped")
	return nil
}
