// Package api provides the HTTP REST API server.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/api/activity"
	"github.com/good-yellow-bee/smartdetect/internal/api/dashboard"
	"github.com/good-yellow-bee/smartdetect/internal/api/health"
	"github.com/good-yellow-bee/smartdetect/internal/api/middleware"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
	"github.com/good-yellow-bee/smartdetect/internal/triage"
)

// Config contains HTTP API server configuration.
type Config struct {
	Address            string
	RateLimitPerMinute int
	RateLimitBurst     int
	StreamMaxDuration  time.Duration // Max lifetime for activity stream connections
	StreamHeartbeat    time.Duration
	ShutdownTimeout    time.Duration
	Verbose            bool
}

// SetDefaults applies default values for missing configuration.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 300
	}
	if c.RateLimitBurst == 0 {
		c.RateLimitBurst = 50
	}
	if c.StreamMaxDuration == 0 {
		c.StreamMaxDuration = 30 * time.Minute
	}
	if c.StreamHeartbeat == 0 {
		c.StreamHeartbeat = 15 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// Deps are the components the API serves.
type Deps struct {
	Storage    storage.Storage
	Views      *triage.ViewStore
	Activity   activity.Feed
	Monitoring dashboard.MonitoringFeed
	Log        *zap.Logger
}

// Server is the HTTP API server.
type Server struct {
	config        *Config
	deps          Deps
	log           *zap.Logger
	limiter       *middleware.RateLimiter
	server        *http.Server
	healthHandler *health.Handler
}

// New creates a new API server.
func New(cfg *Config, deps Deps) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if deps.Views == nil {
		return nil, fmt.Errorf("view store is required")
	}
	if deps.Activity == nil || deps.Monitoring == nil {
		return nil, fmt.Errorf("activity and monitoring feeds are required")
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	cfg.SetDefaults()

	s := &Server{
		config:        cfg,
		deps:          deps,
		log:           deps.Log.Named("api"),
		limiter:       middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
		healthHandler: health.NewHandler(),
	}

	s.server = &http.Server{
		Addr:        cfg.Address,
		Handler:     s.setupRouter(),
		ReadTimeout: 15 * time.Second,
		// WriteTimeout stays 0 because activity streams outlive any sane
		// per-response deadline; the stream handler bounds itself.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.log.Info("HTTP API listening", zap.String("address", s.config.Address))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutting down HTTP API server")
		s.limiter.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		s.limiter.Stop()
		return fmt.Errorf("http api: %w", err)
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.config.Address
}

// RegisterHealthChecker adds a health checker to the server.
func (s *Server) RegisterHealthChecker(c health.Checker) {
	if s.healthHandler != nil {
		s.healthHandler.RegisterChecker(c)
	}
}
