// Package server exposes a provider registry over HTTP: a JSON API for
// providers, credentials and models plus WebSocket and SSE streams of
// registry events.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/providerhub/internal/appcontext"
	"github.com/agentstation/providerhub/internal/server/cache"
	"github.com/agentstation/providerhub/internal/server/events"
	"github.com/agentstation/providerhub/internal/server/events/adapters"
	"github.com/agentstation/providerhub/internal/server/sse"
	ws "github.com/agentstation/providerhub/internal/server/websocket"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/errors"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app            appcontext.Interface
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	done           chan struct{}
}

// New creates a server for app and connects the registry hooks to the
// event broker. Background services start with Start.
func New(app appcontext.Interface, cfg Config) (*Server, error) {
	logger := app.Logger()

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "/api/v1"
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		app:            app,
		cache:          cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := s.connectHooks(); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

// connectHooks publishes registry changes to the broker and drops cached
// views.
func (s *Server) connectHooks() error {
	reg, err := s.app.Registry()
	if err != nil {
		return err
	}
	if reg == nil {
		return errors.NewConfigError("server", "registry not available", nil)
	}

	reg.OnConfiguredChanged(func(id catalogs.ProviderID, configured bool) {
		s.cache.Clear()
		eventType := events.ProviderUnconfigured
		if configured {
			eventType = events.ProviderConfigured
		}
		s.broker.Publish(eventType, map[string]any{"provider": id})
	})

	reg.OnModelsUpdated(func(id catalogs.ProviderID, models []catalogs.ModelInfo) {
		s.cache.Clear()
		s.broker.Publish(events.ModelsUpdated, map[string]any{
			"provider": id,
			"count":    len(models),
			"models":   models,
		})
	})

	reg.OnFetchFailed(func(id catalogs.ProviderID, err error) {
		s.cache.Clear()
		s.broker.Publish(events.ModelsFetchFailed, map[string]any{
			"provider": id,
			"error":    err.Error(),
		})
	})

	s.logger.Debug().Msg("Registry hooks connected to event broker")
	return nil
}

// Start launches the broker, the WebSocket hub and the SSE broadcaster.
func (s *Server) Start() {
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.broker.Run(s.ctx)
	}()
	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// ListenAndServe serves HTTP on the configured address until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", httpServer.Addr).Msg("API server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		_ = s.Shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// background services first, so SSE streams end and do not hold up Shutdown
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.WrapResource("shutdown", "server", httpServer.Addr, err)
	}
	s.logger.Info().Msg("API server stopped")
	return nil
}

// Shutdown stops the background services and waits for the broker to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.done == nil {
		return nil
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// Cache returns the view cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}
