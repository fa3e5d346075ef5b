package server

import (
	"net/http"

	"github.com/agentstation/providerhub/internal/server/handlers"
	"github.com/agentstation/providerhub/internal/server/middleware"
	"github.com/agentstation/providerhub/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.app,
		s.cache,
		s.broker,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		s.logger,
	)

	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	p := s.config.PathPrefix

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+p+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+p+"/ready", h.HandleReady)

	mux.HandleFunc("GET "+p+"/providers", h.HandleListProviders)
	mux.HandleFunc("GET "+p+"/providers/{id}", h.HandleGetProvider)
	mux.HandleFunc("GET "+p+"/providers/{id}/credentials", h.HandleGetCredentials)
	mux.HandleFunc("PUT "+p+"/providers/{id}/credentials", h.HandlePutCredentials)
	mux.HandleFunc("PATCH "+p+"/providers/{id}/credentials", h.HandlePatchCredentials)
	mux.HandleFunc("DELETE "+p+"/providers/{id}/credentials", h.HandleDeleteCredentials)
	mux.HandleFunc("GET "+p+"/providers/{id}/models", h.HandleProviderModels)
	mux.HandleFunc("POST "+p+"/providers/{id}/models/fetch", h.HandleFetchModels)

	mux.HandleFunc("GET "+p+"/models", h.HandleListModels)
	mux.HandleFunc("POST "+p+"/models/load", h.HandleLoadModels)
	mux.HandleFunc("GET "+p+"/state", h.HandleState)

	mux.HandleFunc("GET "+p+"/events/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+p+"/events/stream", h.HandleSSE)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "No route for "+r.Method+" "+r.URL.Path, "")
	})
}

// applyMiddleware wraps handler with the middleware chain. Recovery is the
// outermost layer.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config
	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig().WithHeader(cfg.AuthHeader)
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		}
		chain = append(chain, middleware.CORS(corsConfig))
	}

	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.APIKey = cfg.APIKey
		if cfg.AuthHeader != "" {
			authConfig.HeaderName = cfg.AuthHeader
		}
		authConfig.PublicPaths = []string{"/health", cfg.PathPrefix + "/health", cfg.PathPrefix + "/ready"}
		chain = append(chain, middleware.Auth(authConfig, s.logger))
	}

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, s.logger)
		chain = append(chain, middleware.RateLimit(limiter))
	}

	return middleware.Chain(chain...)(handler)
}
