package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/providerhub/internal/server/response"
)

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "providerhub-api",
		"version": h.app.Version(),
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HandleReady handles GET /api/v1/ready. It reports 503 until the registry
// can be built.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}
	response.OK(w, map[string]any{
		"status":            "ready",
		"providers":         reg.Descriptors().Len(),
		"configured":        len(reg.AvailableProviders()),
		"cache_items":       h.cache.ItemCount(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
