// Package handlers implements the HTTP endpoints of the registry API.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/providerhub/internal/appcontext"
	"github.com/agentstation/providerhub/internal/server/cache"
	"github.com/agentstation/providerhub/internal/server/events"
	"github.com/agentstation/providerhub/internal/server/response"
	"github.com/agentstation/providerhub/internal/server/sse"
	ws "github.com/agentstation/providerhub/internal/server/websocket"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/registry"
)

// maxBodyBytes bounds credential request bodies.
const maxBodyBytes = 64 << 10

// Handlers serves the API endpoints.
type Handlers struct {
	app            appcontext.Interface
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	startTime      time.Time
}

// New creates a Handlers instance.
func New(
	app appcontext.Interface,
	cache *cache.Cache,
	broker *events.Broker,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		app:            app,
		cache:          cache,
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
		startTime:      time.Now(),
	}
}

// registry resolves the registry or writes a 503.
func (h *Handlers) registry(w http.ResponseWriter) (*registry.Registry, bool) {
	reg, err := h.app.Registry()
	if err != nil || reg == nil {
		h.logger.Error().Err(err).Msg("registry unavailable")
		response.ServiceUnavailable(w, "Provider registry not available")
		return nil, false
	}
	return reg, true
}

// providerID reads the {id} path value and checks it against the catalog.
func (h *Handlers) providerID(w http.ResponseWriter, r *http.Request, reg *registry.Registry) (catalogs.ProviderID, bool) {
	id := catalogs.ProviderID(r.PathValue("id"))
	if !reg.Descriptors().Exists(id) {
		response.NotFound(w, fmt.Sprintf("provider %q not found", id), "")
		return "", false
	}
	return id, true
}

// decodeJSON decodes a bounded request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		response.BadRequest(w, "Invalid JSON body", err.Error())
		return false
	}
	return true
}
