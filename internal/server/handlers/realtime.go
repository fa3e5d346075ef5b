package handlers

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/agentstation/providerhub/internal/server/events"
	ws "github.com/agentstation/providerhub/internal/server/websocket"
)

var clientSeq atomic.Uint64

// HandleWebSocket handles GET /api/v1/events/ws. The first frame is a
// client.connected message carrying the current registry state.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	id := fmt.Sprintf("ws-%d", clientSeq.Add(1))
	ws.NewClient(id, h.wsHub, conn).Serve(ws.Message{
		Type:      string(events.ClientConnected),
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"client": id,
			"state":  reg.State(),
		},
	})
}

// HandleSSE handles GET /api/v1/events/stream.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.ServeHTTP(w, r)
}
