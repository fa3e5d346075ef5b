package adapters

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/providerhub/internal/server/events"
	"github.com/agentstation/providerhub/internal/server/sse"
	ws "github.com/agentstation/providerhub/internal/server/websocket"
)

func TestAdaptersImplementSubscriber(t *testing.T) {
	logger := zerolog.Nop()
	subs := []events.Subscriber{
		NewWebSocketSubscriber(ws.NewHub(&logger)),
		NewSSESubscriber(sse.NewBroadcaster(&logger)),
	}

	event := events.Event{Seq: 1, Type: events.ModelsUpdated, Timestamp: time.Now(), Data: map[string]any{"provider": "openai"}}
	for _, sub := range subs {
		assert.NoError(t, sub.Send(event))
		assert.NoError(t, sub.Close())
		assert.NoError(t, sub.Close())
	}
}
