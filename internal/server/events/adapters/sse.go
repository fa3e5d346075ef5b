package adapters

import (
	"strconv"

	"github.com/agentstation/providerhub/internal/server/events"
	"github.com/agentstation/providerhub/internal/server/sse"
)

// SSESubscriber forwards broker events to an SSE broadcaster.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
}

// NewSSESubscriber creates a subscriber for broadcaster.
func NewSSESubscriber(broadcaster *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: broadcaster}
}

// Send implements events.Subscriber. The event sequence number becomes the
// SSE id so clients can spot gaps.
func (s *SSESubscriber) Send(event events.Event) error {
	s.broadcaster.Broadcast(sse.Event{
		Event: string(event.Type),
		ID:    strconv.FormatUint(event.Seq, 10),
		Data:  event.Data,
	})
	return nil
}

// Close implements events.Subscriber.
func (s *SSESubscriber) Close() error {
	return nil
}
