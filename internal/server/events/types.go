// Package events fans registry notifications out to the realtime transports
// of the API server.
//
// Registry hooks publish into a Broker; the WebSocket hub and the SSE
// broadcaster subscribe to it through the adapters package.
package events

import "time"

// EventType names a registry event.
type EventType string

// Event types published by the server.
const (
	// ProviderConfigured fires when a provider enters the configured set.
	ProviderConfigured EventType = "provider.configured"
	// ProviderUnconfigured fires when a provider leaves the configured set.
	ProviderUnconfigured EventType = "provider.unconfigured"
	// CredentialsChanged fires after credentials were written through the API.
	CredentialsChanged EventType = "credentials.changed"

	ModelsUpdated     EventType = "models.updated"
	ModelsFetchFailed EventType = "models.fetch_failed"

	ClientConnected EventType = "client.connected"
)

// Event is one published notification. Seq increases monotonically per broker.
type Event struct {
	Seq       uint64    `json:"seq"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
