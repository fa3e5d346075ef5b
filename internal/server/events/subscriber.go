package events

// Subscriber consumes events. Implementations adapt the stream to a
// transport and must not block.
type Subscriber interface {
	Send(Event) error
	Close() error
}
