package registry

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/providerhub/pkg/store"
)

// Option configures a Registry.
type Option func(*Registry)

// WithStore sets the persistence backend. Defaults to an in-memory store.
func WithStore(s store.Store) Option {
	return func(r *Registry) {
		if s != nil {
			r.store = s
		}
	}
}

// WithStoreKey overrides the namespace key the record is persisted under.
func WithStoreKey(key string) Option {
	return func(r *Registry) {
		if key != "" {
			r.storeKey = key
		}
	}
}

// WithLocalizer sets the localization capability used by metadata views.
func WithLocalizer(l Localizer) Option {
	return func(r *Registry) {
		if l != nil {
			r.localizer = l
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFetchTimeout bounds every model fetch. Zero means no timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.fetchTimeout = d
	}
}
