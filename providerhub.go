// Package providerhub is the entry point of the provider hub: it assembles
// the builtin provider catalog, the credential store, localization and the
// provider registry into a ready to use Hub.
//
// Example usage:
//
//	hub, err := providerhub.New(
//	    providerhub.WithDataDir("~/.providerhub"),
//	    providerhub.WithLocale("en"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer hub.Close()
//
//	reg := hub.Registry()
//	_ = reg.SetCredential(catalogs.ProviderIDOpenAI, "apiKey", os.Getenv("OPENAI_API_KEY"))
//	for _, m := range reg.FetchModelsForProvider(ctx, catalogs.ProviderIDOpenAI) {
//	    fmt.Println(m.ID)
//	}
package providerhub

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/providerhub/internal/config"
	"github.com/agentstation/providerhub/internal/i18n"
	"github.com/agentstation/providerhub/internal/sources/providers"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/logging"
	"github.com/agentstation/providerhub/pkg/registry"
	"github.com/agentstation/providerhub/pkg/store"
)

// Hub owns a provider registry and its supporting services.
type Hub struct {
	options    *options
	registry   *registry.Registry
	translator *i18n.Translator
	store      store.Store

	// auto refresh state
	mu            sync.Mutex
	refreshTicker *time.Ticker
	refreshCancel context.CancelFunc
	refreshDone   chan struct{}
}

// New creates a Hub with the given options.
func New(opts ...Option) (*Hub, error) {
	o := defaults()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errors.WrapResource("apply", "option", "", err)
		}
	}

	descriptors, err := o.catalog()
	if err != nil {
		return nil, err
	}

	translator, err := i18n.New(o.locale)
	if err != nil {
		return nil, err
	}

	st := o.store
	if st == nil {
		if o.dataDir == "" {
			st = store.NewMemory()
		} else {
			st = store.NewFile(o.dataDir)
		}
	}

	logger := o.logger
	if logger == nil {
		logger = logging.Default()
	}

	reg, err := registry.New(descriptors,
		registry.WithStore(st),
		registry.WithLocalizer(translator),
		registry.WithLogger(logger),
		registry.WithFetchTimeout(o.fetchTimeout),
	)
	if err != nil {
		return nil, err
	}

	if o.envAPIKeys {
		config.BindAPIKeys(descriptors)
		seeded, err := config.SeedAPIKeys(reg, descriptors)
		if err != nil {
			return nil, err
		}
		if len(seeded) > 0 {
			logger.Info().Int("providers", len(seeded)).Msg("seeded api keys from environment")
		}
	}

	h := &Hub{
		options:    o,
		registry:   reg,
		translator: translator,
		store:      st,
	}

	if o.autoRefreshInterval > 0 {
		if err := h.AutoRefreshOn(o.autoRefreshInterval); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Registry returns the provider registry.
func (h *Hub) Registry() *registry.Registry {
	return h.registry
}

// Translator returns the localizer used for display text.
func (h *Hub) Translator() *i18n.Translator {
	return h.translator
}

// Store returns the credential store backend.
func (h *Hub) Store() store.Store {
	return h.store
}

// Close stops background work.
func (h *Hub) Close() error {
	return h.AutoRefreshOff()
}

func (o *options) catalog() (*catalogs.Descriptors, error) {
	if len(o.descriptors) > 0 {
		return catalogs.NewDescriptors(o.descriptors...)
	}
	return catalogs.NewDescriptors(providers.Builtin(providers.Config{
		HTTPClient:   o.httpClient,
		RateLimitRPM: o.rateLimitRPM,
		Burst:        o.burst,
	})...)
}
