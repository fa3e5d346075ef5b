// Package registry implements the provider registry: credential persistence,
// configuration validation, model resolution and the aggregate views built
// on top of them.
//
// A Registry is safe for concurrent use. Fetches for the same provider are
// not serialized; the last one to finish wins.
package registry

import (
	"sync"
	"time"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/logging"
	"github.com/agentstation/providerhub/pkg/store"
)

// Registry owns the credential record and the state derived from it.
type Registry struct {
	descriptors  *catalogs.Descriptors
	store        store.Store
	storeKey     string
	localizer    Localizer
	logger       *zerolog.Logger
	fetchTimeout time.Duration
	hooks        *hooks

	mu              sync.RWMutex
	credentials     catalogs.Record
	configured      map[catalogs.ProviderID]bool
	availableModels map[catalogs.ProviderID][]catalogs.ModelInfo
	loading         map[catalogs.ProviderID]bool
	lastError       map[catalogs.ProviderID]*string
	fetchedAt       map[catalogs.ProviderID]utc.Time
}

// New builds a registry over descriptors. It loads the persisted credential
// record, seeds an entry for every catalog provider and computes the
// configured set.
func New(descriptors *catalogs.Descriptors, opts ...Option) (*Registry, error) {
	if descriptors == nil {
		return nil, errors.NewConfigError("registry", "descriptors cannot be nil", nil)
	}

	r := &Registry{
		descriptors:     descriptors,
		store:           store.NewMemory(),
		storeKey:        constants.CredentialsKey,
		localizer:       FallbackLocalizer{},
		logger:          logging.Default(),
		hooks:           newHooks(),
		credentials:     catalogs.Record{},
		configured:      make(map[catalogs.ProviderID]bool),
		availableModels: make(map[catalogs.ProviderID][]catalogs.ModelInfo),
		loading:         make(map[catalogs.ProviderID]bool),
		lastError:       make(map[catalogs.ProviderID]*string),
		fetchedAt:       make(map[catalogs.ProviderID]utc.Time),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Descriptors returns the catalog the registry was built with.
func (r *Registry) Descriptors() *catalogs.Descriptors {
	return r.descriptors
}

// Reload re-reads the credential record from the store, seeds missing
// catalog entries and recomputes the configured set.
func (r *Registry) Reload() error {
	record, err := r.load()
	if err != nil {
		return err
	}

	r.mu.Lock()
	seeded := false
	for _, desc := range r.descriptors.List() {
		if _, ok := record[desc.ID]; !ok {
			record[desc.ID] = seed(desc)
			seeded = true
		}
	}
	if seeded {
		if err := r.save(record); err != nil {
			r.mu.Unlock()
			return err
		}
	}
	r.credentials = record
	changes := r.recompute()
	r.mu.Unlock()

	r.hooks.configuredChanged(changes)
	r.logger.Debug().
		Int("providers", len(record)).
		Int("configured", len(r.AvailableProviders())).
		Msg("credential record loaded")
	return nil
}

// load decodes the persisted record. A missing key yields an empty record.
func (r *Registry) load() (catalogs.Record, error) {
	data, ok, err := r.store.Get(r.storeKey)
	if err != nil {
		return nil, errors.WrapResource("load", "credentials", "", err)
	}
	record := catalogs.Record{}
	if !ok || len(data) == 0 {
		return record, nil
	}

	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("yaml", r.storeKey, err)
	}
	for id, creds := range raw {
		if creds == nil {
			creds = map[string]any{}
		}
		record[catalogs.ProviderID(id)] = creds
	}
	return record, nil
}

// save persists record. Callers hold r.mu.
func (r *Registry) save(record catalogs.Record) error {
	raw := make(map[string]map[string]any, len(record))
	for id, creds := range record {
		raw[string(id)] = creds
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return errors.WrapParse("yaml", r.storeKey, err)
	}
	if err := r.store.Set(r.storeKey, data); err != nil {
		return errors.WrapResource("save", "credentials", "", err)
	}
	return nil
}

func seed(desc *catalogs.Descriptor) catalogs.Credentials {
	return catalogs.Credentials{constants.FieldBaseURL: desc.BaseURLDefault}
}
