package registry

import (
	"sync"

	"github.com/agentstation/providerhub/pkg/catalogs"
)

// Hook function types for registry events.
type (
	// ConfiguredChangedHook is called when a provider enters or leaves the configured set.
	ConfiguredChangedHook func(id catalogs.ProviderID, configured bool)

	// ModelsUpdatedHook is called after a successful fetch replaced a provider's
	// models and after ClearModels dropped them.
	ModelsUpdatedHook func(id catalogs.ProviderID, models []catalogs.ModelInfo)

	// FetchFailedHook is called after a fetch failed.
	FetchFailedHook func(id catalogs.ProviderID, err error)
)

type configuredChange struct {
	id         catalogs.ProviderID
	configured bool
}

// hooks manages event callbacks. Callbacks run synchronously, outside the
// registry lock.
type hooks struct {
	mu                  sync.RWMutex
	onConfiguredChanged []ConfiguredChangedHook
	onModelsUpdated     []ModelsUpdatedHook
	onFetchFailed       []FetchFailedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnConfiguredChanged registers a callback for configured set changes.
func (r *Registry) OnConfiguredChanged(fn ConfiguredChangedHook) {
	r.hooks.mu.Lock()
	defer r.hooks.mu.Unlock()
	r.hooks.onConfiguredChanged = append(r.hooks.onConfiguredChanged, fn)
}

// OnModelsUpdated registers a callback for model list changes.
func (r *Registry) OnModelsUpdated(fn ModelsUpdatedHook) {
	r.hooks.mu.Lock()
	defer r.hooks.mu.Unlock()
	r.hooks.onModelsUpdated = append(r.hooks.onModelsUpdated, fn)
}

// OnFetchFailed registers a callback for failed fetches.
func (r *Registry) OnFetchFailed(fn FetchFailedHook) {
	r.hooks.mu.Lock()
	defer r.hooks.mu.Unlock()
	r.hooks.onFetchFailed = append(r.hooks.onFetchFailed, fn)
}

func (h *hooks) configuredChanged(changes []configuredChange) {
	if len(changes) == 0 {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range changes {
		for _, fn := range h.onConfiguredChanged {
			fn(c.id, c.configured)
		}
	}
}

func (h *hooks) modelsUpdated(id catalogs.ProviderID, models []catalogs.ModelInfo) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onModelsUpdated {
		fn(id, catalogs.CloneModels(models))
	}
}

func (h *hooks) fetchFailed(id catalogs.ProviderID, err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onFetchFailed {
		fn(id, err)
	}
}
