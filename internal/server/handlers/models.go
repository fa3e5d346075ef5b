package handlers

import (
	"net/http"

	"github.com/agentstation/providerhub/internal/matcher"
	"github.com/agentstation/providerhub/internal/server/cache"
	"github.com/agentstation/providerhub/internal/server/response"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/registry"
)

// ModelList is the body of the model listing endpoints.
type ModelList struct {
	Models []catalogs.ModelInfo `json:"models"`
	Count  int                  `json:"count"`
}

// LoadResult is the body of POST /models/load.
type LoadResult struct {
	Loaded []catalogs.ProviderID          `json:"loaded"`
	Errors map[catalogs.ProviderID]string `json:"errors"`
	Models int                            `json:"models"`
}

// HandleListModels handles GET /api/v1/models: every model of every
// configured provider, optionally filtered by ?search= on id and name.
func (h *Handlers) HandleListModels(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}
	m, err := matcher.New(r.URL.Query().Get("search"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	v, _ := h.cache.GetOrLoad(cache.Key("models"), func() (any, error) {
		return reg.AllAvailableModels(), nil
	})
	all := v.([]catalogs.ModelInfo)

	models := make([]catalogs.ModelInfo, 0, len(all))
	for _, model := range all {
		if m.MatchAny(model.ID, model.Name) {
			models = append(models, model)
		}
	}
	response.OK(w, ModelList{Models: models, Count: len(models)})
}

// HandleProviderModels handles GET /api/v1/providers/{id}/models. It
// returns the models fetched so far without contacting the provider.
func (h *Handlers) HandleProviderModels(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}
	id, ok := h.providerID(w, r, reg)
	if !ok {
		return
	}
	models := reg.ModelsForProvider(id)
	response.OK(w, ModelList{Models: models, Count: len(models)})
}

// HandleFetchModels handles POST /api/v1/providers/{id}/models/fetch.
// A failed fetch answers with the mapped error; the registry keeps the
// previous models.
func (h *Handlers) HandleFetchModels(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}
	id, ok := h.providerID(w, r, reg)
	if !ok {
		return
	}

	models, err := reg.TryFetchModels(r.Context(), id)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, ModelList{Models: models, Count: len(models)})
}

// HandleLoadModels handles POST /api/v1/models/load: a fetch for every
// configured provider that supports listing.
func (h *Handlers) HandleLoadModels(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}
	if err := reg.LoadModelsForConfiguredProviders(r.Context()); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, loadResult(reg))
}

func loadResult(reg *registry.Registry) LoadResult {
	result := LoadResult{
		Loaded: []catalogs.ProviderID{},
		Errors: map[catalogs.ProviderID]string{},
	}
	for _, id := range reg.AvailableProviders() {
		if !reg.SupportsModelListing(id) {
			continue
		}
		if msg, failed := reg.LastError(id); failed {
			result.Errors[id] = msg
			continue
		}
		result.Loaded = append(result.Loaded, id)
		result.Models += len(reg.ModelsForProvider(id))
	}
	return result
}

// HandleState handles GET /api/v1/state: the full derived registry state.
func (h *Handlers) HandleState(w http.ResponseWriter, _ *http.Request) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}
	response.OK(w, reg.State())
}
