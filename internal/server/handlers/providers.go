package handlers

import (
	"net/http"

	"github.com/agentstation/utc"

	"github.com/agentstation/providerhub/internal/matcher"
	"github.com/agentstation/providerhub/internal/server/cache"
	"github.com/agentstation/providerhub/internal/server/events"
	"github.com/agentstation/providerhub/internal/server/response"
	"github.com/agentstation/providerhub/internal/utils/ptr"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/registry"
)

// ProviderList is the body of GET /providers.
type ProviderList struct {
	Providers []registry.ProviderMetadata `json:"providers"`
	Count     int                         `json:"count"`
}

// ProviderDetail is the body of GET /providers/{id}.
type ProviderDetail struct {
	registry.ProviderMetadata
	Loading    bool      `json:"loading"`
	LastError  *string   `json:"lastError"`
	FetchedAt  *utc.Time `json:"fetchedAt,omitempty"`
	ModelCount int       `json:"modelCount"`
}

// CredentialsBody is the body of the credential endpoints. Secret values
// are masked.
type CredentialsBody struct {
	Provider    catalogs.ProviderID  `json:"provider"`
	Credentials catalogs.Credentials `json:"credentials"`
	Configured  bool                 `json:"configured"`
}

// HandleListProviders handles GET /api/v1/providers.
//
// Query parameters: configured=true keeps configured providers only,
// search filters on id and localized name (substring, glob, or /regex/).
func (h *Handlers) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}

	v, _ := h.cache.GetOrLoad(cache.Key("providers"), func() (any, error) {
		return reg.AllProvidersMetadata(), nil
	})
	all := v.([]registry.ProviderMetadata)

	configuredOnly := r.URL.Query().Get("configured") == "true"
	m, err := matcher.New(r.URL.Query().Get("search"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	list := make([]registry.ProviderMetadata, 0, len(all))
	for _, meta := range all {
		if configuredOnly && !meta.Configured {
			continue
		}
		if !m.MatchAny(meta.ID.String(), meta.LocalizedName) {
			continue
		}
		list = append(list, meta)
	}

	response.OK(w, ProviderList{Providers: list, Count: len(list)})
}

// HandleGetProvider handles GET /api/v1/providers/{id}.
func (h *Handlers) HandleGetProvider(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}
	id, ok := h.providerID(w, r, reg)
	if !ok {
		return
	}

	meta, err := reg.GetProviderMetadata(id)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	meta.Configured = reg.IsConfigured(id)

	detail := ProviderDetail{
		ProviderMetadata: meta,
		Loading:          reg.IsLoading(id),
		ModelCount:       len(reg.ModelsForProvider(id)),
	}
	if msg, failed := reg.LastError(id); failed {
		detail.LastError = ptr.To(msg)
	}
	if at, fetched := reg.FetchedAt(id); fetched {
		detail.FetchedAt = ptr.To(at)
	}
	response.OK(w, detail)
}

// HandleGetCredentials handles GET /api/v1/providers/{id}/credentials.
func (h *Handlers) HandleGetCredentials(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}
	id, ok := h.providerID(w, r, reg)
	if !ok {
		return
	}
	h.writeCredentials(w, reg, id)
}

// HandlePutCredentials handles PUT /api/v1/providers/{id}/credentials,
// replacing the stored credentials with the body object.
func (h *Handlers) HandlePutCredentials(w http.ResponseWriter, r *http.Request) {
	h.changeCredentials(w, r, (*registry.Registry).SetCredentials)
}

// HandlePatchCredentials handles PATCH /api/v1/providers/{id}/credentials,
// merging the body object into the stored credentials.
func (h *Handlers) HandlePatchCredentials(w http.ResponseWriter, r *http.Request) {
	h.changeCredentials(w, r, (*registry.Registry).UpdateCredentials)
}

// HandleDeleteCredentials handles DELETE /api/v1/providers/{id}/credentials,
// resetting the provider to its seeded credentials.
func (h *Handlers) HandleDeleteCredentials(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}
	id, ok := h.providerID(w, r, reg)
	if !ok {
		return
	}
	if err := reg.ResetCredentials(id); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	h.broker.Publish(events.CredentialsChanged, map[string]any{"provider": id, "reset": true})
	h.writeCredentials(w, reg, id)
}

func (h *Handlers) changeCredentials(
	w http.ResponseWriter,
	r *http.Request,
	apply func(*registry.Registry, catalogs.ProviderID, catalogs.Credentials) error,
) {
	reg, ok := h.registry(w)
	if !ok {
		return
	}
	id, ok := h.providerID(w, r, reg)
	if !ok {
		return
	}

	var body catalogs.Credentials
	if !decodeJSON(w, r, &body) {
		return
	}
	if body == nil {
		response.BadRequest(w, "Credentials must be a JSON object", "")
		return
	}

	if err := apply(reg, id, body); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	h.broker.Publish(events.CredentialsChanged, map[string]any{"provider": id})
	h.writeCredentials(w, reg, id)
}

func (h *Handlers) writeCredentials(w http.ResponseWriter, reg *registry.Registry, id catalogs.ProviderID) {
	creds, _ := reg.Credentials(id)
	if creds == nil {
		creds = catalogs.Credentials{}
	}
	response.OK(w, CredentialsBody{
		Provider:    id,
		Credentials: creds.Masked(),
		Configured:  reg.IsConfigured(id),
	})
}
