package registry

import (
	"slices"

	"github.com/agentstation/utc"

	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/errors"
)

// ProviderMetadata is a descriptor projection with localized display text.
type ProviderMetadata struct {
	ID                   catalogs.ProviderID         `json:"id" yaml:"id"`
	Name                 string                      `json:"name" yaml:"name"`
	NameKey              string                      `json:"nameKey,omitempty" yaml:"name_key,omitempty"`
	Description          string                      `json:"description" yaml:"description"`
	DescriptionKey       string                      `json:"descriptionKey,omitempty" yaml:"description_key,omitempty"`
	Icon                 string                      `json:"icon,omitempty" yaml:"icon,omitempty"`
	IconColor            string                      `json:"iconColor,omitempty" yaml:"icon_color,omitempty"`
	IconImage            string                      `json:"iconImage,omitempty" yaml:"icon_image,omitempty"`
	BaseURLDefault       string                      `json:"baseUrlDefault,omitempty" yaml:"base_url_default,omitempty"`
	ModelSelectionType   catalogs.ModelSelectionType `json:"modelSelectionType" yaml:"model_selection_type"`
	RequiredFields       []string                    `json:"requiredFields,omitempty" yaml:"required_fields,omitempty"`
	SupportsModelListing bool                        `json:"supportsModelListing" yaml:"supports_model_listing"`
	LocalizedName        string                      `json:"localizedName" yaml:"localized_name"`
	LocalizedDescription string                      `json:"localizedDescription" yaml:"localized_description"`
	Configured           bool                        `json:"configured" yaml:"configured"`
}

// State is a point in time snapshot of the derived registry state.
type State struct {
	Configured      map[catalogs.ProviderID]bool                `json:"configured" yaml:"configured"`
	AvailableModels map[catalogs.ProviderID][]catalogs.ModelInfo `json:"availableModels" yaml:"available_models"`
	Loading         map[catalogs.ProviderID]bool                `json:"loading" yaml:"loading"`
	LastError       map[catalogs.ProviderID]*string             `json:"lastError" yaml:"last_error"`
	FetchedAt       map[catalogs.ProviderID]utc.Time            `json:"fetchedAt,omitempty" yaml:"fetched_at,omitempty"`
}

// GetProviderMetadata returns the localized metadata of id. The Configured
// flag is not filled in; use AllProvidersMetadata for that.
func (r *Registry) GetProviderMetadata(id catalogs.ProviderID) (ProviderMetadata, error) {
	desc, ok := r.descriptors.Get(id)
	if !ok {
		return ProviderMetadata{}, errors.NewNotFoundError("provider metadata for", id.String())
	}
	return r.project(desc), nil
}

// AllProvidersMetadata returns localized metadata for every catalog entry,
// in catalog order, with the current configured flag.
func (r *Registry) AllProvidersMetadata() []ProviderMetadata {
	r.mu.RLock()
	configured := make(map[catalogs.ProviderID]bool, len(r.configured))
	for id, ok := range r.configured {
		configured[id] = ok
	}
	r.mu.RUnlock()

	list := r.descriptors.List()
	out := make([]ProviderMetadata, 0, len(list))
	for _, desc := range list {
		m := r.project(desc)
		m.Configured = configured[desc.ID]
		out = append(out, m)
	}
	return out
}

// AvailableProvidersMetadata is AllProvidersMetadata limited to configured providers.
func (r *Registry) AvailableProvidersMetadata() []ProviderMetadata {
	all := r.AllProvidersMetadata()
	out := make([]ProviderMetadata, 0, len(all))
	for _, m := range all {
		if m.Configured {
			out = append(out, m)
		}
	}
	return out
}

// AvailableProviders returns the configured provider IDs in catalog order.
func (r *Registry) AvailableProviders() []catalogs.ProviderID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []catalogs.ProviderID
	for _, id := range r.descriptors.IDs() {
		if r.configured[id] {
			out = append(out, id)
		}
	}
	return out
}

// ModelsForProvider returns the last successfully fetched models of id.
func (r *Registry) ModelsForProvider(id catalogs.ProviderID) []catalogs.ModelInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return catalogs.CloneModels(r.availableModels[id])
}

// AllAvailableModels concatenates the models of configured providers in
// catalog order.
func (r *Registry) AllAvailableModels() []catalogs.ModelInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []catalogs.ModelInfo{}
	for _, id := range r.descriptors.IDs() {
		if r.configured[id] {
			out = append(out, catalogs.CloneModels(r.availableModels[id])...)
		}
	}
	return out
}

// IsLoading reports whether a fetch for id is in flight.
func (r *Registry) IsLoading(id catalogs.ProviderID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading[id]
}

// LastError returns the message recorded by the last failed fetch of id.
// It is cleared when a new fetch starts.
func (r *Registry) LastError(id catalogs.ProviderID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if msg := r.lastError[id]; msg != nil {
		return *msg, true
	}
	return "", false
}

// FetchedAt returns when the models of id were last fetched successfully.
func (r *Registry) FetchedAt(id catalogs.ProviderID) (utc.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.fetchedAt[id]
	return t, ok
}

// State returns a deep copy of the derived state.
func (r *Registry) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := State{
		Configured:      make(map[catalogs.ProviderID]bool, len(r.configured)),
		AvailableModels: make(map[catalogs.ProviderID][]catalogs.ModelInfo, len(r.availableModels)),
		Loading:         make(map[catalogs.ProviderID]bool, len(r.loading)),
		LastError:       make(map[catalogs.ProviderID]*string, len(r.lastError)),
		FetchedAt:       make(map[catalogs.ProviderID]utc.Time, len(r.fetchedAt)),
	}
	for id, v := range r.configured {
		s.Configured[id] = v
	}
	for id, v := range r.availableModels {
		s.AvailableModels[id] = catalogs.CloneModels(v)
	}
	for id, v := range r.loading {
		s.Loading[id] = v
	}
	for id, v := range r.lastError {
		if v == nil {
			s.LastError[id] = nil
			continue
		}
		msg := *v
		s.LastError[id] = &msg
	}
	for id, v := range r.fetchedAt {
		s.FetchedAt[id] = v
	}
	return s
}

func (r *Registry) project(desc *catalogs.Descriptor) ProviderMetadata {
	return ProviderMetadata{
		ID:                   desc.ID,
		Name:                 desc.Name.Fallback,
		NameKey:              desc.Name.Key,
		Description:          desc.Description.Fallback,
		DescriptionKey:       desc.Description.Key,
		Icon:                 desc.Icon,
		IconColor:            desc.IconColor,
		IconImage:            desc.IconImage,
		BaseURLDefault:       desc.BaseURLDefault,
		ModelSelectionType:   desc.SelectionType(),
		RequiredFields:       slices.Clone(desc.RequiredFields),
		SupportsModelListing: desc.SupportsModelListing(),
		LocalizedName:        r.translate(desc.Name),
		LocalizedDescription: r.translate(desc.Description),
	}
}

func (r *Registry) translate(text catalogs.DisplayText) string {
	if text.Key == "" {
		return text.Fallback
	}
	return r.localizer.Translate(text.Key, text.Fallback)
}
