package catalogs

import "slices"

// ModelInfo describes one model a provider offers.
type ModelInfo struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Provider      ProviderID `json:"provider" yaml:"provider"` // back reference, not ownership
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Capabilities  []string   `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	ContextLength int        `json:"contextLength,omitempty" yaml:"context_length,omitempty"`
	Deprecated    bool       `json:"deprecated" yaml:"deprecated"`
}

// RemoteModel is an entry of a provider's remote model catalog as returned
// by a ModelLister. Only the ID survives dynamic resolution.
type RemoteModel struct {
	ID      string `json:"id" yaml:"id"`
	OwnedBy string `json:"owned_by,omitempty" yaml:"owned_by,omitempty"`
	Created int64  `json:"created,omitempty" yaml:"created,omitempty"`
}

// CloneModels returns a deep copy of models. A nil input yields an empty,
// non-nil slice.
func CloneModels(models []ModelInfo) []ModelInfo {
	out := make([]ModelInfo, len(models))
	for i, m := range models {
		m.Capabilities = slices.Clone(m.Capabilities)
		out[i] = m
	}
	return out
}
