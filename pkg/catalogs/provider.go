package catalogs

import (
	"slices"
	"strings"

	"github.com/agentstation/providerhub/pkg/errors"
)

// ProviderID is the unique key of a catalog entry.
type ProviderID string

// String returns the string representation of a ProviderID.
func (id ProviderID) String() string {
	return string(id)
}

// Builtin provider IDs.
const (
	ProviderIDOpenRouter          ProviderID = "openrouter-ai"
	ProviderIDOpenAI              ProviderID = "openai"
	ProviderIDOllama              ProviderID = "ollama-ai"
	ProviderIDVLLM                ProviderID = "vllm"
	ProviderIDPerplexity          ProviderID = "perplexity-ai"
	ProviderIDElevenLabs          ProviderID = "elevenlabs"
	ProviderIDXAI                 ProviderID = "xai"
	ProviderIDDeepSeek            ProviderID = "deepseek"
	ProviderIDTogether            ProviderID = "together-ai"
	ProviderIDNovita              ProviderID = "novita-ai"
	ProviderIDFireworks           ProviderID = "fireworks-ai"
	ProviderIDCloudflareWorkersAI ProviderID = "cloudflare-workers-ai"
	ProviderIDMistral             ProviderID = "mistral-ai"
	ProviderIDMoonshot            ProviderID = "moonshot-ai"
	ProviderIDGoogleAI            ProviderID = "google-ai"
)

// DisplayText is a user facing string with an optional localization key.
type DisplayText struct {
	Key      string `json:"key,omitempty" yaml:"key,omitempty"`
	Fallback string `json:"fallback" yaml:"fallback"`
}

// Text builds a DisplayText.
func Text(key, fallback string) DisplayText {
	return DisplayText{Key: key, Fallback: fallback}
}

// String returns the fallback literal.
func (t DisplayText) String() string {
	return t.Fallback
}

// Client is whatever a provider factory builds: an SDK handle, an HTTP
// client, a speech client. Capabilities are discovered with type assertions,
// see ModelLister.
type Client any

// Factory builds a provider client from the user's credentials.
type Factory func(creds Credentials) (Client, error)

// Descriptor is an immutable catalog entry describing one provider.
type Descriptor struct {
	ID             ProviderID
	Name           DisplayText
	Description    DisplayText
	Icon           string
	IconColor      string
	IconImage      string
	BaseURLDefault string

	// RequiredFields lists the credential keys that must be truthy for the
	// provider to count as configured. A descriptor without required fields
	// is never configured.
	RequiredFields []string

	// APIKeyEnv names the environment variable that can seed the apiKey.
	APIKeyEnv string

	Models  ModelSource
	Factory Factory
}

// SelectionType returns the model selection strategy of the descriptor.
func (d *Descriptor) SelectionType() ModelSelectionType {
	if d.Models == nil {
		return ""
	}
	return d.Models.Kind()
}

// SupportsModelListing reports whether the descriptor can produce a model list.
func (d *Descriptor) SupportsModelListing() bool {
	switch src := d.Models.(type) {
	case Dynamic, Manual:
		return true
	case Hardcoded:
		return len(src.Models) > 0
	}
	return false
}

// Requires reports whether key is one of the required credential fields.
func (d *Descriptor) Requires(key string) bool {
	return slices.Contains(d.RequiredFields, key)
}

// Validate checks the authoring invariants of a catalog entry.
func (d *Descriptor) Validate() error {
	var problems []string
	if d.ID == "" {
		problems = append(problems, "id is empty")
	}
	if d.Name.Fallback == "" {
		problems = append(problems, "name is empty")
	}
	switch src := d.Models.(type) {
	case nil:
		problems = append(problems, "model source is missing")
	case Dynamic:
		if d.Factory == nil {
			problems = append(problems, "dynamic model source requires a factory")
		}
	case Manual:
		if src.Fetch == nil {
			problems = append(problems, "manual model source requires a fetcher")
		}
	case Hardcoded:
		if len(src.Models) == 0 {
			problems = append(problems, "hardcoded model source has no models")
		}
	}
	if len(problems) > 0 {
		return errors.NewConfigError(d.ID.String(), strings.Join(problems, "; "), nil)
	}
	return nil
}
