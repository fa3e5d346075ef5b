// Package providers holds the builtin provider catalog and wires each entry
// to its client implementation.
package providers

import (
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/agentstation/providerhub/internal/sources/providers/cloudflare"
	"github.com/agentstation/providerhub/internal/sources/providers/elevenlabs"
	"github.com/agentstation/providerhub/internal/sources/providers/google"
	"github.com/agentstation/providerhub/internal/sources/providers/ollama"
	"github.com/agentstation/providerhub/internal/sources/providers/openai"
	"github.com/agentstation/providerhub/internal/sources/providers/openrouter"
	"github.com/agentstation/providerhub/internal/transport"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/constants"
)

// Config tunes the HTTP behavior of the builtin clients.
type Config struct {
	// HTTPClient replaces the default client of every provider.
	HTTPClient *http.Client

	// RateLimitRPM limits requests per provider per minute. Zero disables it.
	RateLimitRPM int

	// Burst is the limiter's burst size. Defaults to constants.BurstSize.
	Burst int

	// OpenRouterEndpoint overrides the OpenRouter catalog URL.
	OpenRouterEndpoint string
}

// Fallback API roots for providers whose catalog entry has no base URL
// default. The credential baseUrl still wins when set.
const (
	xaiURL        = "https://api.x.ai/v1/"
	deepSeekURL   = "https://api.deepseek.com/"
	togetherURL   = "https://api.together.xyz/v1/"
	novitaURL     = "https://api.novita.ai/v3/openai/"
	fireworksURL  = "https://api.fireworks.ai/inference/v1/"
	mistralURL    = "https://api.mistral.ai/v1/"
	moonshotURL   = "https://api.moonshot.ai/v1/"
	perplexityURL = "https://api.perplexity.ai"
)

// Builtin returns the builtin catalog in display order.
func Builtin(cfg Config) []catalogs.Descriptor {
	limiters := make(map[catalogs.ProviderID]*rate.Limiter)
	opts := func(id catalogs.ProviderID) []transport.Option {
		var out []transport.Option
		if cfg.HTTPClient != nil {
			out = append(out, transport.WithHTTPClient(cfg.HTTPClient))
		}
		if cfg.RateLimitRPM > 0 {
			lim, ok := limiters[id]
			if !ok {
				lim = transport.NewLimiter(cfg.RateLimitRPM, cfg.Burst)
				limiters[id] = lim
			}
			out = append(out, transport.WithLimiter(lim))
		}
		return out
	}
	compatible := func(id catalogs.ProviderID, fallbackURL string) catalogs.Factory {
		return openai.Factory(id, fallbackURL, opts(id)...)
	}

	var orOpts []openrouter.Option
	if cfg.OpenRouterEndpoint != "" {
		orOpts = append(orOpts, openrouter.WithEndpoint(cfg.OpenRouterEndpoint))
	}
	orOpts = append(orOpts, openrouter.WithTransportOptions(opts(catalogs.ProviderIDOpenRouter)...))
	orFetcher := openrouter.NewFetcher(orOpts...)

	return []catalogs.Descriptor{
		{
			ID:             catalogs.ProviderIDOpenRouter,
			Name:           catalogs.Text("providers.openrouter.name", "OpenRouter"),
			Description:    catalogs.Text("providers.openrouter.description", "openrouter.ai"),
			Icon:           "i-lobe-icons:openrouter",
			BaseURLDefault: "https://openrouter.ai/api/v1/",
			RequiredFields: []string{constants.FieldAPIKey, constants.FieldBaseURL},
			APIKeyEnv:      "OPENROUTER_API_KEY",
			Models:         catalogs.Manual{Fetch: orFetcher.Fetch},
			Factory: openrouter.Factory(func(baseURL, apiKey string) catalogs.Client {
				return openai.NewClient(catalogs.ProviderIDOpenRouter, baseURL, apiKey, opts(catalogs.ProviderIDOpenRouter)...)
			}),
		},
		{
			ID:             catalogs.ProviderIDOpenAI,
			Name:           catalogs.Text("providers.openai.name", "OpenAI"),
			Description:    catalogs.Text("providers.openai.description", "openai.com"),
			Icon:           "i-lobe-icons:openai",
			BaseURLDefault: "https://api.openai.com/v1/",
			RequiredFields: []string{constants.FieldAPIKey},
			APIKeyEnv:      "OPENAI_API_KEY",
			Models:         catalogs.Dynamic{},
			Factory:        compatible(catalogs.ProviderIDOpenAI, "https://api.openai.com/v1/"),
		},
		{
			ID:             catalogs.ProviderIDOllama,
			Name:           catalogs.Text("providers.ollama.name", "Ollama"),
			Description:    catalogs.Text("providers.ollama.description", "ollama.com"),
			Icon:           "i-lobe-icons:ollama",
			BaseURLDefault: ollama.DefaultBaseURL,
			RequiredFields: []string{constants.FieldBaseURL},
			Models:         catalogs.Dynamic{},
			Factory:        ollama.Factory(opts(catalogs.ProviderIDOllama)...),
		},
		{
			ID:             catalogs.ProviderIDVLLM,
			Name:           catalogs.Text("providers.vllm.name", "vLLM"),
			Description:    catalogs.Text("providers.vllm.description", "vllm.ai"),
			IconColor:      "i-lobe-icons:vllm-color",
			RequiredFields: []string{constants.FieldBaseURL},
			Models:         catalogs.Hardcoded{Models: vllmModels},
			Factory:        ollama.Factory(opts(catalogs.ProviderIDVLLM)...),
		},
		{
			ID:             catalogs.ProviderIDPerplexity,
			Name:           catalogs.Text("providers.perplexity.name", "Perplexity"),
			Description:    catalogs.Text("providers.perplexity.description", "perplexity.ai"),
			Icon:           "i-lobe-icons:perplexity",
			BaseURLDefault: perplexityURL,
			// no required fields: perplexity is listed but never configured
			APIKeyEnv:      "PERPLEXITY_API_KEY",
			Models:         catalogs.Hardcoded{Models: perplexityModels},
			Factory:        compatible(catalogs.ProviderIDPerplexity, perplexityURL),
		},
		{
			ID:             catalogs.ProviderIDElevenLabs,
			Name:           catalogs.Text("providers.elevenlabs.name", "ElevenLabs"),
			Description:    catalogs.Text("providers.elevenlabs.description", "elevenlabs.io"),
			Icon:           "i-simple-icons:elevenlabs",
			BaseURLDefault: elevenlabs.DefaultBaseURL,
			RequiredFields: []string{constants.FieldAPIKey},
			APIKeyEnv:      "ELEVENLABS_API_KEY",
			Models:         catalogs.Hardcoded{Models: elevenLabsModels},
			Factory:        elevenlabs.Factory(opts(catalogs.ProviderIDElevenLabs)...),
		},
		compatibleEntry(catalogs.ProviderIDXAI, "xai", "xAI", "x.ai", "i-lobe-icons:xai", "XAI_API_KEY", compatible(catalogs.ProviderIDXAI, xaiURL)),
		compatibleEntry(catalogs.ProviderIDDeepSeek, "deepseek", "DeepSeek", "deepseek.com", "i-lobe-icons:deepseek-color", "DEEPSEEK_API_KEY", compatible(catalogs.ProviderIDDeepSeek, deepSeekURL)),
		compatibleEntry(catalogs.ProviderIDTogether, "together", "Together.ai", "together.ai", "i-lobe-icons:together-color", "TOGETHER_API_KEY", compatible(catalogs.ProviderIDTogether, togetherURL)),
		compatibleEntry(catalogs.ProviderIDNovita, "novita", "Novita", "novita.ai", "i-lobe-icons:novita-color", "NOVITA_API_KEY", compatible(catalogs.ProviderIDNovita, novitaURL)),
		compatibleEntry(catalogs.ProviderIDFireworks, "fireworks", "Fireworks.ai", "fireworks.ai", "i-lobe-icons:fireworks", "FIREWORKS_API_KEY", compatible(catalogs.ProviderIDFireworks, fireworksURL)),
		{
			ID:             catalogs.ProviderIDCloudflareWorkersAI,
			Name:           catalogs.Text("providers.cloudflare.name", "Cloudflare Workers AI"),
			Description:    catalogs.Text("providers.cloudflare.description", "cloudflare.com"),
			IconColor:      "i-lobe-icons:cloudflare-color",
			RequiredFields: []string{constants.FieldAPIKey},
			APIKeyEnv:      "CLOUDFLARE_API_TOKEN",
			Models:         catalogs.Dynamic{},
			Factory:        cloudflare.Factory(opts(catalogs.ProviderIDCloudflareWorkersAI)...),
		},
		compatibleEntry(catalogs.ProviderIDMistral, "mistral", "Mistral", "mistral.ai", "i-lobe-icons:mistral-color", "MISTRAL_API_KEY", compatible(catalogs.ProviderIDMistral, mistralURL)),
		compatibleEntry(catalogs.ProviderIDMoonshot, "moonshot", "Moonshot AI", "moonshot.ai", "i-lobe-icons:moonshot", "MOONSHOT_API_KEY", compatible(catalogs.ProviderIDMoonshot, moonshotURL)),
		{
			ID:             catalogs.ProviderIDGoogleAI,
			Name:           catalogs.Text("providers.google-ai.name", "Google Gemini"),
			Description:    catalogs.Text("providers.google-ai.description", "ai.google.dev"),
			Icon:           "i-lobe-icons:gemini",
			RequiredFields: []string{constants.FieldAPIKey},
			APIKeyEnv:      "GOOGLE_API_KEY",
			Models:         catalogs.Dynamic{},
			Factory:        google.Factory(cfg.HTTPClient),
		},
	}
}

// compatibleEntry builds the entry of a dynamic, API key only provider.
func compatibleEntry(id catalogs.ProviderID, short, name, description, icon, env string, factory catalogs.Factory) catalogs.Descriptor {
	d := catalogs.Descriptor{
		ID:             id,
		Name:           catalogs.Text("providers."+short+".name", name),
		Description:    catalogs.Text("providers."+short+".description", description),
		RequiredFields: []string{constants.FieldAPIKey},
		APIKeyEnv:      env,
		Models:         catalogs.Dynamic{},
		Factory:        factory,
	}
	if strings.HasSuffix(icon, "-color") {
		d.IconColor = icon
	} else {
		d.Icon = icon
	}
	return d
}
