// Package openrouter fetches the OpenRouter model catalog directly, without
// a provider SDK.
package openrouter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/providerhub/internal/transport"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/logging"
)

// ModelsURL is the public catalog endpoint.
const ModelsURL = "https://openrouter.ai/api/v1/models"

// Response is the catalog response.
type Response struct {
	Data []Model `json:"data"`
}

// Model is a catalog entry. Only the fields used for ModelInfo are decoded.
type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ContextLength int    `json:"context_length"`
}

// Fetcher fetches the catalog.
type Fetcher struct {
	endpoint string
	opts     []transport.Option
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithEndpoint overrides the catalog URL.
func WithEndpoint(endpoint string) Option {
	return func(f *Fetcher) {
		f.endpoint = endpoint
	}
}

// WithTransportOptions passes options to the HTTP client.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(f *Fetcher) {
		f.opts = append(f.opts, opts...)
	}
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{endpoint: ModelsURL}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch implements catalogs.ManualFetcher. Any non-2xx answer is an
// APIError carrying the status text.
func (f *Fetcher) Fetch(ctx context.Context, creds catalogs.Credentials) ([]catalogs.ModelInfo, error) {
	provider := catalogs.ProviderIDOpenRouter.String()
	client := transport.New(provider, creds.String(constants.FieldAPIKey), &transport.BearerAuth{}, f.opts...)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+f.endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errors.NewAPIError(provider, resp.StatusCode,
			"Failed to fetch OpenRouter models: "+transport.StatusText(resp.StatusCode))
		apiErr.Endpoint = f.endpoint
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapNetwork(provider, f.endpoint, err)
	}
	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.WrapParse("json", "response", err)
	}

	models := make([]catalogs.ModelInfo, 0, len(result.Data))
	for _, m := range result.Data {
		name := m.Name
		if name == "" {
			name = m.ID
		}
		models = append(models, catalogs.ModelInfo{
			ID:            m.ID,
			Name:          name,
			Provider:      catalogs.ProviderIDOpenRouter,
			Description:   m.Description,
			ContextLength: m.ContextLength,
			Deprecated:    false,
		})
	}
	return models, nil
}

// Factory builds an OpenAI compatible client, used for GetProviderInstance.
// Listing goes through Fetch instead.
func Factory(build func(baseURL, apiKey string) catalogs.Client) catalogs.Factory {
	return func(creds catalogs.Credentials) (catalogs.Client, error) {
		baseURL := creds.String(constants.FieldBaseURL)
		if baseURL == "" {
			return nil, errors.NewValidationError(constants.FieldBaseURL, "", "is required")
		}
		return build(baseURL, creds.String(constants.FieldAPIKey)), nil
	}
}
