// Package openai lists models from OpenAI and the many providers that
// expose an OpenAI compatible GET /models endpoint.
package openai

import (
	"context"

	"github.com/agentstation/providerhub/internal/transport"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
)

// Response is the list models response.
type Response struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// Model is one entry of the list models response.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// Client talks to an OpenAI compatible API.
type Client struct {
	transport *transport.Client
	provider  catalogs.ProviderID
	baseURL   string
}

// NewClient creates a client for provider rooted at baseURL.
func NewClient(provider catalogs.ProviderID, baseURL, apiKey string, opts ...transport.Option) *Client {
	return &Client{
		transport: transport.New(provider.String(), apiKey, &transport.BearerAuth{}, opts...),
		provider:  provider,
		baseURL:   baseURL,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListModels implements catalogs.ModelLister.
func (c *Client) ListModels(ctx context.Context) ([]catalogs.RemoteModel, error) {
	var result Response
	if err := c.transport.GetJSON(ctx, transport.JoinURL(c.baseURL, "models"), &result); err != nil {
		return nil, err
	}

	models := make([]catalogs.RemoteModel, 0, len(result.Data))
	for _, m := range result.Data {
		if m.ID == "" {
			continue
		}
		models = append(models, catalogs.RemoteModel{ID: m.ID, OwnedBy: m.OwnedBy, Created: m.Created})
	}
	return models, nil
}

// Factory returns a catalogs.Factory for an OpenAI compatible provider.
// The credential baseUrl wins over fallbackURL; a client without any base
// URL cannot be built.
func Factory(provider catalogs.ProviderID, fallbackURL string, opts ...transport.Option) catalogs.Factory {
	return func(creds catalogs.Credentials) (catalogs.Client, error) {
		baseURL := creds.String(constants.FieldBaseURL)
		if baseURL == "" {
			baseURL = fallbackURL
		}
		if baseURL == "" {
			return nil, errors.NewValidationError(constants.FieldBaseURL, "", "is required")
		}
		return NewClient(provider, baseURL, creds.String(constants.FieldAPIKey), opts...), nil
	}
}
