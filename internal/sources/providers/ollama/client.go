// Package ollama lists the models pulled into a local Ollama server.
package ollama

import (
	"context"

	"github.com/agentstation/providerhub/internal/transport"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
)

// DefaultBaseURL is where a local Ollama server listens.
const DefaultBaseURL = "http://localhost:11434/api/"

// TagsResponse is the GET /api/tags response.
type TagsResponse struct {
	Models []Tag `json:"models"`
}

// Tag is a locally available model.
type Tag struct {
	Name       string `json:"name"`
	Model      string `json:"model"`
	ModifiedAt string `json:"modified_at"`
	Size       int64  `json:"size"`
	Digest     string `json:"digest"`
}

// Client talks to the Ollama native API.
type Client struct {
	transport *transport.Client
	baseURL   string
}

// NewClient creates a client rooted at baseURL, e.g. http://localhost:11434/api/.
func NewClient(baseURL string, opts ...transport.Option) *Client {
	return &Client{
		transport: transport.New(catalogs.ProviderIDOllama.String(), "", nil, opts...),
		baseURL:   baseURL,
	}
}

// ListModels implements catalogs.ModelLister.
func (c *Client) ListModels(ctx context.Context) ([]catalogs.RemoteModel, error) {
	var result TagsResponse
	if err := c.transport.GetJSON(ctx, transport.JoinURL(c.baseURL, "tags"), &result); err != nil {
		return nil, err
	}

	models := make([]catalogs.RemoteModel, 0, len(result.Models))
	for _, m := range result.Models {
		id := m.Name
		if id == "" {
			id = m.Model
		}
		if id == "" {
			continue
		}
		models = append(models, catalogs.RemoteModel{ID: id, OwnedBy: "library"})
	}
	return models, nil
}

// Factory builds clients from the baseUrl credential.
func Factory(opts ...transport.Option) catalogs.Factory {
	return func(creds catalogs.Credentials) (catalogs.Client, error) {
		baseURL := creds.String(constants.FieldBaseURL)
		if baseURL == "" {
			return nil, errors.NewValidationError(constants.FieldBaseURL, "", "is required")
		}
		return NewClient(baseURL, opts...), nil
	}
}
