// Package cloudflare lists the models of Cloudflare Workers AI.
package cloudflare

import (
	"context"
	"net/url"

	"github.com/agentstation/providerhub/internal/transport"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
)

// DefaultBaseURL is the Cloudflare v4 API root.
const DefaultBaseURL = "https://api.cloudflare.com/client/v4/"

// SearchResponse is the models search response envelope.
type SearchResponse struct {
	Success bool          `json:"success"`
	Result  []Model       `json:"result"`
	Errors  []ErrorDetail `json:"errors"`
}

// Model is a Workers AI model.
type Model struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Task        struct {
		Name string `json:"name"`
	} `json:"task"`
}

// ErrorDetail is an entry of the envelope's errors list.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client talks to the Workers AI API of one account.
type Client struct {
	transport *transport.Client
	baseURL   string
	accountID string
}

// NewClient creates a client for accountID.
func NewClient(baseURL, apiKey, accountID string, opts ...transport.Option) *Client {
	return &Client{
		transport: transport.New(catalogs.ProviderIDCloudflareWorkersAI.String(), apiKey, &transport.BearerAuth{}, opts...),
		baseURL:   baseURL,
		accountID: accountID,
	}
}

// AccountID returns the account the client is bound to.
func (c *Client) AccountID() string {
	return c.accountID
}

// ListModels implements catalogs.ModelLister. Models are identified by
// their name, e.g. @cf/meta/llama-3-8b-instruct, which is what inference
// calls expect.
func (c *Client) ListModels(ctx context.Context) ([]catalogs.RemoteModel, error) {
	endpoint := transport.JoinURL(c.baseURL, "accounts/"+url.PathEscape(c.accountID)+"/ai/models/search")

	var result SearchResponse
	if err := c.transport.GetJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		msg := "request was not successful"
		if len(result.Errors) > 0 {
			msg = result.Errors[0].Message
		}
		return nil, errors.NewAPIError(catalogs.ProviderIDCloudflareWorkersAI.String(), 0, msg)
	}

	models := make([]catalogs.RemoteModel, 0, len(result.Result))
	for _, m := range result.Result {
		id := m.Name
		if id == "" {
			id = m.ID
		}
		models = append(models, catalogs.RemoteModel{ID: id, OwnedBy: "cloudflare"})
	}
	return models, nil
}

// Factory builds clients from the apiKey and accountId credentials.
func Factory(opts ...transport.Option) catalogs.Factory {
	return func(creds catalogs.Credentials) (catalogs.Client, error) {
		accountID := creds.String(constants.FieldAccountID)
		if accountID == "" {
			return nil, errors.NewValidationError(constants.FieldAccountID, "", "is required")
		}
		baseURL := creds.String(constants.FieldBaseURL)
		if baseURL == "" {
			baseURL = DefaultBaseURL
		}
		return NewClient(baseURL, creds.String(constants.FieldAPIKey), accountID, opts...), nil
	}
}
