// Package google lists Gemini models through the Google GenAI SDK.
package google

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
)

// pageSize is the number of models requested per page.
const pageSize = 100

// Client lists Gemini API models.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. An empty baseURL uses the SDK default.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	return &Client{apiKey: apiKey, baseURL: baseURL, httpClient: httpClient}
}

// ListModels implements catalogs.ModelLister, following page tokens until
// the listing is exhausted.
func (c *Client) ListModels(ctx context.Context) ([]catalogs.RemoteModel, error) {
	client, err := c.sdk(ctx)
	if err != nil {
		return nil, err
	}

	var models []catalogs.RemoteModel
	pageToken := ""
	for {
		config := &genai.ListModelsConfig{PageSize: pageSize}
		if pageToken != "" {
			config.PageToken = pageToken
		}

		page, err := client.Models.List(ctx, config)
		if err != nil {
			return nil, wrapSDKError(err)
		}
		for _, m := range page.Items {
			if m == nil || m.Name == "" {
				continue
			}
			models = append(models, catalogs.RemoteModel{ID: strings.TrimPrefix(m.Name, "models/"), OwnedBy: "google"})
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}
	return models, nil
}

func (c *Client) sdk(ctx context.Context) (*genai.Client, error) {
	config := &genai.ClientConfig{
		Backend:    genai.BackendGeminiAPI,
		APIKey:     c.apiKey,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, errors.NewConfigError(catalogs.ProviderIDGoogleAI.String(), "failed to create genai client", err)
	}
	return client, nil
}

// wrapSDKError maps SDK API errors onto APIError so status based checks work.
func wrapSDKError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &errors.APIError{
			Provider:   catalogs.ProviderIDGoogleAI.String(),
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	return errors.WrapNetwork(catalogs.ProviderIDGoogleAI.String(), "", err)
}

// Factory builds clients from the apiKey and baseUrl credentials.
func Factory(httpClient *http.Client) catalogs.Factory {
	return func(creds catalogs.Credentials) (catalogs.Client, error) {
		apiKey := creds.String(constants.FieldAPIKey)
		if apiKey == "" {
			return nil, errors.NewAuthenticationError(catalogs.ProviderIDGoogleAI.String(), "api_key", "apiKey is required", nil)
		}
		return NewClient(apiKey, creds.String(constants.FieldBaseURL), httpClient), nil
	}
}
