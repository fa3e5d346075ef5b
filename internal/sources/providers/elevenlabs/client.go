// Package elevenlabs is a text to speech client for ElevenLabs voices,
// reached through an OpenAI style speech proxy. It cannot list models.
package elevenlabs

import (
	"context"
	"io"
	"strings"

	"github.com/agentstation/providerhub/internal/transport"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
)

// DefaultBaseURL is the speech proxy used when no baseUrl is configured.
const DefaultBaseURL = "https://unspeech.hyp3r.link/v1/"

const modelPrefix = "elevenlabs/"

// SpeechRequest is the body of POST /audio/speech.
type SpeechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format,omitempty"`
	Speed          float64 `json:"speed,omitempty"`
}

// Client synthesizes speech.
type Client struct {
	transport *transport.Client
	baseURL   string
}

// NewClient creates a speech client.
func NewClient(baseURL, apiKey string, opts ...transport.Option) *Client {
	return &Client{
		transport: transport.New(catalogs.ProviderIDElevenLabs.String(), apiKey, &transport.BearerAuth{}, opts...),
		baseURL:   baseURL,
	}
}

// Speech returns the encoded audio for req.
func (c *Client) Speech(ctx context.Context, req SpeechRequest) ([]byte, error) {
	// the proxy routes on a vendor prefix
	if req.Model != "" && !strings.HasPrefix(req.Model, modelPrefix) {
		req.Model = modelPrefix + req.Model
	}

	endpoint := transport.JoinURL(c.baseURL, "audio/speech")
	resp, err := c.transport.Post(ctx, endpoint, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapNetwork(c.transport.Provider(), endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewAPIError(c.transport.Provider(), resp.StatusCode, transport.ErrorMessage(resp.StatusCode, body))
	}
	return body, nil
}

// Factory builds speech clients from the apiKey and baseUrl credentials.
func Factory(opts ...transport.Option) catalogs.Factory {
	return func(creds catalogs.Credentials) (catalogs.Client, error) {
		baseURL := creds.String(constants.FieldBaseURL)
		if baseURL == "" {
			baseURL = DefaultBaseURL
		}
		return NewClient(baseURL, creds.String(constants.FieldAPIKey), opts...), nil
	}
}
