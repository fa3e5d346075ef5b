package cmdtest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/providerhub"
	"github.com/agentstation/providerhub/internal/appcontext"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/errors"
)

// BadKey makes the "beta" fixture provider fail its fetch.
const BadKey = "bad"

// Descriptors returns two fixture providers: "alpha" serves a hardcoded
// list, "beta" a manual one that fails when its apiKey is BadKey.
func Descriptors() []catalogs.Descriptor {
	return []catalogs.Descriptor{
		{
			ID:             "alpha",
			Name:           catalogs.Text("", "Alpha AI"),
			Description:    catalogs.Text("", "Hardcoded fixture provider"),
			RequiredFields: []string{"apiKey"},
			Models: catalogs.Hardcoded{Models: []catalogs.ModelInfo{
				{ID: "alpha-small", Name: "Alpha Small", Provider: "alpha", ContextLength: 8192},
				{ID: "alpha-large", Name: "Alpha Large", Provider: "alpha", ContextLength: 32768},
			}},
		},
		{
			ID:             "beta",
			Name:           catalogs.Text("", "Beta Cloud"),
			Description:    catalogs.Text("", "Manual fixture provider"),
			BaseURLDefault: "http://beta.invalid/v1",
			RequiredFields: []string{"apiKey"},
			Models: catalogs.Manual{Fetch: func(_ context.Context, creds catalogs.Credentials) ([]catalogs.ModelInfo, error) {
				if creds.String("apiKey") == BadKey {
					return nil, errors.NewAPIError("beta", http.StatusUnauthorized, "invalid api key")
				}
				return []catalogs.ModelInfo{{ID: "beta-1", Name: "Beta One", Provider: "beta"}}, nil
			}},
		},
	}
}

// NewHub creates an in-memory hub over the fixture providers.
func NewHub(t testing.TB) *providerhub.Hub {
	t.Helper()
	hub, err := providerhub.New(providerhub.WithDescriptors(Descriptors()...))
	require.NoError(t, err)
	t.Cleanup(func() { _ = hub.Close() })
	return hub
}

// NewApp returns an application context over a fixture hub.
func NewApp(t testing.TB) (*appcontext.Mock, *providerhub.Hub) {
	t.Helper()
	hub := NewHub(t)
	return &appcontext.Mock{HubValue: hub, Format: "json"}, hub
}
