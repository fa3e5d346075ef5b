package providerhub

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
)

func TestNewWithBuiltinCatalog(t *testing.T) {
	hub, err := New()
	require.NoError(t, err)
	defer hub.Close()

	reg := hub.Registry()
	assert.Equal(t, 15, reg.Descriptors().Len())

	// providers with a default base URL and no other requirement start configured
	assert.Contains(t, reg.AvailableProviders(), catalogs.ProviderIDOllama)
	assert.NotContains(t, reg.AvailableProviders(), catalogs.ProviderIDOpenAI)
}

func TestNewPersistsToDataDir(t *testing.T) {
	dir := t.TempDir()

	hub, err := New(WithDataDir(dir))
	require.NoError(t, err)
	require.NoError(t, hub.Registry().SetCredential(catalogs.ProviderIDOpenAI, "apiKey", "sk-test"))
	require.NoError(t, hub.Close())

	path := filepath.Join(dir, filepath.FromSlash(constants.CredentialsKey)+constants.StoreFileExt)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.SecureFilePermissions), info.Mode().Perm())

	reopened, err := New(WithDataDir(dir))
	require.NoError(t, err)
	defer reopened.Close()
	assert.True(t, reopened.Registry().IsConfigured(catalogs.ProviderIDOpenAI))
}

func TestNewSeedsEnvAPIKeys(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "mistral-env")

	hub, err := New(WithEnvAPIKeys(true))
	require.NoError(t, err)
	defer hub.Close()

	creds, ok := hub.Registry().Credentials(catalogs.ProviderIDMistral)
	require.True(t, ok)
	assert.Equal(t, "mistral-env", creds.String("apiKey"))
	assert.True(t, hub.Registry().IsConfigured(catalogs.ProviderIDMistral))
}

func TestNewLocalizesMetadata(t *testing.T) {
	hub, err := New(WithLocale("zh-Hans"))
	require.NoError(t, err)
	defer hub.Close()

	meta, err := hub.Registry().GetProviderMetadata(catalogs.ProviderIDMoonshot)
	require.NoError(t, err)
	assert.Equal(t, "月之暗面 Moonshot AI", meta.LocalizedName)
	assert.Equal(t, "Moonshot AI", meta.Name)
}

func TestOptionValidation(t *testing.T) {
	_, err := New(WithRateLimit(-1, 0))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = New(WithAutoRefresh(-time.Second))
	require.Error(t, err)
}

func TestAutoRefresh(t *testing.T) {
	var calls atomic.Int32
	custom := catalogs.Descriptor{
		ID:             "local",
		Name:           catalogs.Text("", "Local"),
		BaseURLDefault: "http://localhost",
		RequiredFields: []string{"baseUrl"},
		Models: catalogs.Manual{Fetch: func(_ context.Context, _ catalogs.Credentials) ([]catalogs.ModelInfo, error) {
			calls.Add(1)
			return []catalogs.ModelInfo{{ID: "m1", Name: "m1", Provider: "local"}}, nil
		}},
	}

	hub, err := New(WithDescriptors(custom), WithAutoRefresh(10*time.Millisecond))
	require.NoError(t, err)
	assert.True(t, hub.AutoRefreshing())

	require.Eventually(t, func() bool { return calls.Load() > 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hub.Close())
	assert.False(t, hub.AutoRefreshing())
	assert.Len(t, hub.Registry().ModelsForProvider("local"), 1)

	err = hub.AutoRefreshOn(0)
	assert.True(t, errors.IsValidationError(err))
}
