package registry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/providerhub/pkg/catalogs"
	pkgerrors "github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/registry"
)

func TestFetchUnknownProvider(t *testing.T) {
	f := newFixture(t)

	models, err := f.reg.TryFetchModels(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.NotNil(t, models)
	assert.Empty(t, models)

	assert.Empty(t, f.reg.FetchModelsForProvider(context.Background(), "does-not-exist"))
	state := f.reg.State()
	assert.NotContains(t, state.Loading, catalogs.ProviderID("does-not-exist"))
	assert.NotContains(t, state.LastError, catalogs.ProviderID("does-not-exist"))
}

func TestFetchHardcoded(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredential("vllm", "baseUrl", "http://gpu:8000/v1"))

	first := f.reg.FetchModelsForProvider(context.Background(), "vllm")
	second := f.reg.FetchModelsForProvider(context.Background(), "vllm")

	assert.Equal(t, vllmModels, first)
	assert.Equal(t, vllmModels, second)
	require.Len(t, first, 6)
	assert.Equal(t, "custom", first[5].ID)

	_, failed := f.reg.LastError("vllm")
	assert.False(t, failed)
	assert.Equal(t, vllmModels, f.reg.ModelsForProvider("vllm"))

	// callers cannot corrupt the catalog through the returned slice
	first[0].Name = "changed"
	assert.Equal(t, "Llama 2 (7B)", f.reg.FetchModelsForProvider(context.Background(), "vllm")[0].Name)

	fetchedAt, ok := f.reg.FetchedAt("vllm")
	assert.True(t, ok)
	assert.False(t, fetchedAt.IsZero())
}

func TestFetchDynamic(t *testing.T) {
	f := newFixture(t)
	f.remote = []catalogs.RemoteModel{
		{ID: "gpt-4o", OwnedBy: "openai", Created: 1715367049},
		{ID: "gpt-4o-mini", OwnedBy: "openai"},
	}
	require.NoError(t, f.reg.SetCredential("openai", "apiKey", "sk-x"))

	models, err := f.reg.TryFetchModels(context.Background(), "openai")
	require.NoError(t, err)
	assert.Equal(t, []catalogs.ModelInfo{
		{ID: "gpt-4o", Name: "gpt-4o", Provider: "openai"},
		{ID: "gpt-4o-mini", Name: "gpt-4o-mini", Provider: "openai"},
	}, models)

	require.Len(t, f.factoryArgs, 1)
	assert.Equal(t, "sk-x", f.factoryArgs[0].String("apiKey"))
}

func TestFetchDynamicWithoutListing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredential("elevenlabs", "apiKey", "el-key"))

	models, err := f.reg.TryFetchModels(context.Background(), "elevenlabs")
	assert.Empty(t, models)
	assert.True(t, pkgerrors.IsUnsupported(err))

	msg, ok := f.reg.LastError("elevenlabs")
	require.True(t, ok)
	assert.Equal(t, "provider elevenlabs does not support model listing", msg)
}

func TestFetchManualFailureKeepsPreviousModels(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredential("openrouter-ai", "apiKey", "or-key"))

	previous := []catalogs.ModelInfo{{ID: "anthropic/claude-3-haiku", Name: "Claude 3 Haiku", Provider: "openrouter-ai", ContextLength: 200000}}
	f.manual = previous
	require.Equal(t, previous, f.reg.FetchModelsForProvider(context.Background(), "openrouter-ai"))

	f.manual = nil
	f.manualErr = pkgerrors.NewAPIError("openrouter-ai", 401, "Failed to fetch OpenRouter models: Unauthorized")

	got := f.reg.FetchModelsForProvider(context.Background(), "openrouter-ai")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Equal(t, previous, f.reg.ModelsForProvider("openrouter-ai"))
	msg, ok := f.reg.LastError("openrouter-ai")
	require.True(t, ok)
	assert.Contains(t, msg, "Failed to fetch OpenRouter models: Unauthorized")
	assert.False(t, f.reg.IsLoading("openrouter-ai"))
}

func TestFetchClearsLastErrorOnNextAttempt(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredential("openrouter-ai", "apiKey", "or-key"))

	f.manualErr = errors.New("boom")
	f.reg.FetchModelsForProvider(context.Background(), "openrouter-ai")
	_, failed := f.reg.LastError("openrouter-ai")
	require.True(t, failed)

	f.manualErr = nil
	f.manual = []catalogs.ModelInfo{{ID: "m", Name: "m", Provider: "openrouter-ai"}}
	f.reg.FetchModelsForProvider(context.Background(), "openrouter-ai")
	_, failed = f.reg.LastError("openrouter-ai")
	assert.False(t, failed)
	assert.Nil(t, f.reg.State().LastError["openrouter-ai"])
}

func TestFetchAlwaysClearsLoading(t *testing.T) {
	tests := []struct {
		name    string
		id      catalogs.ProviderID
		arrange func(f *fixture)
		check   func(t *testing.T, err error)
	}{
		{
			name:    "dynamic factory fails",
			id:      "openai",
			arrange: func(f *fixture) { f.factoryErr = errors.New("bad key format") },
			check: func(t *testing.T, err error) {
				assert.True(t, pkgerrors.IsConstruction(err))
			},
		},
		{
			name:    "dynamic listing fails",
			id:      "openai",
			arrange: func(f *fixture) { f.remoteErr = pkgerrors.NewAPIError("openai", 503, "unavailable") },
			check: func(t *testing.T, err error) {
				assert.True(t, pkgerrors.IsProviderUnavailable(err))
			},
		},
		{
			name:    "manual fetcher fails",
			id:      "openrouter-ai",
			arrange: func(f *fixture) { f.manualErr = pkgerrors.NewNetworkError("openrouter-ai", "", errors.New("refused")) },
			check: func(t *testing.T, err error) {
				assert.True(t, pkgerrors.IsNetwork(err))
			},
		},
		{
			name: "manual fetcher missing",
			id:   "broken-manual",
			check: func(t *testing.T, err error) {
				assert.True(t, pkgerrors.IsConfigError(err))
				assert.Contains(t, err.Error(), "has no manual fetcher")
			},
		},
		{
			name: "hardcoded list missing",
			id:   "broken-hardcoded",
			check: func(t *testing.T, err error) {
				assert.True(t, pkgerrors.IsConfigError(err))
				assert.Contains(t, err.Error(), "has no hardcoded models defined")
			},
		},
		{
			name: "dynamic factory missing",
			id:   "no-requirements",
			check: func(t *testing.T, err error) {
				assert.True(t, pkgerrors.IsConfigError(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.reg.SetCredential(tt.id, "apiKey", "key"))
			if tt.arrange != nil {
				tt.arrange(f)
			}

			models, err := f.reg.TryFetchModels(context.Background(), tt.id)
			require.Error(t, err)
			tt.check(t, err)
			assert.Empty(t, models)
			assert.False(t, f.reg.IsLoading(tt.id))

			msg, ok := f.reg.LastError(tt.id)
			assert.True(t, ok)
			assert.Equal(t, err.Error(), msg)
		})
	}
}

func TestFetchMarksLoadingWhileInFlight(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredential("openrouter-ai", "apiKey", "or-key"))

	var during bool
	f.manualHook = func(context.Context) error {
		during = f.reg.IsLoading("openrouter-ai")
		return nil
	}
	f.reg.FetchModelsForProvider(context.Background(), "openrouter-ai")

	assert.True(t, during)
	assert.False(t, f.reg.IsLoading("openrouter-ai"))
}

type emptyError struct{}

func (emptyError) Error() string { return "" }

func TestFetchRecordsUnknownErrorForEmptyMessages(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredential("openrouter-ai", "apiKey", "or-key"))
	f.manualErr = emptyError{}

	f.reg.FetchModelsForProvider(context.Background(), "openrouter-ai")
	msg, ok := f.reg.LastError("openrouter-ai")
	require.True(t, ok)
	assert.Equal(t, "Unknown error", msg)
}

func TestFetchTimeout(t *testing.T) {
	f := newFixture(t, registry.WithFetchTimeout(20*time.Millisecond))
	require.NoError(t, f.reg.SetCredential("openrouter-ai", "apiKey", "or-key"))

	f.manualHook = func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	_, err := f.reg.TryFetchModels(context.Background(), "openrouter-ai")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.reg.IsLoading("openrouter-ai"))
}

func TestFetchHooks(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredential("vllm", "baseUrl", "http://gpu:8000/v1"))
	require.NoError(t, f.reg.SetCredential("openrouter-ai", "apiKey", "or-key"))
	f.manualErr = errors.New("boom")

	var updated []catalogs.ProviderID
	var failed []catalogs.ProviderID
	var loadingDuringHook bool
	f.reg.OnModelsUpdated(func(id catalogs.ProviderID, models []catalogs.ModelInfo) {
		updated = append(updated, id)
		loadingDuringHook = f.reg.IsLoading(id)
		assert.Len(t, models, 6)
	})
	f.reg.OnFetchFailed(func(id catalogs.ProviderID, err error) {
		failed = append(failed, id)
		assert.EqualError(t, err, "boom")
	})

	f.reg.FetchModelsForProvider(context.Background(), "vllm")
	f.reg.FetchModelsForProvider(context.Background(), "openrouter-ai")

	assert.Equal(t, []catalogs.ProviderID{"vllm"}, updated)
	assert.Equal(t, []catalogs.ProviderID{"openrouter-ai"}, failed)
	assert.False(t, loadingDuringHook)
}

func TestLoadModelsForConfiguredProviders(t *testing.T) {
	f := newFixture(t)
	f.remote = []catalogs.RemoteModel{{ID: "gpt-4o"}}
	f.manualErr = errors.New("openrouter down")

	require.NoError(t, f.reg.SetCredential("openai", "apiKey", "sk-x"))
	require.NoError(t, f.reg.SetCredential("openrouter-ai", "apiKey", "or-key"))
	require.NoError(t, f.reg.SetCredential("vllm", "baseUrl", "http://gpu:8000/v1"))
	require.NoError(t, f.reg.SetCredentials("ollama-ai", catalogs.Credentials{"baseUrl": ""}))

	require.NoError(t, f.reg.LoadModelsForConfiguredProviders(context.Background()))

	assert.Equal(t, []catalogs.ModelInfo{{ID: "gpt-4o", Name: "gpt-4o", Provider: "openai"}}, f.reg.ModelsForProvider("openai"))
	assert.Len(t, f.reg.ModelsForProvider("vllm"), 6)

	msg, ok := f.reg.LastError("openrouter-ai")
	require.True(t, ok)
	assert.Equal(t, "openrouter down", msg)

	// unconfigured providers are not attempted
	state := f.reg.State()
	assert.NotContains(t, state.Loading, catalogs.ProviderID("ollama-ai"))

	all := f.reg.AllAvailableModels()
	require.Len(t, all, 7)
	assert.Equal(t, catalogs.ProviderID("openai"), all[0].Provider)
	assert.Equal(t, catalogs.ProviderID("vllm"), all[1].Provider)
}

func TestLoadModelsStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredential("vllm", "baseUrl", "http://gpu:8000/v1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.reg.LoadModelsForConfiguredProviders(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.reg.ModelsForProvider("vllm"))
}

func TestModelsAreNotClearedOnCredentialChange(t *testing.T) {
	f := newFixture(t)
	f.remote = []catalogs.RemoteModel{{ID: "gpt-4o"}}
	require.NoError(t, f.reg.SetCredential("openai", "apiKey", "sk-x"))
	f.reg.FetchModelsForProvider(context.Background(), "openai")

	require.NoError(t, f.reg.SetCredential("openai", "apiKey", "sk-other"))
	assert.Len(t, f.reg.ModelsForProvider("openai"), 1)

	// unconfigured providers drop out of the aggregate view
	require.NoError(t, f.reg.SetCredential("openai", "apiKey", ""))
	assert.Empty(t, f.reg.AllAvailableModels())
	assert.Len(t, f.reg.ModelsForProvider("openai"), 1)

	// an explicit reset forgets them
	require.NoError(t, f.reg.ResetCredentials("openai"))
	assert.Empty(t, f.reg.ModelsForProvider("openai"))
}

func TestResetFiresModelsUpdatedWhenModelsAreDropped(t *testing.T) {
	f := newFixture(t)
	f.remote = []catalogs.RemoteModel{{ID: "llama3"}}
	require.True(t, f.reg.IsConfigured("ollama-ai"))
	f.reg.FetchModelsForProvider(context.Background(), "ollama-ai")
	require.Len(t, f.reg.AllAvailableModels(), 1)

	var cleared []catalogs.ProviderID
	f.reg.OnModelsUpdated(func(id catalogs.ProviderID, models []catalogs.ModelInfo) {
		cleared = append(cleared, id)
		assert.Empty(t, models)
	})

	require.NoError(t, f.reg.ResetCredentials("ollama-ai"))
	assert.True(t, f.reg.IsConfigured("ollama-ai"))
	assert.Empty(t, f.reg.AllAvailableModels())
	assert.Equal(t, []catalogs.ProviderID{"ollama-ai"}, cleared)

	// nothing left to forget
	require.NoError(t, f.reg.ResetCredentials("ollama-ai"))
	assert.Len(t, cleared, 1)
}

func TestGetProviderInstance(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredential("openai", "apiKey", "sk-x"))

	client, err := f.reg.GetProviderInstance("openai")
	require.NoError(t, err)
	assert.Implements(t, (*catalogs.ModelLister)(nil), client)

	_, err = f.reg.GetProviderInstance("unknown")
	assert.True(t, pkgerrors.IsNotFound(err))

	f.factoryErr = errors.New("accountId is required")
	_, err = f.reg.GetProviderInstance("openai")
	assert.True(t, pkgerrors.IsConstruction(err))
	assert.Contains(t, err.Error(), "accountId is required")

	_, err = f.reg.GetProviderInstance("broken-manual")
	assert.True(t, pkgerrors.IsConfigError(err))
}

func TestSupportsModelListing(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.reg.SupportsModelListing("openai"))
	assert.True(t, f.reg.SupportsModelListing("openrouter-ai"))
	assert.True(t, f.reg.SupportsModelListing("vllm"))
	assert.True(t, f.reg.SupportsModelListing("broken-manual"))
	assert.False(t, f.reg.SupportsModelListing("broken-hardcoded"))
	assert.False(t, f.reg.SupportsModelListing("unknown"))
}
