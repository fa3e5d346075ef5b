package registry_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/providerhub/pkg/catalogs"
	pkgerrors "github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/logging"
	"github.com/agentstation/providerhub/pkg/registry"
	"github.com/agentstation/providerhub/pkg/store"
)

type listerClient struct {
	models []catalogs.RemoteModel
	err    error
}

func (c listerClient) ListModels(context.Context) ([]catalogs.RemoteModel, error) {
	return c.models, c.err
}

type speechClient struct{}

var vllmModels = []catalogs.ModelInfo{
	{ID: "llama-2-7b", Name: "Llama 2 (7B)", Provider: "vllm", ContextLength: 4096},
	{ID: "llama-2-13b", Name: "Llama 2 (13B)", Provider: "vllm", ContextLength: 4096},
	{ID: "llama-2-70b", Name: "Llama 2 (70B)", Provider: "vllm", ContextLength: 4096},
	{ID: "mistral-7b", Name: "Mistral (7B)", Provider: "vllm", ContextLength: 8192},
	{ID: "mixtral-8x7b", Name: "Mixtral (8x7B)", Provider: "vllm", ContextLength: 32768},
	{ID: "custom", Name: "Custom Model", Provider: "vllm", Description: "Specify a custom model name"},
}

// fixture holds a registry over a small catalog whose behavior tests steer
// through the exported fields.
type fixture struct {
	reg   *registry.Registry
	store *store.Memory

	mu          sync.Mutex
	remote      []catalogs.RemoteModel
	remoteErr   error
	factoryErr  error
	manual      []catalogs.ModelInfo
	manualErr   error
	manualHook  func(ctx context.Context) error
	factoryArgs []catalogs.Credentials
}

func (f *fixture) descriptors() []catalogs.Descriptor {
	dynamic := func(creds catalogs.Credentials) (catalogs.Client, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.factoryArgs = append(f.factoryArgs, creds)
		if f.factoryErr != nil {
			return nil, f.factoryErr
		}
		return listerClient{models: f.remote, err: f.remoteErr}, nil
	}
	manual := func(ctx context.Context, _ catalogs.Credentials) ([]catalogs.ModelInfo, error) {
		if f.manualHook != nil {
			if err := f.manualHook(ctx); err != nil {
				return nil, err
			}
		}
		return f.manual, f.manualErr
	}

	return []catalogs.Descriptor{
		{
			ID:             "openrouter-ai",
			Name:           catalogs.Text("providers.openrouter.name", "OpenRouter"),
			Description:    catalogs.Text("providers.openrouter.description", "openrouter.ai"),
			BaseURLDefault: "https://openrouter.ai/api/v1/",
			RequiredFields: []string{"apiKey", "baseUrl"},
			Models:         catalogs.Manual{Fetch: manual},
		},
		{
			ID:             "openai",
			Name:           catalogs.Text("providers.openai.name", "OpenAI"),
			Description:    catalogs.Text("providers.openai.description", "openai.com"),
			BaseURLDefault: "https://api.openai.com/v1/",
			RequiredFields: []string{"apiKey"},
			Models:         catalogs.Dynamic{},
			Factory:        dynamic,
		},
		{
			ID:             "ollama-ai",
			Name:           catalogs.Text("", "Ollama"),
			BaseURLDefault: "http://localhost:11434/api/",
			RequiredFields: []string{"baseUrl"},
			Models:         catalogs.Dynamic{},
			Factory:        dynamic,
		},
		{
			ID:             "vllm",
			Name:           catalogs.Text("", "vLLM"),
			RequiredFields: []string{"baseUrl"},
			Models:         catalogs.Hardcoded{Models: vllmModels},
		},
		{
			ID:             "elevenlabs",
			Name:           catalogs.Text("", "ElevenLabs"),
			RequiredFields: []string{"apiKey"},
			Models:         catalogs.Dynamic{},
			Factory:        func(catalogs.Credentials) (catalogs.Client, error) { return speechClient{}, nil },
		},
		{
			ID:             "broken-manual",
			Name:           catalogs.Text("", "Broken manual"),
			RequiredFields: []string{"apiKey"},
			Models:         catalogs.Manual{},
		},
		{
			ID:             "broken-hardcoded",
			Name:           catalogs.Text("", "Broken hardcoded"),
			RequiredFields: []string{"apiKey"},
			Models:         catalogs.Hardcoded{},
		},
		{
			ID:     "no-requirements",
			Name:   catalogs.Text("", "No requirements"),
			Models: catalogs.Dynamic{},
		},
	}
}

func newFixture(t *testing.T, opts ...registry.Option) *fixture {
	t.Helper()
	f := &fixture{store: store.NewMemory()}
	descs, err := catalogs.NewDescriptors(f.descriptors()...)
	require.NoError(t, err)

	opts = append([]registry.Option{
		registry.WithStore(f.store),
		registry.WithLogger(logging.NewNopLogger()),
	}, opts...)
	f.reg, err = registry.New(descs, opts...)
	require.NoError(t, err)
	return f
}

func TestNewSeedsEveryProvider(t *testing.T) {
	f := newFixture(t)

	rec := f.reg.Record()
	assert.Len(t, rec, 8)
	assert.Equal(t, catalogs.Credentials{"baseUrl": "https://openrouter.ai/api/v1/"}, rec["openrouter-ai"])
	assert.Equal(t, catalogs.Credentials{"baseUrl": ""}, rec["vllm"])

	// seeded defaults alone configure providers that only need a base URL
	assert.Equal(t, []catalogs.ProviderID{"ollama-ai"}, f.reg.AvailableProviders())

	_, persisted, err := f.store.Get("settings/credentials/providers")
	require.NoError(t, err)
	assert.True(t, persisted)
}

func TestInitializeProviderIsIdempotent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredential("openai", "apiKey", "sk-x"))

	before := f.reg.Record()
	require.NoError(t, f.reg.InitializeProvider("openai"))
	require.NoError(t, f.reg.InitializeProvider("openai"))
	assert.Equal(t, before, f.reg.Record())

	require.NoError(t, f.reg.InitializeProvider("unknown"))
	_, ok := f.reg.Credentials("unknown")
	assert.False(t, ok)
}

func TestValidateProvider(t *testing.T) {
	f := newFixture(t)

	t.Run("empty credentials are not valid", func(t *testing.T) {
		require.NoError(t, f.reg.SetCredentials("openai", catalogs.Credentials{}))
		assert.False(t, f.reg.ValidateProvider("openai"))
		assert.False(t, f.reg.IsConfigured("openai"))
	})

	t.Run("api key makes it valid", func(t *testing.T) {
		require.NoError(t, f.reg.SetCredentials("openai", catalogs.Credentials{"apiKey": "sk-x"}))
		assert.True(t, f.reg.ValidateProvider("openai"))
		assert.True(t, f.reg.IsConfigured("openai"))
	})

	t.Run("every required field must be truthy", func(t *testing.T) {
		require.NoError(t, f.reg.SetCredential("openrouter-ai", "apiKey", "or-key"))
		assert.True(t, f.reg.ValidateProvider("openrouter-ai"))

		require.NoError(t, f.reg.SetCredential("openrouter-ai", "baseUrl", ""))
		assert.False(t, f.reg.ValidateProvider("openrouter-ai"))
	})

	t.Run("unknown and requirement free providers are never valid", func(t *testing.T) {
		assert.False(t, f.reg.ValidateProvider("does-not-exist"))
		require.NoError(t, f.reg.SetCredential("no-requirements", "apiKey", "x"))
		assert.False(t, f.reg.ValidateProvider("no-requirements"))
	})
}

func TestConfiguredTracksEveryMutation(t *testing.T) {
	f := newFixture(t)
	ids := f.reg.Descriptors().IDs()

	check := func() {
		t.Helper()
		for _, id := range ids {
			assert.Equal(t, f.reg.ValidateProvider(id), f.reg.IsConfigured(id), "provider %s", id)
		}
	}

	require.NoError(t, f.reg.SetCredential("openai", "apiKey", "sk-x"))
	check()
	require.NoError(t, f.reg.UpdateCredentials("openai", catalogs.Credentials{"apiKey": nil}))
	check()
	require.NoError(t, f.reg.SetCredentials("ollama-ai", catalogs.Credentials{"baseUrl": ""}))
	check()
	require.NoError(t, f.reg.SetCredential("vllm", "baseUrl", "http://gpu:8000/v1"))
	check()
	require.NoError(t, f.reg.ResetCredentials("vllm"))
	check()

	assert.False(t, f.reg.IsConfigured("openai"))
	assert.False(t, f.reg.IsConfigured("ollama-ai"))
	assert.False(t, f.reg.IsConfigured("vllm"))
}

func TestCredentialMutationsRejectUnknownProviders(t *testing.T) {
	f := newFixture(t)
	assert.True(t, pkgerrors.IsNotFound(f.reg.SetCredentials("nope", catalogs.Credentials{})))
	assert.True(t, pkgerrors.IsNotFound(f.reg.SetCredential("nope", "apiKey", "x")))
	assert.True(t, pkgerrors.IsNotFound(f.reg.ResetCredentials("nope")))
	assert.True(t, pkgerrors.IsValidationError(f.reg.SetCredential("openai", "", "x")))
}

func TestCredentialsArePersisted(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredentials("openai", catalogs.Credentials{"apiKey": "sk-x", "baseUrl": "https://proxy/v1/"}))

	descs, err := catalogs.NewDescriptors(f.descriptors()...)
	require.NoError(t, err)
	reopened, err := registry.New(descs, registry.WithStore(f.store), registry.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	creds, ok := reopened.Credentials("openai")
	require.True(t, ok)
	assert.Equal(t, "sk-x", creds.String("apiKey"))
	assert.Equal(t, "https://proxy/v1/", creds.String("baseUrl"))
	assert.True(t, reopened.IsConfigured("openai"))
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Set("settings/credentials/providers", []byte("openai:\n  apiKey: sk-from-disk\n")))

	require.NoError(t, f.reg.Reload())
	assert.True(t, f.reg.IsConfigured("openai"))

	// entries missing from the stored document are seeded again
	creds, ok := f.reg.Credentials("ollama-ai")
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434/api/", creds.String("baseUrl"))
}

func TestNewFailsOnCorruptRecord(t *testing.T) {
	s := store.NewMemory()
	require.NoError(t, s.Set("settings/credentials/providers", []byte("openai: [unterminated")))

	descs := catalogs.MustDescriptors(catalogs.Descriptor{ID: "openai", Models: catalogs.Dynamic{}})
	_, err := registry.New(descs, registry.WithStore(s), registry.WithLogger(logging.NewNopLogger()))
	require.Error(t, err)

	var parseErr *pkgerrors.ParseError
	assert.ErrorAs(t, err, &parseErr)

	_, err = registry.New(nil)
	assert.True(t, pkgerrors.IsConfigError(err))
}

type failingStore struct {
	store.Store
	fail bool
}

func (s *failingStore) Set(key string, value []byte) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.Store.Set(key, value)
}

func TestFailedPersistenceLeavesStateUntouched(t *testing.T) {
	fs := &failingStore{Store: store.NewMemory()}
	f := &fixture{}
	descs := catalogs.MustDescriptors(f.descriptors()...)
	reg, err := registry.New(descs, registry.WithStore(fs), registry.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	fs.fail = true
	err = reg.SetCredential("openai", "apiKey", "sk-x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	creds, _ := reg.Credentials("openai")
	assert.False(t, creds.Has("apiKey"))
	assert.False(t, reg.IsConfigured("openai"))
}

func TestConfiguredChangedHook(t *testing.T) {
	f := newFixture(t)

	type event struct {
		id         catalogs.ProviderID
		configured bool
	}
	var events []event
	f.reg.OnConfiguredChanged(func(id catalogs.ProviderID, configured bool) {
		events = append(events, event{id, configured})
	})

	require.NoError(t, f.reg.SetCredential("openai", "apiKey", "sk-x"))
	require.NoError(t, f.reg.SetCredential("openai", "apiKey", "sk-y"))
	require.NoError(t, f.reg.SetCredential("openai", "apiKey", ""))

	assert.Equal(t, []event{{"openai", true}, {"openai", false}}, events)
}

func TestCredentialsReturnsCopies(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.reg.SetCredential("openai", "apiKey", "sk-x"))

	creds, _ := f.reg.Credentials("openai")
	creds["apiKey"] = "tampered"

	again, _ := f.reg.Credentials("openai")
	assert.Equal(t, "sk-x", again["apiKey"])
}

func TestConcurrentAccess(t *testing.T) {
	f := newFixture(t)
	f.remote = []catalogs.RemoteModel{{ID: "gpt-4o"}}
	require.NoError(t, f.reg.SetCredential("openai", "apiKey", "sk-x"))

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			f.reg.FetchModelsForProvider(ctx, "openai")
		}()
		go func() {
			defer wg.Done()
			_ = f.reg.SetCredential("vllm", "baseUrl", time.Now().String())
		}()
		go func() {
			defer wg.Done()
			_ = f.reg.State()
			_ = f.reg.AllProvidersMetadata()
		}()
	}
	wg.Wait()

	assert.False(t, f.reg.IsLoading("openai"))
	assert.Len(t, f.reg.ModelsForProvider("openai"), 1)
}
