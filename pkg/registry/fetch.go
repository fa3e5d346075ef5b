package registry

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/logging"
)

// unknownError is recorded when a failure carries no message.
const unknownError = "Unknown error"

// FetchModelsForProvider resolves the models of id and stores them as the
// provider's available models. Failures never surface here: they are
// recorded for LastError and an empty list is returned. Use TryFetchModels
// to receive the error.
func (r *Registry) FetchModelsForProvider(ctx context.Context, id catalogs.ProviderID) []catalogs.ModelInfo {
	models, _ := r.TryFetchModels(ctx, id)
	return models
}

// TryFetchModels is FetchModelsForProvider returning the failure as well.
// Providers without a descriptor or without credentials yield an empty
// list and no error, and leave the state untouched.
//
// On failure the previously available models are kept. The loading flag is
// cleared on every exit.
func (r *Registry) TryFetchModels(ctx context.Context, id catalogs.ProviderID) ([]catalogs.ModelInfo, error) {
	desc, creds, ok := r.beginFetch(id)
	if !ok {
		return []catalogs.ModelInfo{}, nil
	}

	var notify func()
	defer func() {
		if notify != nil {
			notify()
		}
	}()
	defer r.endFetch(id)

	if r.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.fetchTimeout)
		defer cancel()
	}

	ctx = logging.WithLogger(ctx, r.logger)
	ctx = logging.WithProvider(ctx, id.String())
	logger := logging.Ctx(ctx)
	logger.Debug().Str("strategy", desc.SelectionType().String()).Msg("fetching models")

	models, err := r.resolve(ctx, desc, creds)
	if err != nil {
		r.recordFailure(id, err)
		logger.Warn().Err(err).Msg("model fetch failed")
		notify = func() { r.hooks.fetchFailed(id, err) }
		return []catalogs.ModelInfo{}, err
	}

	r.recordSuccess(id, models)
	logger.Info().Int("models", len(models)).Msg("models fetched")
	notify = func() { r.hooks.modelsUpdated(id, models) }
	return catalogs.CloneModels(models), nil
}

// LoadModelsForConfiguredProviders fetches models for every configured
// provider that supports listing, one after another in catalog order.
// Individual failures are recorded and do not stop the loop; only a
// cancelled ctx does.
func (r *Registry) LoadModelsForConfiguredProviders(ctx context.Context) error {
	for _, id := range r.AvailableProviders() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.SupportsModelListing(id) {
			continue
		}
		r.FetchModelsForProvider(ctx, id)
	}
	return nil
}

// SupportsModelListing reports whether id can produce a model list.
func (r *Registry) SupportsModelListing(id catalogs.ProviderID) bool {
	desc, ok := r.descriptors.Get(id)
	return ok && desc.SupportsModelListing()
}

// GetProviderInstance builds a client for id from its current credentials.
func (r *Registry) GetProviderInstance(id catalogs.ProviderID) (catalogs.Client, error) {
	r.mu.RLock()
	creds, ok := r.credentials[id]
	creds = creds.Clone()
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFoundError("credentials for provider", id.String())
	}

	desc, ok := r.descriptors.Get(id)
	if !ok {
		return nil, errors.NewNotFoundError("provider", id.String())
	}
	return construct(desc, creds)
}

// ClearModels forgets the models fetched for id. Models updated hooks see
// an empty list when there was anything to forget.
func (r *Registry) ClearModels(id catalogs.ProviderID) {
	r.mu.Lock()
	_, had := r.availableModels[id]
	delete(r.availableModels, id)
	delete(r.fetchedAt, id)
	r.mu.Unlock()

	if had {
		r.hooks.modelsUpdated(id, nil)
	}
}

func (r *Registry) beginFetch(id catalogs.ProviderID) (*catalogs.Descriptor, catalogs.Credentials, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, ok := r.credentials[id]
	if !ok {
		return nil, nil, false
	}
	desc, ok := r.descriptors.Get(id)
	if !ok {
		return nil, nil, false
	}

	r.loading[id] = true
	r.lastError[id] = nil
	return desc, creds.Clone(), true
}

func (r *Registry) endFetch(id catalogs.ProviderID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading[id] = false
}

func (r *Registry) recordSuccess(id catalogs.ProviderID, models []catalogs.ModelInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.availableModels[id] = catalogs.CloneModels(models)
	r.fetchedAt[id] = utc.Now()
}

func (r *Registry) recordFailure(id catalogs.ProviderID, err error) {
	msg := err.Error()
	if msg == "" {
		msg = unknownError
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastError[id] = &msg
}

// resolve dispatches on the descriptor's model source.
func (r *Registry) resolve(ctx context.Context, desc *catalogs.Descriptor, creds catalogs.Credentials) ([]catalogs.ModelInfo, error) {
	switch src := desc.Models.(type) {
	case catalogs.Dynamic:
		client, err := construct(desc, creds)
		if err != nil {
			return nil, err
		}
		lister, ok := client.(catalogs.ModelLister)
		if !ok {
			return nil, errors.NewUnsupportedError(desc.ID.String(), "model listing")
		}
		remote, err := lister.ListModels(ctx)
		if err != nil {
			return nil, err
		}
		models := make([]catalogs.ModelInfo, len(remote))
		for i, m := range remote {
			models[i] = catalogs.ModelInfo{ID: m.ID, Name: m.ID, Provider: desc.ID}
		}
		return models, nil

	case catalogs.Manual:
		if src.Fetch == nil {
			return nil, errors.NewConfigError(desc.ID.String(), "has no manual fetcher", nil)
		}
		models, err := src.Fetch(ctx, creds)
		if err != nil {
			return nil, err
		}
		if models == nil {
			models = []catalogs.ModelInfo{}
		}
		return models, nil

	case catalogs.Hardcoded:
		if len(src.Models) == 0 {
			return nil, errors.NewConfigError(desc.ID.String(), "has no hardcoded models defined", nil)
		}
		return catalogs.CloneModels(src.Models), nil
	}
	return nil, errors.NewConfigError(desc.ID.String(), "has no model source", nil)
}

func construct(desc *catalogs.Descriptor, creds catalogs.Credentials) (catalogs.Client, error) {
	if desc.Factory == nil {
		return nil, errors.NewConfigError(desc.ID.String(), "has no factory", nil)
	}
	client, err := desc.Factory(creds)
	if err != nil {
		return nil, errors.NewConstructionError(desc.ID.String(), err)
	}
	return client, nil
}
