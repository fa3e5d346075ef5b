package catalogs

import "context"

// ModelSelectionType names the strategy used to resolve a provider's models.
type ModelSelectionType string

// Model selection strategies.
const (
	ModelSelectionDynamic   ModelSelectionType = "dynamic"
	ModelSelectionManual    ModelSelectionType = "manual"
	ModelSelectionHardcoded ModelSelectionType = "hardcoded"
)

// String returns the string representation of a ModelSelectionType.
func (t ModelSelectionType) String() string {
	return string(t)
}

// ModelSource is the closed set of model resolution strategies:
// Dynamic, Manual and Hardcoded.
type ModelSource interface {
	Kind() ModelSelectionType
	modelSource()
}

// ManualFetcher resolves models without going through the provider client.
type ManualFetcher func(ctx context.Context, creds Credentials) ([]ModelInfo, error)

// Dynamic lists models through the client built by the descriptor's factory.
// The client must implement ModelLister.
type Dynamic struct{}

// Manual lists models with a dedicated fetcher.
type Manual struct {
	Fetch ManualFetcher
}

// Hardcoded serves a fixed, ordered model list.
type Hardcoded struct {
	Models []ModelInfo
}

// Kind implements ModelSource.
func (Dynamic) Kind() ModelSelectionType { return ModelSelectionDynamic }

// Kind implements ModelSource.
func (Manual) Kind() ModelSelectionType { return ModelSelectionManual }

// Kind implements ModelSource.
func (Hardcoded) Kind() ModelSelectionType { return ModelSelectionHardcoded }

func (Dynamic) modelSource()   {}
func (Manual) modelSource()    {}
func (Hardcoded) modelSource() {}

// ModelLister is implemented by provider clients that can enumerate the
// remote model catalog.
type ModelLister interface {
	ListModels(ctx context.Context) ([]RemoteModel, error)
}
