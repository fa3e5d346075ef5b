package registry

// Localizer resolves a localization key, returning fallback when the key
// has no translation.
type Localizer interface {
	Translate(key, fallback string) string
}

// LocalizerFunc adapts a function to Localizer.
type LocalizerFunc func(key, fallback string) string

// Translate implements Localizer.
func (f LocalizerFunc) Translate(key, fallback string) string {
	return f(key, fallback)
}

// FallbackLocalizer always returns the fallback literal.
type FallbackLocalizer struct{}

// Translate implements Localizer.
func (FallbackLocalizer) Translate(_, fallback string) string {
	return fallback
}
