package providerhub

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/store"
)

// Option configures a Hub.
type Option func(*options) error

type options struct {
	dataDir             string
	store               store.Store
	locale              string
	httpClient          *http.Client
	rateLimitRPM        int
	burst               int
	fetchTimeout        time.Duration
	envAPIKeys          bool
	autoRefreshInterval time.Duration
	logger              *zerolog.Logger
	descriptors         []catalogs.Descriptor
}

func defaults() *options {
	return &options{
		locale: "en",
		burst:  constants.BurstSize,
	}
}

// WithDataDir persists credentials as YAML files below dir. Without it the
// hub keeps credentials in memory.
func WithDataDir(dir string) Option {
	return func(o *options) error {
		o.dataDir = dir
		return nil
	}
}

// WithStore sets the credential store directly. It wins over WithDataDir.
func WithStore(s store.Store) Option {
	return func(o *options) error {
		o.store = s
		return nil
	}
}

// WithLocale selects the display locale, e.g. "en" or "zh-Hans".
func WithLocale(locale string) Option {
	return func(o *options) error {
		o.locale = locale
		return nil
	}
}

// WithHTTPClient sets the HTTP client of every builtin provider.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		o.httpClient = hc
		return nil
	}
}

// WithRateLimit limits requests per provider to rpm per minute.
func WithRateLimit(rpm, burst int) Option {
	return func(o *options) error {
		if rpm < 0 {
			return &errors.ValidationError{Field: "rateLimitRPM", Value: rpm, Message: "must not be negative"}
		}
		o.rateLimitRPM = rpm
		if burst > 0 {
			o.burst = burst
		}
		return nil
	}
}

// WithFetchTimeout bounds every model fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) error {
		o.fetchTimeout = d
		return nil
	}
}

// WithEnvAPIKeys seeds empty apiKey credentials from each provider's
// environment variable.
func WithEnvAPIKeys(enabled bool) Option {
	return func(o *options) error {
		o.envAPIKeys = enabled
		return nil
	}
}

// WithAutoRefresh reloads models of configured providers every interval.
func WithAutoRefresh(interval time.Duration) Option {
	return func(o *options) error {
		if interval < 0 {
			return &errors.ValidationError{Field: "autoRefreshInterval", Value: interval, Message: "must not be negative"}
		}
		o.autoRefreshInterval = interval
		return nil
	}
}

// WithLogger sets the logger used by the registry.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithDescriptors replaces the builtin catalog.
func WithDescriptors(descriptors ...catalogs.Descriptor) Option {
	return func(o *options) error {
		o.descriptors = descriptors
		return nil
	}
}
