// Package app wires configuration, logging and the provider hub together
// for the providerhub CLI.
package app

import (
	"context"
	"net"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/providerhub"
	"github.com/agentstation/providerhub/internal/appcontext"
	"github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/registry"
)

// App holds the CLI dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// lazily created
	mu  sync.RWMutex
	hub *providerhub.Hub
}

var _ appcontext.Interface = (*App)(nil)

// New creates an App, loading configuration unless WithConfig is given.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig()
		if err != nil {
			return nil, errors.WrapResource("load", "config", "", err)
		}
		app.config = config
	}

	if app.logger == nil {
		logger := NewLogger(app.config)
		app.logger = &logger
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string { return a.config.Format }

// ServerAddr returns the host:port the API server binds to.
func (a *App) ServerAddr() string {
	return net.JoinHostPort(a.config.ServerHost, strconv.Itoa(a.config.ServerPort))
}

// ServerAPIKey returns the configured API server key.
func (a *App) ServerAPIKey() string {
	return a.config.ServerAPIKey
}

// CORSOrigins returns the configured CORS origins.
func (a *App) CORSOrigins() []string {
	return a.config.CORSOrigins
}

// Hub returns the provider hub, creating it on first use.
func (a *App) Hub() (*providerhub.Hub, error) {
	a.mu.RLock()
	if a.hub != nil {
		hub := a.hub
		a.mu.RUnlock()
		return hub, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.hub != nil {
		return a.hub, nil
	}

	hub, err := providerhub.New(a.hubOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "hub", "", err)
	}
	a.hub = hub
	return hub, nil
}

// Registry returns the registry of the hub.
func (a *App) Registry() (*registry.Registry, error) {
	hub, err := a.Hub()
	if err != nil {
		return nil, err
	}
	return hub.Registry(), nil
}

// Shutdown stops auto refresh and releases the hub.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	hub := a.hub
	a.hub = nil
	a.mu.Unlock()

	if hub == nil {
		return nil
	}
	return hub.Close()
}

func (a *App) hubOptions() []providerhub.Option {
	c := a.config
	opts := []providerhub.Option{
		providerhub.WithLocale(c.Locale),
		providerhub.WithLogger(a.logger),
		providerhub.WithEnvAPIKeys(c.EnvAPIKeys),
		providerhub.WithFetchTimeout(c.FetchTimeout),
		providerhub.WithRateLimit(c.RateLimitRPM, c.RateBurst),
		providerhub.WithAutoRefresh(c.AutoRefresh),
	}
	if c.DataDir != "" {
		opts = append(opts, providerhub.WithDataDir(c.DataDir))
	}
	return opts
}

// Option configures an App.
type Option func(*App) error

// WithConfig sets the configuration, skipping LoadConfig.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithHub sets the hub, skipping lazy creation.
func WithHub(hub *providerhub.Hub) Option {
	return func(a *App) error {
		a.hub = hub
		return nil
	}
}
