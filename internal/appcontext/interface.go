// Package appcontext provides the application context interface shared by
// all commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/providerhub"
	"github.com/agentstation/providerhub/pkg/registry"
)

// Interface is what commands need from the application. The App of
// cmd/providerhub/app implements it; tests use Mock.
type Interface interface {
	// Hub returns the provider hub, creating it lazily.
	Hub() (*providerhub.Hub, error)

	// Registry is a shortcut for Hub().Registry().
	Registry() (*registry.Registry, error)

	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format.
	OutputFormat() string

	// ServerAddr returns the host:port the HTTP API listens on.
	ServerAddr() string

	// ServerAPIKey returns the key clients must present when API
	// authentication is enabled.
	ServerAPIKey() string

	// CORSOrigins returns the origins the API server allows by default.
	CORSOrigins() []string

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
