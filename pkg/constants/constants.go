// Package constants provides shared constants used throughout providerhub:
// timeouts, permissions, storage keys and rate limiting defaults.
package constants

import "time"

// Timeout constants.
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to provider APIs.
	DefaultHTTPTimeout = 30 * time.Second

	// ProviderFetchTimeout bounds a single model fetch when the caller opts in.
	ProviderFetchTimeout = 2 * time.Minute

	// CommandTimeout is the default timeout for CLI commands.
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout is how long the HTTP server waits for in-flight requests.
	ShutdownTimeout = 10 * time.Second
)

// File permission constants.
const (
	// DirPermissions is the permission for created directories (rwx------).
	DirPermissions = 0700

	// FilePermissions is the default permission for created files (rw-r--r--).
	FilePermissions = 0644

	// SecureFilePermissions is for files holding credentials (rw-------).
	SecureFilePermissions = 0600
)

// Storage constants.
const (
	// CredentialsKey is the namespace key the credential record is persisted under.
	CredentialsKey = "settings/credentials/providers"

	// StoreFileExt is appended to namespace keys by the file store.
	StoreFileExt = ".yaml"

	// DefaultDataDirName is the directory below $HOME holding persisted state.
	DefaultDataDirName = ".providerhub"
)

// Credential field names shared by the catalog and provider clients.
const (
	FieldAPIKey    = "apiKey"
	FieldBaseURL   = "baseUrl"
	FieldAccountID = "accountId"
)

// Rate limiting constants.
const (
	// DefaultRateLimit is the default requests per minute when limiting is enabled.
	DefaultRateLimit = 60

	// BurstSize is the token bucket burst size.
	BurstSize = 5
)

// Server constants.
const (
	// DefaultServerHost is the host the HTTP server binds to.
	DefaultServerHost = "localhost"

	// DefaultServerPort is the port the HTTP server listens on.
	DefaultServerPort = 8080

	// APIPrefix is the path prefix for versioned endpoints.
	APIPrefix = "/api/v1"

	// ChannelBufferSize is the default buffer size for event channels.
	ChannelBufferSize = 64
)

// MaskedSecret replaces secret values in human readable output.
const MaskedSecret = "********"
