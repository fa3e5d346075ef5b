package server

import (
	"net"
	"strconv"
	"time"

	"github.com/agentstation/providerhub/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	Host string
	Port int

	PathPrefix string

	CORSEnabled bool
	CORSOrigins []string

	AuthEnabled bool
	AuthHeader  string
	APIKey      string

	RateLimit int // requests per minute per IP, 0 disables
	RateBurst int
	CacheTTL  time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            constants.DefaultServerHost,
		Port:            constants.DefaultServerPort,
		PathPrefix:      constants.APIPrefix,
		AuthHeader:      "X-API-Key",
		RateLimit:       100,
		CacheTTL:        5 * time.Minute,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    2 * time.Minute,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: constants.ShutdownTimeout,
	}
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
