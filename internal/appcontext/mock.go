package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/providerhub"
	"github.com/agentstation/providerhub/pkg/registry"
)

// Mock implements Interface for tests. Unset fields yield zero values.
type Mock struct {
	HubValue    *providerhub.Hub
	HubErr      error
	LoggerValue *zerolog.Logger
	Format      string
	Addr        string
	APIKey      string
	Origins     []string
	VersionStr  string
}

var _ Interface = (*Mock)(nil)

// Hub implements Interface.
func (m *Mock) Hub() (*providerhub.Hub, error) {
	return m.HubValue, m.HubErr
}

// Registry implements Interface.
func (m *Mock) Registry() (*registry.Registry, error) {
	if m.HubErr != nil {
		return nil, m.HubErr
	}
	if m.HubValue == nil {
		return nil, nil
	}
	return m.HubValue.Registry(), nil
}

// Logger implements Interface.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerValue != nil {
		return m.LoggerValue
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat implements Interface.
func (m *Mock) OutputFormat() string { return m.Format }

// ServerAddr implements Interface.
func (m *Mock) ServerAddr() string { return m.Addr }

// ServerAPIKey implements Interface.
func (m *Mock) ServerAPIKey() string { return m.APIKey }

// CORSOrigins implements Interface.
func (m *Mock) CORSOrigins() []string { return m.Origins }

// Version implements Interface.
func (m *Mock) Version() string {
	if m.VersionStr == "" {
		return "dev"
	}
	return m.VersionStr
}

// Commit implements Interface.
func (m *Mock) Commit() string { return "unknown" }

// Date implements Interface.
func (m *Mock) Date() string { return "unknown" }

// BuiltBy implements Interface.
func (m *Mock) BuiltBy() string { return "test" }
