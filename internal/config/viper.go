// Package config reads provider settings that live outside the credential
// store: API keys from the environment, .env files and the config file.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/logging"
)

// CredentialSetter is the part of the registry SeedAPIKeys writes through.
type CredentialSetter interface {
	Credentials(id catalogs.ProviderID) (catalogs.Credentials, bool)
	SetCredential(id catalogs.ProviderID, key string, value any) error
}

// GetString checks both Viper and the OS environment. Viper wins when it
// has a value.
func GetString(key string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(key)
}

// APIKey returns the configured API key of desc, looked up under its
// APIKeyEnv name and under providers.<id>.api_key in the config file.
func APIKey(desc *catalogs.Descriptor) string {
	if v := viper.GetString("providers." + desc.ID.String() + ".api_key"); v != "" {
		return strings.TrimSpace(v)
	}
	if desc.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(GetString(desc.APIKeyEnv))
}

// BindAPIKeys binds the APIKeyEnv variable of every descriptor so values
// loaded from .env files are visible to Viper.
func BindAPIKeys(descriptors *catalogs.Descriptors) {
	for _, desc := range descriptors.List() {
		if desc.APIKeyEnv == "" {
			continue
		}
		if err := viper.BindEnv(desc.APIKeyEnv); err != nil {
			logging.Warn().Err(err).Str("env", desc.APIKeyEnv).Msg("failed to bind environment variable")
		}
	}
}

// SeedAPIKeys copies configured API keys into providers whose stored apiKey
// is empty. Stored keys always win. It returns the seeded provider ids.
func SeedAPIKeys(reg CredentialSetter, descriptors *catalogs.Descriptors) ([]catalogs.ProviderID, error) {
	var seeded []catalogs.ProviderID
	for _, desc := range descriptors.List() {
		if !desc.Requires(constants.FieldAPIKey) {
			continue
		}
		key := APIKey(desc)
		if key == "" {
			continue
		}
		if creds, ok := reg.Credentials(desc.ID); ok && creds.String(constants.FieldAPIKey) != "" {
			continue
		}
		if err := reg.SetCredential(desc.ID, constants.FieldAPIKey, key); err != nil {
			return seeded, err
		}
		logging.Debug().Str("provider_id", desc.ID.String()).Msg("seeded api key from environment")
		seeded = append(seeded, desc.ID)
	}
	return seeded, nil
}
