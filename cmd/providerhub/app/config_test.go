package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/providerhub/pkg/constants"
)

func resetViper() { viper.Reset() }

// isolate points HOME at an empty directory so no user config is read.
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(resetViper)
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadConfigDefaults(t *testing.T) {
	home := isolate(t)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "en", config.Locale)
	assert.Equal(t, filepath.Join(home, constants.DefaultDataDirName), config.DataDir)
	assert.Equal(t, constants.DefaultServerHost, config.ServerHost)
	assert.Equal(t, constants.DefaultServerPort, config.ServerPort)
	assert.Equal(t, constants.BurstSize, config.RateBurst)
	assert.True(t, config.EnvAPIKeys)
	assert.Equal(t, "stderr", config.LogOutput)
}

func TestLoadConfigFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PROVIDERHUB_LOCALE", "zh-Hans")
	t.Setenv("PROVIDERHUB_DATA_DIR", "~/hub")
	t.Setenv("PROVIDERHUB_FETCH_TIMEOUT", "15s")
	t.Setenv("PROVIDERHUB_ENV_API_KEYS", "false")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOG_LEVEL", "warn")

	config, err := LoadConfig()
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, "zh-Hans", config.Locale)
	assert.Equal(t, filepath.Join(home, "hub"), config.DataDir)
	assert.Equal(t, 15*time.Second, config.FetchTimeout)
	assert.False(t, config.EnvAPIKeys)
	assert.Equal(t, 9999, config.ServerPort)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`locale: ja
auto_refresh: 10m
server:
  port: 7070
  cors_origins:
    - https://a.example
`), 0o600))

	_, err := LoadConfig()
	require.NoError(t, err)
	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ja", config.Locale)
	assert.Equal(t, 10*time.Minute, config.AutoRefresh)
	assert.Equal(t, 7070, config.ServerPort)
	assert.Equal(t, []string{"https://a.example"}, config.CORSOrigins)
	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, constants.DefaultServerHost, config.ServerHost)
}

func TestLoadConfigFileMissing(t *testing.T) {
	home := isolate(t)

	_, err := LoadConfigFile(filepath.Join(home, "nope.yaml"))
	require.Error(t, err)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "info", Locale: "en"}

	config.UpdateFromFlags(true, false, true, "", "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "en", config.Locale)

	config.UpdateFromFlags(false, true, false, "json", "trace", "ja")
	assert.True(t, config.Quiet)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "trace", config.LogLevel)
	assert.Equal(t, "ja", config.Locale)
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, "x"), expandHome("~/x"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
