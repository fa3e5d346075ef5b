package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/providerhub/internal/cmd/cmdtest"
	"github.com/agentstation/providerhub/pkg/catalogs"
)

func decode(t *testing.T, s string) []catalogs.ModelInfo {
	t.Helper()
	var models []catalogs.ModelInfo
	require.NoError(t, json.Unmarshal([]byte(s), &models))
	return models
}

func ids(models []catalogs.ModelInfo) []string {
	out := make([]string, len(models))
	for i, m := range models {
		out[i] = m.ID
	}
	return out
}

func TestModelsNothingConfigured(t *testing.T) {
	app, _ := cmdtest.NewApp(t)

	res := cmdtest.Run(t, NewCommand(app), "-o", "json")
	require.NoError(t, res.Err)
	assert.JSONEq(t, "[]", res.Stdout)
	assert.Empty(t, res.Stderr)
}

func TestModelsLoadsConfiguredProviders(t *testing.T) {
	app, hub := cmdtest.NewApp(t)
	reg := hub.Registry()
	require.NoError(t, reg.SetCredentials("alpha", catalogs.Credentials{"apiKey": "a"}))
	require.NoError(t, reg.SetCredentials("beta", catalogs.Credentials{"apiKey": "b"}))

	res := cmdtest.Run(t, NewCommand(app), "-o", "json")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"alpha-small", "alpha-large", "beta-1"}, ids(decode(t, res.Stdout)))
}

func TestModelsReportsFailures(t *testing.T) {
	app, hub := cmdtest.NewApp(t)
	reg := hub.Registry()
	require.NoError(t, reg.SetCredentials("alpha", catalogs.Credentials{"apiKey": "a"}))
	require.NoError(t, reg.SetCredentials("beta", catalogs.Credentials{"apiKey": cmdtest.BadKey}))

	res := cmdtest.Run(t, NewCommand(app), "-o", "json")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"alpha-small", "alpha-large"}, ids(decode(t, res.Stdout)))
	assert.Contains(t, res.Stderr, "could not load models for beta")
	assert.Contains(t, res.Stderr, "invalid api key")
}

func TestModelsSearchAndLimit(t *testing.T) {
	app, hub := cmdtest.NewApp(t)
	require.NoError(t, hub.Registry().SetCredentials("alpha", catalogs.Credentials{"apiKey": "a"}))

	res := cmdtest.Run(t, NewCommand(app), "--search", "LARGE", "-o", "json")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"alpha-large"}, ids(decode(t, res.Stdout)))

	res = cmdtest.Run(t, NewCommand(app), "-l", "1", "--no-fetch", "-o", "json")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"alpha-small"}, ids(decode(t, res.Stdout)))
}

func TestModelsNoFetch(t *testing.T) {
	app, hub := cmdtest.NewApp(t)
	require.NoError(t, hub.Registry().SetCredentials("alpha", catalogs.Credentials{"apiKey": "a"}))

	res := cmdtest.Run(t, NewCommand(app), "--no-fetch", "-o", "json")
	require.NoError(t, res.Err)
	assert.JSONEq(t, "[]", res.Stdout)
}

func TestModelsTable(t *testing.T) {
	app, hub := cmdtest.NewApp(t)
	require.NoError(t, hub.Registry().SetCredentials("alpha", catalogs.Credentials{"apiKey": "a"}))

	res := cmdtest.Run(t, NewCommand(app), "-o", "table")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "alpha-small")
	assert.Contains(t, res.Stdout, "32768")
}

func TestModelsGlobSearch(t *testing.T) {
	app, hub := cmdtest.NewApp(t)
	require.NoError(t, hub.Registry().SetCredentials("alpha", catalogs.Credentials{"apiKey": "a"}))
	require.NoError(t, hub.Registry().SetCredentials("beta", catalogs.Credentials{"apiKey": "b"}))

	res := cmdtest.Run(t, NewCommand(app), "--search", "alpha-*", "-o", "json")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"alpha-small", "alpha-large"}, ids(decode(t, res.Stdout)))

	res = cmdtest.Run(t, NewCommand(app), "--search", "/(/", "-o", "json")
	require.Error(t, res.Err)
}
