package cloudflare

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/providerhub/internal/sources/providers/testhelper"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/errors"
)

func TestListModels(t *testing.T) {
	server := testhelper.NewServer(t, http.StatusOK, "search.json")

	client := NewClient(server.URL+"/client/v4/", "cf-token", "acc123")
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)

	require.Len(t, models, 2)
	assert.Equal(t, "@cf/meta/llama-3-8b-instruct", models[0].ID)
	assert.Equal(t, "@cf/baai/bge-base-en-v1.5", models[1].ID)

	req := server.Last(t)
	assert.Equal(t, "/client/v4/accounts/acc123/ai/models/search", req.Path)
	assert.Equal(t, "Bearer cf-token", req.Authorization)
}

func TestListModelsEnvelopeFailure(t *testing.T) {
	server := testhelper.NewServer(t, http.StatusOK, "search_error.json")

	_, err := NewClient(server.URL, "bad", "acc123").ListModels(context.Background())
	require.Error(t, err)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Authentication error", apiErr.Message)
}

func TestFactory(t *testing.T) {
	_, err := Factory()(catalogs.Credentials{"apiKey": "k"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	client, err := Factory()(catalogs.Credentials{"apiKey": "k", "accountId": "acc"})
	require.NoError(t, err)
	c, ok := client.(*Client)
	require.True(t, ok)
	assert.Equal(t, "acc", c.AccountID())
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
