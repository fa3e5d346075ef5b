package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/errors"
)

func TestListModelsPaginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			_, _ = w.Write([]byte(`{"models":[{"name":"models/gemini-2.0-flash"},{"name":""}],"nextPageToken":"p2"}`))
			return
		}
		_, _ = w.Write([]byte(`{"models":[{"name":"models/text-embedding-004"}]}`))
	}))
	defer server.Close()

	client := NewClient("g-key", server.URL, server.Client())
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"gemini-2.0-flash", "text-embedding-004"}, ids)
}

func TestListModelsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	_, err := NewClient("g-key", server.URL, server.Client()).ListModels(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))
}

func TestFactory(t *testing.T) {
	_, err := Factory(nil)(catalogs.Credentials{})
	require.Error(t, err)
	assert.True(t, errors.IsAPIKeyError(err))

	client, err := Factory(nil)(catalogs.Credentials{"apiKey": "k"})
	require.NoError(t, err)
	assert.Implements(t, (*catalogs.ModelLister)(nil), client)
}
