package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"resource-sync/core/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRemote_FetchItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/items/12":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":12,"name":"sofa","updated_at":"2026-01-01T00:00:00Z"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL, TimeoutSeconds: 2}, zap.NewNop())
	require.NoError(t, err)
	remote := NewRemote(c)

	t.Run("Found", func(t *testing.T) {
		resp, err := remote.FetchItem(context.Background(), 12)
		require.NoError(t, err)
		require.NotNil(t, resp.Body)
		assert.True(t, resp.IsSuccess())
		assert.Equal(t, "sofa", resp.Body.Name)
	})

	t.Run("Not Found", func(t *testing.T) {
		resp, err := remote.FetchItem(context.Background(), 13)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Nil(t, resp.Body)
	})
}
