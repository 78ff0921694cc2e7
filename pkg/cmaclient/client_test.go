package cmaclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentforge-io/cma-client/pkg/cma"
	"github.com/contentforge-io/cma-client/pkg/cmaclient"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		config := &cma.Config{
			Endpoint:    "https://api.example.com",
			AccessToken: "token",
		}

		client, err := cmaclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("normalizes endpoint", func(t *testing.T) {
		t.Parallel()

		config := &cma.Config{Endpoint: "api.example.com/"}

		client, err := cmaclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "https://api.example.com", config.Endpoint)
	})

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := cmaclient.New(context.Background(), nil)
		require.ErrorIs(t, err, cma.ErrConfigRequired)
	})

	t.Run("requires endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := cmaclient.New(context.Background(), &cma.Config{})
		require.ErrorIs(t, err, cma.ErrEndpointRequired)
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := cmaclient.NewWithToken(context.Background(), "https://api.example.com", "test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/spaces/space-id":
			space := map[string]interface{}{
				"sys":           map[string]interface{}{"id": "space-id", "type": "Space"},
				"name":          "Test Space",
				"defaultLocale": "en-US",
			}
			_ = json.NewEncoder(writer).Encode(space)
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := cmaclient.NewWithToken(context.Background(), server.URL, "test-token")
	require.NoError(t, err)

	space, err := client.Spaces().Get(context.Background(), "space-id")
	require.NoError(t, err)
	assert.Equal(t, "Test Space", space.Name)
	assert.Equal(t, "en-US", space.DefaultLocale)
}
