package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentforge-io/cma-client/pkg/cma"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), nil)
	require.ErrorIs(t, err, cma.ErrConfigRequired)

	_, err = New(context.Background(), &cma.Config{})
	require.ErrorIs(t, err, cma.ErrEndpointRequired)
}

func TestNewWiresResourceClients(t *testing.T) {
	t.Parallel()

	client, err := New(context.Background(), &cma.Config{
		Endpoint:    "https://api.example.com",
		AccessToken: "token",
	})
	require.NoError(t, err)

	assert.NotNil(t, client.Entries())
	assert.NotNil(t, client.ContentTypes())
	assert.NotNil(t, client.Assets())
	assert.NotNil(t, client.Spaces())
	assert.NotNil(t, client.Schemas())
}

func TestNewRejectsBadCacheConfig(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), &cma.Config{
		Endpoint: "https://api.example.com",
		Cache:    &cma.CacheConfig{Type: cma.CacheType("bogus")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, cma.ErrUnsupportedCache)
}

func TestSchemaInvalidationForcesRefetch(t *testing.T) {
	t.Parallel()

	fetches := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		fetches++

		_, _ = writer.Write([]byte(`{"sys":{"id":"blog","type":"ContentType","version":1},"name":"Blog","fields":[]}`))
	}))
	defer server.Close()

	client := NewTestClient(t, server)
	ctx := context.Background()

	_, err := client.Schemas().Resolve(ctx, "space-id", "blog")
	require.NoError(t, err)

	_, err = client.Schemas().Resolve(ctx, "space-id", "blog")
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)

	require.NoError(t, client.Schemas().Invalidate(ctx, "space-id", "blog"))

	_, err = client.Schemas().Resolve(ctx, "space-id", "blog")
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}
