package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentforge-io/cma-client/pkg/cma"
)

func TestSpacesGet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/spaces/space-id", request.URL.Path)
		assert.Equal(t, http.MethodGet, request.Method)

		payload := map[string]interface{}{
			"sys": map[string]interface{}{
				"id":   "space-id",
				"type": "Space",
			},
			"name":          "Marketing",
			"defaultLocale": "de-DE",
		}
		_ = json.NewEncoder(writer).Encode(payload)
	}))
	defer server.Close()

	client := NewTestClient(t, server)

	space, err := client.Spaces().Get(context.Background(), "space-id")
	require.NoError(t, err)
	assert.Equal(t, "space-id", space.Sys.ID)
	assert.Equal(t, "Marketing", space.Name)
	assert.Equal(t, "de-DE", space.DefaultLocale)
}

func TestSpacesGetValidation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Error("no request expected")
	}))
	defer server.Close()

	client := NewTestClient(t, server)

	_, err := client.Spaces().Get(context.Background(), "")
	require.ErrorIs(t, err, cma.ErrSpaceIDRequired)
}
