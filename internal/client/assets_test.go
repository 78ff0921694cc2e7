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

func testAssetJSON(id string, version int, fields map[string]map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"sys": map[string]interface{}{
			"id":      id,
			"type":    "Asset",
			"version": version,
			"space": map[string]interface{}{
				"type":     "Link",
				"linkType": "Space",
				"id":       "space-id",
			},
		},
		"fields": fields,
	}
}

func testAsset(id string, version int) *cma.Asset {
	return &cma.Asset{
		Sys: cma.Sys{
			ID:      id,
			Type:    cma.TypeAsset,
			Version: version,
			Space:   &cma.Link{Type: cma.TypeLink, LinkType: cma.LinkTypeSpace, ID: "space-id"},
		},
		Fields: cma.NewFieldStore(),
	}
}

func TestAssetsGet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/spaces/space-id/assets/asset-id", request.URL.Path)

		payload := testAssetJSON("asset-id", 2, map[string]map[string]interface{}{
			"title": {"en-US": "A picture"},
		})
		_ = json.NewEncoder(writer).Encode(payload)
	}))
	defer server.Close()

	client := NewTestClient(t, server)

	asset, err := client.Assets().Get(context.Background(), "space-id", "asset-id")
	require.NoError(t, err)
	assert.Equal(t, "asset-id", asset.Sys.ID)

	title, ok := asset.Fields.Get("title", "en-US")
	require.True(t, ok)
	assert.Equal(t, "A picture", title.Str)
}

func TestAssetsList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/spaces/space-id/assets", request.URL.Path)

		payload := map[string]interface{}{
			"sys":   map[string]interface{}{"type": "Array"},
			"total": 1,
			"skip":  0,
			"limit": 50,
			"items": []interface{}{testAssetJSON("asset-id", 1, nil)},
		}
		_ = json.NewEncoder(writer).Encode(payload)
	}))
	defer server.Close()

	client := NewTestClient(t, server)

	list, err := client.Assets().List(context.Background(), "space-id", nil)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "asset-id", list.Items[0].Sys.ID)
}

func TestAssetsProcess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/spaces/space-id/assets/asset-id/files/en-US/process", request.URL.Path)
		assert.Equal(t, http.MethodPut, request.Method)
		assert.Equal(t, "3", request.URL.Query().Get("version"))

		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewTestClient(t, server)

	err := client.Assets().Process(context.Background(), testAsset("asset-id", 3), "en-US")
	require.NoError(t, err)
}

func TestAssetsLifecycle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		method      string
		subresource string
		call        func(*Client, context.Context, *cma.Asset) (*cma.Asset, error)
	}{
		{
			name:        "publish",
			method:      http.MethodPut,
			subresource: "published",
			call: func(c *Client, ctx context.Context, a *cma.Asset) (*cma.Asset, error) {
				return c.Assets().Publish(ctx, a)
			},
		},
		{
			name:        "unpublish",
			method:      http.MethodDelete,
			subresource: "published",
			call: func(c *Client, ctx context.Context, a *cma.Asset) (*cma.Asset, error) {
				return c.Assets().Unpublish(ctx, a)
			},
		},
		{
			name:        "archive",
			method:      http.MethodPut,
			subresource: "archived",
			call: func(c *Client, ctx context.Context, a *cma.Asset) (*cma.Asset, error) {
				return c.Assets().Archive(ctx, a)
			},
		},
		{
			name:        "unarchive",
			method:      http.MethodDelete,
			subresource: "archived",
			call: func(c *Client, ctx context.Context, a *cma.Asset) (*cma.Asset, error) {
				return c.Assets().Unarchive(ctx, a)
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "/spaces/space-id/assets/asset-id/"+testCase.subresource, request.URL.Path)
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "4", request.URL.Query().Get("version"))

				_ = json.NewEncoder(writer).Encode(testAssetJSON("asset-id", 5, nil))
			}))
			defer server.Close()

			client := NewTestClient(t, server)

			result, err := testCase.call(client, context.Background(), testAsset("asset-id", 4))
			require.NoError(t, err)
			assert.Equal(t, 5, result.Sys.Version)
		})
	}
}

func TestAssetsDestroy(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/spaces/space-id/assets/asset-id", request.URL.Path)
		assert.Equal(t, http.MethodDelete, request.Method)
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewTestClient(t, server)

	gone, err := client.Assets().Destroy(context.Background(), testAsset("asset-id", 1))
	require.NoError(t, err)
	assert.True(t, gone)
}
