package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contentforge-io/cma-client/pkg/cma"
)

// NewTestClient creates a client against a test server, with caching kept
// in-process so tests stay hermetic.
func NewTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := New(context.Background(), &cma.Config{
		Endpoint:    server.URL,
		AccessToken: "test-token",
	})
	require.NoError(t, err)

	return client
}

// testEntryJSON builds an entry payload in wire form: a sys block plus a
// field-name → locale → value fields block.
func testEntryJSON(id string, version int, contentTypeID string, fields map[string]map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"sys": map[string]interface{}{
			"id":      id,
			"type":    "Entry",
			"version": version,
			"space": map[string]interface{}{
				"type":     "Link",
				"linkType": "Space",
				"id":       "space-id",
			},
			"contentType": map[string]interface{}{
				"type":     "Link",
				"linkType": "ContentType",
				"id":       contentTypeID,
			},
		},
		"fields": fields,
	}
}

// testSchemaJSON builds a content type payload declaring a text title, an
// entry reference, and a location.
func testSchemaJSON(id string) map[string]interface{} {
	return map[string]interface{}{
		"sys": map[string]interface{}{
			"id":      id,
			"type":    "ContentType",
			"version": 1,
		},
		"name":         "Blog Post",
		"displayField": "title",
		"fields": []map[string]interface{}{
			{"id": "title", "name": "Title", "type": "Text", "localized": true},
			{"id": "author", "name": "Author", "type": "Link", "linkType": "Entry"},
			{"id": "venue", "name": "Venue", "type": "Location"},
		},
	}
}

// testErrorJSON builds an error resource payload.
func testErrorJSON(errorID, message string) map[string]interface{} {
	return map[string]interface{}{
		"sys": map[string]interface{}{
			"id":   errorID,
			"type": "Error",
		},
		"message": message,
	}
}
