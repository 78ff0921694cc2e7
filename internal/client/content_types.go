package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/contentforge-io/cma-client/internal/http"
	"github.com/contentforge-io/cma-client/pkg/cma"
)

// ContentTypesClient implements cma.ContentTypesClient. It is also the
// SchemaFetcher behind the schema cache.
type ContentTypesClient struct {
	httpClient *http.Client
}

// NewContentTypesClient creates a new content types client.
func NewContentTypesClient(httpClient *http.Client) *ContentTypesClient {
	return &ContentTypesClient{httpClient: httpClient}
}

// Get implements cma.ContentTypesClient.Get. A missing content type comes
// back as ErrSchemaNotFound so callers can distinguish "no such schema" from
// transport failures.
func (c *ContentTypesClient) Get(ctx context.Context, spaceID, contentTypeID string) (*cma.ContentTypeSchema, error) {
	resp, err := c.httpClient.Get(ctx, "/spaces/"+spaceID+"/content_types/"+contentTypeID, nil)
	if err != nil {
		if cma.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", cma.ErrSchemaNotFound, contentTypeID)
		}

		return nil, fmt.Errorf("getting content type: %w", err)
	}

	var schema cma.ContentTypeSchema

	err = json.Unmarshal(resp.Body, &schema)
	if err != nil {
		return nil, fmt.Errorf("parsing content type: %w", err)
	}

	return &schema, nil
}

// FetchSchema implements cma.SchemaFetcher.
func (c *ContentTypesClient) FetchSchema(ctx context.Context, spaceID, contentTypeID string) (*cma.ContentTypeSchema, error) {
	return c.Get(ctx, spaceID, contentTypeID)
}

// List implements cma.ContentTypesClient.List.
func (c *ContentTypesClient) List(ctx context.Context, spaceID string, query url.Values) (*cma.Collection[*cma.ContentTypeSchema], error) {
	resp, err := c.httpClient.Get(ctx, "/spaces/"+spaceID+"/content_types", query)
	if err != nil {
		return nil, fmt.Errorf("listing content types: %w", err)
	}

	var collection cma.Collection[*cma.ContentTypeSchema]

	err = json.Unmarshal(resp.Body, &collection)
	if err != nil {
		return nil, fmt.Errorf("parsing content types list: %w", err)
	}

	return &collection, nil
}

// Publish implements cma.ContentTypesClient.Publish, activating a content
// type so entries can be created against it.
func (c *ContentTypesClient) Publish(ctx context.Context, spaceID string, schema *cma.ContentTypeSchema) (*cma.ContentTypeSchema, error) {
	if schema == nil || schema.ID() == "" {
		return nil, cma.ErrContentTypeRequired
	}

	path := "/spaces/" + spaceID + "/content_types/" + schema.ID() + "/published"

	resp, err := c.httpClient.Put(ctx, path, versionQuery(schema.Sys.Version), nil)
	if err != nil {
		return nil, fmt.Errorf("publishing content type %q: %w", schema.ID(), err)
	}

	var published cma.ContentTypeSchema

	err = json.Unmarshal(resp.Body, &published)
	if err != nil {
		return nil, fmt.Errorf("parsing published content type: %w", err)
	}

	return &published, nil
}
