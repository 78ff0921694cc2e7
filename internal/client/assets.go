package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/contentforge-io/cma-client/internal/http"
	"github.com/contentforge-io/cma-client/pkg/cma"
)

// AssetsClient implements cma.AssetsClient.
type AssetsClient struct {
	httpClient *http.Client
}

// NewAssetsClient creates a new assets client.
func NewAssetsClient(httpClient *http.Client) *AssetsClient {
	return &AssetsClient{httpClient: httpClient}
}

// Get implements cma.AssetsClient.Get.
func (c *AssetsClient) Get(ctx context.Context, spaceID, assetID string) (*cma.Asset, error) {
	resp, err := c.httpClient.Get(ctx, "/spaces/"+spaceID+"/assets/"+assetID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting asset: %w", err)
	}

	return cma.BuildAsset(resp.Body)
}

// List implements cma.AssetsClient.List.
func (c *AssetsClient) List(ctx context.Context, spaceID string, query url.Values) (*cma.Collection[*cma.Asset], error) {
	resp, err := c.httpClient.Get(ctx, "/spaces/"+spaceID+"/assets", query)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}

	var raw cma.Collection[json.RawMessage]

	err = json.Unmarshal(resp.Body, &raw)
	if err != nil {
		return nil, fmt.Errorf("parsing assets list: %w", err)
	}

	collection := &cma.Collection[*cma.Asset]{
		Sys:   raw.Sys,
		Total: raw.Total,
		Skip:  raw.Skip,
		Limit: raw.Limit,
		Items: make([]*cma.Asset, 0, len(raw.Items)),
	}

	for _, item := range raw.Items {
		asset, err := cma.BuildAsset(item)
		if err != nil {
			return nil, err
		}

		collection.Items = append(collection.Items, asset)
	}

	return collection, nil
}

// Process implements cma.AssetsClient.Process: asks the platform to ingest
// the uploaded file for one locale. Processing is asynchronous; the call
// returns as soon as the server accepts it.
func (c *AssetsClient) Process(ctx context.Context, asset *cma.Asset, locale string) error {
	if asset == nil || asset.Sys.ID == "" {
		return cma.ErrEntryNotPersisted
	}

	path := "/spaces/" + assetSpaceID(asset) + "/assets/" + asset.Sys.ID + "/files/" + locale + "/process"

	_, err := c.httpClient.Put(ctx, path, versionQuery(asset.Sys.Version), nil)
	if err != nil {
		return fmt.Errorf("processing asset %q: %w", asset.Sys.ID, err)
	}

	return nil
}

// Publish implements cma.AssetsClient.Publish.
func (c *AssetsClient) Publish(ctx context.Context, asset *cma.Asset) (*cma.Asset, error) {
	return c.lifecycle(ctx, asset, nethttp.MethodPut, "published", "publishing")
}

// Unpublish implements cma.AssetsClient.Unpublish.
func (c *AssetsClient) Unpublish(ctx context.Context, asset *cma.Asset) (*cma.Asset, error) {
	return c.lifecycle(ctx, asset, nethttp.MethodDelete, "published", "unpublishing")
}

// Archive implements cma.AssetsClient.Archive.
func (c *AssetsClient) Archive(ctx context.Context, asset *cma.Asset) (*cma.Asset, error) {
	return c.lifecycle(ctx, asset, nethttp.MethodPut, "archived", "archiving")
}

// Unarchive implements cma.AssetsClient.Unarchive.
func (c *AssetsClient) Unarchive(ctx context.Context, asset *cma.Asset) (*cma.Asset, error) {
	return c.lifecycle(ctx, asset, nethttp.MethodDelete, "archived", "unarchiving")
}

// Destroy implements cma.AssetsClient.Destroy.
func (c *AssetsClient) Destroy(ctx context.Context, asset *cma.Asset) (bool, error) {
	if asset == nil || asset.Sys.ID == "" {
		return false, cma.ErrEntryNotPersisted
	}

	path := "/spaces/" + assetSpaceID(asset) + "/assets/" + asset.Sys.ID

	_, err := c.httpClient.Delete(ctx, path, versionQuery(asset.Sys.Version))
	if err != nil {
		return false, fmt.Errorf("destroying asset %q: %w", asset.Sys.ID, err)
	}

	return true, nil
}

func (c *AssetsClient) lifecycle(ctx context.Context, asset *cma.Asset, method, subresource, action string) (*cma.Asset, error) {
	if asset == nil || asset.Sys.ID == "" {
		return nil, cma.ErrEntryNotPersisted
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: method,
		Path:   "/spaces/" + assetSpaceID(asset) + "/assets/" + asset.Sys.ID + "/" + subresource,
		Query:  versionQuery(asset.Sys.Version),
	})
	if err != nil {
		return nil, fmt.Errorf("%s asset %q: %w", action, asset.Sys.ID, err)
	}

	return cma.BuildAsset(resp.Body)
}

func assetSpaceID(asset *cma.Asset) string {
	if asset.Sys.Space == nil {
		return ""
	}

	return asset.Sys.Space.ID
}
