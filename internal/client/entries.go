package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/contentforge-io/cma-client/internal/constants"
	"github.com/contentforge-io/cma-client/internal/http"
	"github.com/contentforge-io/cma-client/pkg/cma"
)

// EntriesClient implements cma.EntriesClient.
type EntriesClient struct {
	httpClient *http.Client
	schemas    *cma.SchemaCache
	registry   *cma.AccessorRegistry
}

// NewEntriesClient creates a new entries client. The schema cache and
// registry are injected into every hydrated entry so field accessors can
// resolve lazily.
func NewEntriesClient(httpClient *http.Client, schemas *cma.SchemaCache, registry *cma.AccessorRegistry) *EntriesClient {
	return &EntriesClient{
		httpClient: httpClient,
		schemas:    schemas,
		registry:   registry,
	}
}

// entryRequest is the outbound body of entry create and update requests.
type entryRequest struct {
	Fields cma.UpdatePayload `json:"fields"`
}

// Create implements cma.EntriesClient.Create. Attributes the content type
// does not declare are dropped before the request is built.
func (c *EntriesClient) Create(ctx context.Context, spaceID, contentTypeID string, attrs map[string]interface{}) (*cma.Entry, error) {
	if spaceID == "" {
		return nil, cma.ErrSpaceIDRequired
	}

	if contentTypeID == "" {
		return nil, cma.ErrContentTypeRequired
	}

	body, err := c.buildCreateBody(ctx, spaceID, contentTypeID, attrs)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("content_type", contentTypeID)

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodPost,
		Path:   "/spaces/" + spaceID + "/entries",
		Query:  query,
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	return c.buildEntry(resp.Body)
}

// CreateWithID implements cma.EntriesClient.CreateWithID: creation at a
// caller-chosen id via PUT instead of a server-assigned one via POST.
func (c *EntriesClient) CreateWithID(ctx context.Context, spaceID, contentTypeID, entryID string, attrs map[string]interface{}) (*cma.Entry, error) {
	if spaceID == "" {
		return nil, cma.ErrSpaceIDRequired
	}

	if contentTypeID == "" {
		return nil, cma.ErrContentTypeRequired
	}

	if entryID == "" {
		return nil, cma.ErrEntryIDRequired
	}

	body, err := c.buildCreateBody(ctx, spaceID, contentTypeID, attrs)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("content_type", contentTypeID)

	resp, err := c.httpClient.Put(ctx, "/spaces/"+spaceID+"/entries/"+entryID, query, body)
	if err != nil {
		return nil, fmt.Errorf("creating entry %q: %w", entryID, err)
	}

	return c.buildEntry(resp.Body)
}

// Get implements cma.EntriesClient.Get.
func (c *EntriesClient) Get(ctx context.Context, spaceID, entryID string) (*cma.Entry, error) {
	resp, err := c.httpClient.Get(ctx, "/spaces/"+spaceID+"/entries/"+entryID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return c.buildEntry(resp.Body)
}

// List implements cma.EntriesClient.List.
func (c *EntriesClient) List(ctx context.Context, spaceID string, query url.Values) (*cma.Collection[*cma.Entry], error) {
	resp, err := c.httpClient.Get(ctx, "/spaces/"+spaceID+"/entries", query)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	var raw cma.Collection[json.RawMessage]

	err = json.Unmarshal(resp.Body, &raw)
	if err != nil {
		return nil, fmt.Errorf("parsing entries list: %w", err)
	}

	collection := &cma.Collection[*cma.Entry]{
		Sys:   raw.Sys,
		Total: raw.Total,
		Skip:  raw.Skip,
		Limit: raw.Limit,
		Items: make([]*cma.Entry, 0, len(raw.Items)),
	}

	for _, item := range raw.Items {
		entry, err := c.buildEntry(item)
		if err != nil {
			return nil, err
		}

		collection.Items = append(collection.Items, entry)
	}

	return collection, nil
}

// Update implements cma.EntriesClient.Update. The submitted fields block is
// the entry's current state overlaid with attrs at the target locale, so
// untouched fields and sibling locales survive the round trip. The entry's
// version rides along as a query parameter; a stale version surfaces as a
// conflict error and is never retried.
func (c *EntriesClient) Update(ctx context.Context, entry *cma.Entry, attrs map[string]interface{}, locale string) (*cma.Entry, error) {
	if entry == nil || !entry.IsPersisted() {
		return nil, cma.ErrEntryNotPersisted
	}

	schema, err := c.resolveSchema(ctx, entry)
	if err != nil {
		return nil, err
	}

	payload, err := cma.ComputeUpdatePayload(entry.Fields, attrs, c.targetLocale(locale, entry), schema)
	if err != nil {
		return nil, fmt.Errorf("computing update payload: %w", err)
	}

	path := "/spaces/" + entry.SpaceID() + "/entries/" + entry.Sys.ID

	resp, err := c.httpClient.Put(ctx, path, versionQuery(entry.Sys.Version), &entryRequest{Fields: payload})
	if err != nil {
		return nil, fmt.Errorf("updating entry %q: %w", entry.Sys.ID, err)
	}

	return c.buildEntry(resp.Body)
}

// Save implements cma.EntriesClient.Save: create when the entry has no
// server identity yet, update otherwise.
func (c *EntriesClient) Save(ctx context.Context, spaceID, contentTypeID string, entry *cma.Entry, attrs map[string]interface{}, locale string) (*cma.Entry, error) {
	if entry == nil || !entry.IsPersisted() {
		return c.Create(ctx, spaceID, contentTypeID, attrs)
	}

	return c.Update(ctx, entry, attrs, locale)
}

// Publish implements cma.EntriesClient.Publish.
func (c *EntriesClient) Publish(ctx context.Context, entry *cma.Entry) (*cma.Entry, error) {
	return c.lifecycle(ctx, entry, nethttp.MethodPut, "published", "publishing")
}

// Unpublish implements cma.EntriesClient.Unpublish.
func (c *EntriesClient) Unpublish(ctx context.Context, entry *cma.Entry) (*cma.Entry, error) {
	return c.lifecycle(ctx, entry, nethttp.MethodDelete, "published", "unpublishing")
}

// Archive implements cma.EntriesClient.Archive.
func (c *EntriesClient) Archive(ctx context.Context, entry *cma.Entry) (*cma.Entry, error) {
	return c.lifecycle(ctx, entry, nethttp.MethodPut, "archived", "archiving")
}

// Unarchive implements cma.EntriesClient.Unarchive.
func (c *EntriesClient) Unarchive(ctx context.Context, entry *cma.Entry) (*cma.Entry, error) {
	return c.lifecycle(ctx, entry, nethttp.MethodDelete, "archived", "unarchiving")
}

// Destroy implements cma.EntriesClient.Destroy. True means the entry is gone
// on the server; any rejection (published entries cannot be destroyed, for
// one) comes back as the error.
func (c *EntriesClient) Destroy(ctx context.Context, entry *cma.Entry) (bool, error) {
	if entry == nil || !entry.IsPersisted() {
		return false, cma.ErrEntryNotPersisted
	}

	path := "/spaces/" + entry.SpaceID() + "/entries/" + entry.Sys.ID

	_, err := c.httpClient.Delete(ctx, path, versionQuery(entry.Sys.Version))
	if err != nil {
		return false, fmt.Errorf("destroying entry %q: %w", entry.Sys.ID, err)
	}

	return true, nil
}

// lifecycle drives the published/archived sub-resource endpoints. PUT enters
// the state, DELETE leaves it; the server decides whether the transition is
// legal.
func (c *EntriesClient) lifecycle(ctx context.Context, entry *cma.Entry, method, subresource, action string) (*cma.Entry, error) {
	if entry == nil || !entry.IsPersisted() {
		return nil, cma.ErrEntryNotPersisted
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: method,
		Path:   "/spaces/" + entry.SpaceID() + "/entries/" + entry.Sys.ID + "/" + subresource,
		Query:  versionQuery(entry.Sys.Version),
	})
	if err != nil {
		return nil, fmt.Errorf("%s entry %q: %w", action, entry.Sys.ID, err)
	}

	return c.buildEntry(resp.Body)
}

// buildCreateBody resolves the content type schema and encodes the attributes
// at the default locale.
func (c *EntriesClient) buildCreateBody(ctx context.Context, spaceID, contentTypeID string, attrs map[string]interface{}) (*entryRequest, error) {
	schema, err := c.schemas.Resolve(ctx, spaceID, contentTypeID)
	if err != nil {
		return nil, err
	}

	payload, err := cma.ComputeUpdatePayload(nil, attrs, constants.DefaultLocale, schema)
	if err != nil {
		return nil, fmt.Errorf("encoding entry fields: %w", err)
	}

	return &entryRequest{Fields: payload}, nil
}

func (c *EntriesClient) buildEntry(raw []byte) (*cma.Entry, error) {
	entry, err := cma.BuildEntry(raw)
	if err != nil {
		return nil, err
	}

	entry.SetResolver(c.schemas, c.registry)

	return entry, nil
}

// resolveSchema returns the schema already bound to the entry, or resolves it
// through the cache when the entry has none yet.
func (c *EntriesClient) resolveSchema(ctx context.Context, entry *cma.Entry) (*cma.ContentTypeSchema, error) {
	if schema := entry.Schema(); schema != nil {
		return schema, nil
	}

	if entry.ContentTypeID() == "" {
		return nil, nil
	}

	schema, err := c.schemas.Resolve(ctx, entry.SpaceID(), entry.ContentTypeID())
	if err != nil {
		return nil, err
	}

	entry.BindSchema(schema)

	return schema, nil
}

// targetLocale picks the locale for an update: explicit argument, then the
// entry's own sys locale, then the client default.
func (c *EntriesClient) targetLocale(locale string, entry *cma.Entry) string {
	if locale != "" {
		return locale
	}

	if entry != nil && entry.Sys.Locale != "" {
		return entry.Sys.Locale
	}

	return constants.DefaultLocale
}

// versionQuery carries the optimistic concurrency token on mutating requests.
func versionQuery(version int) url.Values {
	query := url.Values{}
	query.Set("version", strconv.Itoa(version))

	return query
}
