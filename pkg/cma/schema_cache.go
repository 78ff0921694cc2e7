package cma

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// SchemaFetcher fetches a content type schema over the transport boundary.
// Implemented by the content types client.
type SchemaFetcher interface {
	FetchSchema(ctx context.Context, spaceID, contentTypeID string) (*ContentTypeSchema, error)
}

// SchemaCache lazily resolves and caches content type schemas for the
// lifetime of the client session. Population is guarded by one lock per
// content type id so concurrent first accesses fetch once; reads of an
// already-populated entry are lock-free against other keys. Entries are
// invalidated only by explicit Invalidate or Clear — staleness is accepted.
type SchemaCache struct {
	backend Cache
	fetcher SchemaFetcher
	options *CacheOptions

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSchemaCache creates a schema cache over the given backend. A nil backend
// gets a default memory cache; nil options get DefaultCacheOptions.
func NewSchemaCache(backend Cache, fetcher SchemaFetcher, options *CacheOptions) *SchemaCache {
	if backend == nil {
		backend = NewMemoryCache(0)
	}

	if options == nil {
		options = DefaultCacheOptions()
	}

	return &SchemaCache{
		backend: backend,
		fetcher: fetcher,
		options: options,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Resolve returns the schema for a content type, fetching on a cache miss and
// storing the result for the session's remaining lifetime. A fetch failure
// propagates to the caller uncaught; it is not retried here.
func (c *SchemaCache) Resolve(ctx context.Context, spaceID, contentTypeID string) (*ContentTypeSchema, error) {
	if contentTypeID == "" {
		return nil, ErrContentTypeRequired
	}

	key := cacheKey(spaceID, contentTypeID)

	if schema, ok := c.lookup(ctx, key); ok {
		return schema, nil
	}

	lock := c.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	// Another resolver may have populated the key while we waited.
	if schema, ok := c.lookup(ctx, key); ok {
		return schema, nil
	}

	schema, err := c.fetcher.FetchSchema(ctx, spaceID, contentTypeID)
	if err != nil {
		return nil, fmt.Errorf("resolving schema for content type %q: %w", contentTypeID, err)
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("serializing schema %q: %w", contentTypeID, err)
	}

	now := time.Now()
	entry := &CacheEntry{Data: data, CreatedAt: now}

	if c.options.DefaultTTL > 0 {
		entry.ExpiresAt = now.Add(c.options.DefaultTTL)
	}

	_ = c.backend.Set(ctx, key, entry)

	return schema, nil
}

// Invalidate drops a cached schema, forcing a re-fetch on next resolve. This
// is the only invalidation path besides Clear.
func (c *SchemaCache) Invalidate(ctx context.Context, spaceID, contentTypeID string) error {
	return c.backend.Delete(ctx, cacheKey(spaceID, contentTypeID))
}

// Clear drops every cached schema.
func (c *SchemaCache) Clear(ctx context.Context) error {
	return c.backend.Clear(ctx)
}

func (c *SchemaCache) lookup(ctx context.Context, key string) (*ContentTypeSchema, bool) {
	entry, err := c.backend.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var schema ContentTypeSchema

	err = json.Unmarshal(entry.Data, &schema)
	if err != nil {
		return nil, false
	}

	return &schema, true
}

func (c *SchemaCache) keyLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[key] = lock
	}

	return lock
}

func cacheKey(spaceID, contentTypeID string) string {
	return "schema:" + spaceID + ":" + contentTypeID
}
