package cma

import (
	"context"
	"net/url"
	"time"
)

// EntriesClient manages entry resources and their lifecycle. State
// transitions are driven entirely by which endpoint variant is called; the
// remote service rejects invalid transitions, and that rejection surfaces as
// a request failure rather than client-side pre-validation.
type EntriesClient interface {
	Create(ctx context.Context, spaceID, contentTypeID string, attrs map[string]interface{}) (*Entry, error)
	CreateWithID(ctx context.Context, spaceID, contentTypeID, entryID string, attrs map[string]interface{}) (*Entry, error)
	Get(ctx context.Context, spaceID, entryID string) (*Entry, error)
	List(ctx context.Context, spaceID string, query url.Values) (*Collection[*Entry], error)
	Update(ctx context.Context, entry *Entry, attrs map[string]interface{}, locale string) (*Entry, error)
	Save(ctx context.Context, spaceID, contentTypeID string, entry *Entry, attrs map[string]interface{}, locale string) (*Entry, error)
	Publish(ctx context.Context, entry *Entry) (*Entry, error)
	Unpublish(ctx context.Context, entry *Entry) (*Entry, error)
	Archive(ctx context.Context, entry *Entry) (*Entry, error)
	Unarchive(ctx context.Context, entry *Entry) (*Entry, error)
	Destroy(ctx context.Context, entry *Entry) (bool, error)
}

// ContentTypesClient fetches content type schemas. Get doubles as the
// SchemaFetcher the schema cache resolves through.
type ContentTypesClient interface {
	SchemaFetcher

	Get(ctx context.Context, spaceID, contentTypeID string) (*ContentTypeSchema, error)
	List(ctx context.Context, spaceID string, query url.Values) (*Collection[*ContentTypeSchema], error)
	Publish(ctx context.Context, spaceID string, schema *ContentTypeSchema) (*ContentTypeSchema, error)
}

// AssetsClient manages asset resources with the same lifecycle sub-resource
// endpoints as entries, plus file processing.
type AssetsClient interface {
	Get(ctx context.Context, spaceID, assetID string) (*Asset, error)
	List(ctx context.Context, spaceID string, query url.Values) (*Collection[*Asset], error)
	Process(ctx context.Context, asset *Asset, locale string) error
	Publish(ctx context.Context, asset *Asset) (*Asset, error)
	Unpublish(ctx context.Context, asset *Asset) (*Asset, error)
	Archive(ctx context.Context, asset *Asset) (*Asset, error)
	Unarchive(ctx context.Context, asset *Asset) (*Asset, error)
	Destroy(ctx context.Context, asset *Asset) (bool, error)
}

// SpacesClient is the narrow space collaborator: identity and default locale.
type SpacesClient interface {
	Get(ctx context.Context, spaceID string) (*Space, error)
}

// Client is the management API client surface.
type Client interface {
	Entries() EntriesClient
	ContentTypes() ContentTypesClient
	Assets() AssetsClient
	Spaces() SpacesClient

	// Schemas exposes the session's schema cache for explicit invalidation.
	Schemas() *SchemaCache
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a cma.Client.
//
// The platform authenticates with a static personal access token sent as a
// Bearer header on every request. Per-request timeouts should generally be
// controlled via context; retry behavior applies only to transient failures
// (429, 5xx, connection errors) — version conflicts are never retried.
type Config struct {
	// Endpoint: base URL for the management API
	// (e.g., "https://api.example.com"). cmaclient.New normalizes this value
	// by trimming a trailing slash and adding "https://" if no scheme is
	// present.
	Endpoint string

	// AccessToken: personal access token used as a static Bearer token.
	AccessToken string

	// SpaceID: default space for CLI and convenience helpers; client methods
	// take an explicit space id.
	SpaceID string

	// HTTPTimeout: optional default HTTP timeout where supported.
	HTTPTimeout time.Duration

	// RetryMax: maximum number of retries for transient failures. If 0, a
	// sensible default is used by the client.
	RetryMax int

	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration

	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration

	// Debug: enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool

	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger

	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string

	// Cache: schema cache backend configuration; nil uses the in-memory
	// default.
	Cache *CacheConfig
}
