// Package client implements the cma.Client interface: resource clients over
// the shared transport, plus the session-scoped schema cache and accessor
// registry that entries resolve through.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/contentforge-io/cma-client/internal/constants"
	"github.com/contentforge-io/cma-client/internal/http"
	"github.com/contentforge-io/cma-client/pkg/cma"
)

// Client implements the cma.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     cma.Logger

	schemaCache *cma.SchemaCache
	registry    *cma.AccessorRegistry

	entries      cma.EntriesClient
	contentTypes cma.ContentTypesClient
	assets       cma.AssetsClient
	spaces       cma.SpacesClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *cma.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := 1 * time.Second
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new management API client.
func New(ctx context.Context, config *cma.Config) (*Client, error) {
	if config == nil {
		return nil, cma.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, cma.ErrEndpointRequired
	}

	httpOpts := createHTTPClientOptions(config)

	tokens := &http.StaticTokenProvider{AccessToken: config.AccessToken}
	httpClient := http.NewClient(config.Endpoint, tokens, httpOpts...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.Endpoint,
		logger:     config.Logger,
	}

	err := client.initializeResourceClients(config.Cache)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// initializeResourceClients wires the resource clients, the schema cache, and
// the shared accessor registry. The content types client doubles as the
// cache's fetcher, so it is built first.
func (c *Client) initializeResourceClients(cacheConfig *cma.CacheConfig) error {
	backend, err := cma.NewCacheFromConfig(cacheConfig)
	if err != nil {
		return fmt.Errorf("creating schema cache backend: %w", err)
	}

	var options *cma.CacheOptions
	if cacheConfig != nil {
		options = cacheConfig.Options
	}

	contentTypes := NewContentTypesClient(c.httpClient)

	c.registry = cma.NewAccessorRegistry()
	c.schemaCache = cma.NewSchemaCache(backend, contentTypes, options)

	c.contentTypes = contentTypes
	c.entries = NewEntriesClient(c.httpClient, c.schemaCache, c.registry)
	c.assets = NewAssetsClient(c.httpClient)
	c.spaces = NewSpacesClient(c.httpClient)

	return nil
}

// Entries implements cma.Client.Entries.
func (c *Client) Entries() cma.EntriesClient {
	return c.entries
}

// ContentTypes implements cma.Client.ContentTypes.
func (c *Client) ContentTypes() cma.ContentTypesClient {
	return c.contentTypes
}

// Assets implements cma.Client.Assets.
func (c *Client) Assets() cma.AssetsClient {
	return c.assets
}

// Spaces implements cma.Client.Spaces.
func (c *Client) Spaces() cma.SpacesClient {
	return c.spaces
}

// Schemas implements cma.Client.Schemas.
func (c *Client) Schemas() *cma.SchemaCache {
	return c.schemaCache
}

// loggerAdapter adapts cma.Logger to http.Logger.
type loggerAdapter struct {
	logger cma.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
