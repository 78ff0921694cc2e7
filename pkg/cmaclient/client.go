// Package cmaclient provides the main entry point for creating management API clients
package cmaclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentforge-io/cma-client/internal/client"
	"github.com/contentforge-io/cma-client/pkg/cma"
)

// New creates a new management API client from a full configuration.
func New(ctx context.Context, config *cma.Config) (cma.Client, error) {
	if config == nil {
		return nil, cma.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, cma.ErrEndpointRequired
	}

	// Normalize the endpoint
	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	cli, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithToken creates a new client with an API endpoint and access token.
func NewWithToken(ctx context.Context, endpoint, token string) (cma.Client, error) {
	return New(ctx, &cma.Config{
		Endpoint:    endpoint,
		AccessToken: token,
	})
}
