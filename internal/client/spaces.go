package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/contentforge-io/cma-client/internal/http"
	"github.com/contentforge-io/cma-client/pkg/cma"
)

// SpacesClient implements cma.SpacesClient.
type SpacesClient struct {
	httpClient *http.Client
}

// NewSpacesClient creates a new spaces client.
func NewSpacesClient(httpClient *http.Client) *SpacesClient {
	return &SpacesClient{httpClient: httpClient}
}

// Get implements cma.SpacesClient.Get.
func (c *SpacesClient) Get(ctx context.Context, spaceID string) (*cma.Space, error) {
	if spaceID == "" {
		return nil, cma.ErrSpaceIDRequired
	}

	resp, err := c.httpClient.Get(ctx, "/spaces/"+spaceID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting space: %w", err)
	}

	var space cma.Space

	err = json.Unmarshal(resp.Body, &space)
	if err != nil {
		return nil, fmt.Errorf("parsing space: %w", err)
	}

	return &space, nil
}
