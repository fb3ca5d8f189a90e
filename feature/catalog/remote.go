package catalog

import (
	"context"
	"fmt"

	"resource-sync/core/client"
	"resource-sync/core/network"
	"resource-sync/feature/catalog/models"
)

// Fetcher retrieves the authoritative copy of an item.
type Fetcher interface {
	FetchItem(ctx context.Context, id int) (*network.Response[models.Item], error)
}

// Remote fetches items from the remote API.
type Remote struct {
	client *client.Client
}

// NewRemote creates a Remote over c.
func NewRemote(c *client.Client) *Remote {
	return &Remote{client: c}
}

// FetchItem performs GET /items/{id}.
func (r *Remote) FetchItem(ctx context.Context, id int) (*network.Response[models.Item], error) {
	return client.Get[models.Item](ctx, r.client, fmt.Sprintf("/items/%d", id))
}
