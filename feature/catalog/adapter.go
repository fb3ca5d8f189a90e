package catalog

import (
	"context"
	"fmt"

	"resource-sync/core/network"
	"resource-sync/feature/catalog/models"
)

// Adapter binds a store and a fetcher for a single item id.
// It implements reconcile.Adapter[*models.Item, models.Item].
type Adapter struct {
	id     int
	store  Store
	remote Fetcher
}

// NewAdapter creates an adapter for id.
func NewAdapter(id int, store Store, remote Fetcher) *Adapter {
	return &Adapter{id: id, store: store, remote: remote}
}

// LoadFromLocal watches the stored item.
func (a *Adapter) LoadFromLocal(ctx context.Context) <-chan *models.Item {
	return a.store.Watch(ctx, a.id)
}

// Persist stores the fetched item under the adapter's id.
// A body without an id is assigned the requested one.
func (a *Adapter) Persist(ctx context.Context, item *models.Item) error {
	if item == nil {
		return fmt.Errorf("%w: empty body for item %d", ErrInvalidItem, a.id)
	}
	row := *item
	if row.ID == 0 {
		row.ID = a.id
	}
	if row.ID != a.id {
		return fmt.Errorf("%w: remote returned item %d for id %d", ErrInvalidItem, row.ID, a.id)
	}
	return a.store.Save(ctx, &row)
}

// FetchRemote fetches the item from the remote API.
func (a *Adapter) FetchRemote(ctx context.Context) (*network.Response[models.Item], error) {
	return a.remote.FetchItem(ctx, a.id)
}
