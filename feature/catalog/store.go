package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resource-sync/core/storage"
	"resource-sync/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidItem is returned when an item cannot be stored.
var ErrInvalidItem = errors.New("invalid item")

// Store is a local item store with live reads.
type Store interface {
	// Watch emits the current item (nil when absent) and again after every Save of id.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, id int) <-chan *models.Item
	// Save inserts or replaces the item and notifies watchers.
	Save(ctx context.Context, item *models.Item) error
	// LastUpdated returns when id was last written locally.
	LastUpdated(ctx context.Context, id int) (time.Time, bool, error)
	// Delete drops the local copy of id and notifies watchers.
	Delete(ctx context.Context, id int) error
}

// NewStore builds the store selected by cfg.Store.
func NewStore(ctx context.Context, cfg Config, db *gorm.DB, objects storage.Client, bucket string, logger *zap.Logger) (Store, error) {
	switch cfg.Store {
	case StoreDatabase, "":
		if db == nil {
			return nil, fmt.Errorf("catalog store %q requires a database connection", StoreDatabase)
		}
		return NewDBStore(db, logger)
	case StoreObject:
		if objects == nil {
			return nil, fmt.Errorf("catalog store %q requires a storage client", StoreObject)
		}
		if err := storage.EnsureBucket(ctx, objects, bucket, ""); err != nil {
			return nil, err
		}
		return NewObjectStore(objects, bucket, logger), nil
	default:
		return nil, fmt.Errorf("unknown catalog store %q", cfg.Store)
	}
}

func itemKey(id int) string {
	return fmt.Sprintf("items/%d", id)
}

func validate(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("%w: nil", ErrInvalidItem)
	}
	if item.ID <= 0 {
		return fmt.Errorf("%w: id %d", ErrInvalidItem, item.ID)
	}
	return nil
}
