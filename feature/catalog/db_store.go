package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resource-sync/core/observe"
	"resource-sync/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBStore keeps items in a SQL table.
type DBStore struct {
	db     *gorm.DB
	hub    *observe.Hub
	logger *zap.Logger
	now    func() time.Time
}

// NewDBStore migrates the items table and returns a store over it.
func NewDBStore(db *gorm.DB, logger *zap.Logger) (*DBStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := db.AutoMigrate(&models.Item{}); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog items: %w", err)
	}
	return &DBStore{
		db:     db,
		hub:    observe.NewHub(),
		logger: logger,
		now:    time.Now,
	}, nil
}

// Watch implements Store.
func (s *DBStore) Watch(ctx context.Context, id int) <-chan *models.Item {
	return observe.Watch[*models.Item](ctx, s.hub, itemKey(id), func(ctx context.Context) (*models.Item, error) {
		return s.find(ctx, id)
	}, s.logger)
}

// Save implements Store.
func (s *DBStore) Save(ctx context.Context, item *models.Item) error {
	if err := validate(item); err != nil {
		return err
	}

	row := *item
	row.SyncedAt = s.now()

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save item %d: %w", item.ID, err)
	}

	s.hub.Publish(itemKey(item.ID))
	return nil
}

// LastUpdated implements Store.
func (s *DBStore) LastUpdated(ctx context.Context, id int) (time.Time, bool, error) {
	item, err := s.find(ctx, id)
	if err != nil || item == nil {
		return time.Time{}, false, err
	}
	return item.SyncedAt, true, nil
}

// Delete implements Store.
func (s *DBStore) Delete(ctx context.Context, id int) error {
	if err := s.db.WithContext(ctx).Delete(&models.Item{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	s.hub.Publish(itemKey(id))
	return nil
}

func (s *DBStore) find(ctx context.Context, id int) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load item %d: %w", id, err)
	}
	return &item, nil
}
