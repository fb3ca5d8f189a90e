package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"resource-sync/core/observe"
	"resource-sync/core/storage"
	"resource-sync/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectStore keeps items as JSON objects under items/<id>.json.
type ObjectStore struct {
	client storage.Client
	bucket string
	hub    *observe.Hub
	logger *zap.Logger
	now    func() time.Time
}

// NewObjectStore creates a store over bucket. The bucket must exist.
func NewObjectStore(client storage.Client, bucket string, logger *zap.Logger) *ObjectStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObjectStore{
		client: client,
		bucket: bucket,
		hub:    observe.NewHub(),
		logger: logger,
		now:    time.Now,
	}
}

// Watch implements Store.
func (s *ObjectStore) Watch(ctx context.Context, id int) <-chan *models.Item {
	return observe.Watch[*models.Item](ctx, s.hub, itemKey(id), func(ctx context.Context) (*models.Item, error) {
		return s.find(ctx, id)
	}, s.logger)
}

// Save implements Store.
func (s *ObjectStore) Save(ctx context.Context, item *models.Item) error {
	if err := validate(item); err != nil {
		return err
	}

	row := *item
	row.SyncedAt = s.now()

	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode item %d: %w", item.ID, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectName(item.ID), bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload item %d: %w", item.ID, err)
	}

	s.hub.Publish(itemKey(item.ID))
	return nil
}

// LastUpdated implements Store. It reads object metadata only.
func (s *ObjectStore) LastUpdated(ctx context.Context, id int) (time.Time, bool, error) {
	info, err := s.client.StatObject(ctx, s.bucket, objectName(id), minio.StatObjectOptions{})
	if storage.IsNotFound(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to stat item %d: %w", id, err)
	}
	return info.LastModified, true, nil
}

// Delete implements Store.
func (s *ObjectStore) Delete(ctx context.Context, id int) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName(id), minio.RemoveObjectOptions{}); err != nil && !storage.IsNotFound(err) {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	s.hub.Publish(itemKey(id))
	return nil
}

func (s *ObjectStore) find(ctx context.Context, id int) (*models.Item, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName(id), minio.GetObjectOptions{})
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	defer obj.Close()

	// minio defers the not-found error to the first read
	body, err := io.ReadAll(obj)
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read item %d: %w", id, err)
	}

	var item models.Item
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("failed to decode item %d: %w", id, err)
	}
	return &item, nil
}

func objectName(id int) string {
	return itemKey(id) + ".json"
}
