package observe

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Hub fans write notifications out to the watchers of a key.
type Hub struct {
	mu       sync.Mutex
	next     uint64
	watchers map[string]map[uint64]chan struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{watchers: make(map[string]map[uint64]chan struct{})}
}

// Publish notifies every watcher of key that its data changed.
// It never blocks.
func (h *Hub) Publish(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.watchers[key] {
		select {
		case ch <- struct{}{}:
		default:
			// A re-query is already pending.
		}
	}
}

// Watchers returns the number of live watchers of key.
func (h *Hub) Watchers(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers[key])
}

func (h *Hub) subscribe(key string) (uint64, <-chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	id := h.next
	ch := make(chan struct{}, 1)
	if h.watchers[key] == nil {
		h.watchers[key] = make(map[uint64]chan struct{})
	}
	h.watchers[key][id] = ch
	return id, ch
}

func (h *Hub) unsubscribe(key string, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.watchers[key], id)
	if len(h.watchers[key]) == 0 {
		delete(h.watchers, key)
	}
}

// Query reads the current value of a watched key.
type Query[T any] func(ctx context.Context) (T, error)

// Watch emits the result of query immediately and again after every Publish
// of key, until ctx is cancelled. The returned channel is closed when the
// watch ends.
//
// Query errors are logged and skipped; the watcher keeps waiting for the next
// notification. Failures of the store itself are the store's responsibility.
func Watch[T any](ctx context.Context, h *Hub, key string, query Query[T], logger *zap.Logger) <-chan T {
	if logger == nil {
		logger = zap.NewNop()
	}

	out := make(chan T)
	// Subscribe before the first read so no write between the two is missed.
	id, notify := h.subscribe(key)

	go func() {
		defer close(out)
		defer h.unsubscribe(key, id)

		for {
			value, err := query(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("Local read failed", zap.String("key", key), zap.Error(err))
			} else {
				select {
				case out <- value:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-notify:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
