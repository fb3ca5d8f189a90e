package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"resource-sync/core/database"
	"resource-sync/core/network"
	"resource-sync/feature/catalog/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubFetcher answers every FetchItem with a fixed response.
// A non-nil gate holds the answer until it is closed.
type stubFetcher struct {
	mu    sync.Mutex
	calls int
	resp  *network.Response[models.Item]
	err   error
	gate  chan struct{}
}

func (f *stubFetcher) FetchItem(ctx context.Context, id int) (*network.Response[models.Item], error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.resp, f.err
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func okFetcher(item models.Item) *stubFetcher {
	return &stubFetcher{resp: &network.Response[models.Item]{StatusCode: 200, Body: &item}}
}

func gatedFetcher(item models.Item) *stubFetcher {
	f := okFetcher(item)
	f.gate = make(chan struct{})
	return f
}

func newTestDBStore(t *testing.T) *DBStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store, err := NewDBStore(db, zap.NewNop())
	require.NoError(t, err)
	return store
}

func receive(t *testing.T, ch <-chan *models.Item) *models.Item {
	t.Helper()
	select {
	case item, ok := <-ch:
		require.True(t, ok, "watch closed")
		return item
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch")
		return nil
	}
}
