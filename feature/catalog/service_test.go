package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"resource-sync/core/apierr"
	"resource-sync/core/network"
	"resource-sync/core/reconcile"
	"resource-sync/core/resource"
	"resource-sync/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resolve(t *testing.T, svc *Service, id int, force bool) ItemResource {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	final, seen, err := svc.Resolve(ctx, id, force)
	require.NoError(t, err)
	require.NotEmpty(t, seen)
	return final
}

// syncGated reads the first state of a sync before letting the gated remote answer.
func syncGated(t *testing.T, svc *Service, id int, remote *stubFetcher) []ItemResource {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	states := svc.Sync(ctx, id, false)
	var first ItemResource
	select {
	case first = <-states:
	case <-ctx.Done():
		t.Fatal("no first state")
	}
	close(remote.gate)

	rest, err := reconcile.Collect(ctx, states)
	require.NoError(t, err)

	cancel()
	for range states {
	}
	return append([]ItemResource{first}, rest...)
}

func TestService_Resolve(t *testing.T) {
	syncCfg := reconcile.Config{StaleAfterSeconds: 300, LoadingMessage: "Syncing"}

	t.Run("Absent Item Is Fetched", func(t *testing.T) {
		store := newTestDBStore(t)
		remote := gatedFetcher(models.Item{ID: 1, Name: "remote"})
		svc := NewService(store, remote, syncCfg, nil, zap.NewNop())

		seen := syncGated(t, svc, 1, remote)
		final := seen[len(seen)-1]

		require.Len(t, seen, 2)
		assert.Equal(t, resource.StatusLoading, seen[0].Status)
		assert.Equal(t, "Syncing", seen[0].Message)
		assert.Nil(t, seen[0].Data)

		assert.True(t, final.IsSuccess())
		require.NotNil(t, final.Data)
		assert.Equal(t, "remote", final.Data.Name)
		assert.Equal(t, 1, remote.callCount())
	})

	t.Run("Fresh Item Skips Fetch", func(t *testing.T) {
		store := newTestDBStore(t)
		require.NoError(t, store.Save(context.Background(), &models.Item{ID: 2, Name: "local"}))
		remote := okFetcher(models.Item{ID: 2, Name: "remote"})
		svc := NewService(store, remote, syncCfg, nil, zap.NewNop())

		for i := 0; i < 20; i++ {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			final, seen, err := svc.Resolve(ctx, 2, false)
			cancel()
			require.NoError(t, err)

			require.Len(t, seen, 1, "fresh item must not emit Loading")
			assert.True(t, final.IsSuccess())
			assert.Equal(t, "local", final.Data.Name)
		}
		assert.Equal(t, 0, remote.callCount())
	})

	t.Run("Loading Precedes Result Without Delay", func(t *testing.T) {
		store := newTestDBStore(t)
		store.now = func() time.Time { return time.Now().Add(-time.Hour) }
		require.NoError(t, store.Save(context.Background(), &models.Item{ID: 10, Name: "old"}))
		remote := okFetcher(models.Item{ID: 10, Name: "new"})
		svc := NewService(store, remote, syncCfg, nil, zap.NewNop())

		for i := 0; i < 20; i++ {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			final, seen, err := svc.Resolve(ctx, 10, false)
			cancel()
			require.NoError(t, err)

			require.GreaterOrEqual(t, len(seen), 2)
			assert.True(t, seen[0].IsLoading())
			assert.True(t, final.IsSuccess())
			assert.Equal(t, "new", final.Data.Name)

			// Keep the copy stale for the next round
			require.NoError(t, store.Save(context.Background(), &models.Item{ID: 10, Name: "old"}))
		}
	})

	t.Run("Stale Item Is Refreshed", func(t *testing.T) {
		store := newTestDBStore(t)
		store.now = func() time.Time { return time.Now().Add(-time.Hour) }
		require.NoError(t, store.Save(context.Background(), &models.Item{ID: 3, Name: "old"}))
		remote := gatedFetcher(models.Item{ID: 3, Name: "new"})
		svc := NewService(store, remote, syncCfg, nil, zap.NewNop())

		seen := syncGated(t, svc, 3, remote)
		final := seen[len(seen)-1]

		assert.True(t, seen[0].IsLoading())
		assert.Equal(t, "old", seen[0].Data.Name)
		assert.Equal(t, "new", final.Data.Name)
		assert.Equal(t, 1, remote.callCount())
	})

	t.Run("Force Bypasses Freshness", func(t *testing.T) {
		store := newTestDBStore(t)
		require.NoError(t, store.Save(context.Background(), &models.Item{ID: 4, Name: "local"}))
		remote := okFetcher(models.Item{ID: 4, Name: "forced"})
		svc := NewService(store, remote, syncCfg, nil, zap.NewNop())

		final := resolve(t, svc, 4, true)

		assert.Equal(t, "forced", final.Data.Name)
		assert.Equal(t, 1, remote.callCount())
	})

	t.Run("Network Failure Keeps Local Copy", func(t *testing.T) {
		store := newTestDBStore(t)
		require.NoError(t, store.Save(context.Background(), &models.Item{ID: 5, Name: "cached"}))
		remote := &stubFetcher{err: errors.New("connection refused")}
		svc := NewService(store, remote, reconcile.Config{}, nil, zap.NewNop())

		final := resolve(t, svc, 5, false)

		assert.True(t, final.IsFailure())
		assert.Equal(t, apierr.KindNetwork, final.Err.Kind)
		require.NotNil(t, final.Data)
		assert.Equal(t, "cached", final.Data.Name)
	})

	t.Run("Server Failure", func(t *testing.T) {
		store := newTestDBStore(t)
		remote := &stubFetcher{resp: &network.Response[models.Item]{StatusCode: 503, Raw: []byte(`{"message":"maintenance"}`)}}
		svc := NewService(store, remote, syncCfg, nil, zap.NewNop())

		final := resolve(t, svc, 6, false)

		assert.True(t, final.IsFailure())
		assert.Equal(t, apierr.KindServer, final.Err.Kind)
		assert.Equal(t, "maintenance", final.Err.Message)
		assert.Nil(t, final.Data)
	})

	t.Run("Mismatched Body Is Not Persisted", func(t *testing.T) {
		store := newTestDBStore(t)
		remote := okFetcher(models.Item{ID: 99, Name: "wrong"})
		svc := NewService(store, remote, syncCfg, nil, zap.NewNop())

		final := resolve(t, svc, 7, false)

		assert.True(t, final.IsFailure())
		assert.Equal(t, apierr.KindUnknown, final.Err.Kind)
		item, err := store.find(context.Background(), 7)
		require.NoError(t, err)
		assert.Nil(t, item)
	})
}

func TestService_SyncStaysLive(t *testing.T) {
	store := newTestDBStore(t)
	remote := okFetcher(models.Item{ID: 1, Name: "first"})
	svc := NewService(store, remote, reconcile.Config{StaleAfterSeconds: 300}, nil, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	states := svc.Sync(ctx, 1, false)
	seen, err := reconcile.Collect(ctx, states)
	require.NoError(t, err)
	require.True(t, seen[len(seen)-1].IsSuccess())

	require.NoError(t, store.Save(ctx, &models.Item{ID: 1, Name: "edited"}))

	select {
	case next := <-states:
		assert.True(t, next.IsSuccess())
		assert.Equal(t, "edited", next.Data.Name)
	case <-ctx.Done():
		t.Fatal("no emission after local write")
	}

	cancel()
	for range states {
	}
}

func TestService_Forget(t *testing.T) {
	store := newTestDBStore(t)
	require.NoError(t, store.Save(context.Background(), &models.Item{ID: 9, Name: "x"}))
	svc := NewService(store, &stubFetcher{}, reconcile.Config{}, nil, nil)

	require.NoError(t, svc.Forget(context.Background(), 9))
	_, ok, err := store.LastUpdated(context.Background(), 9)
	assert.NoError(t, err)
	assert.False(t, ok)
}
