package catalog

import (
	"context"
	"time"

	"resource-sync/core/network"
	"resource-sync/core/reconcile"
	"resource-sync/core/resource"
	"resource-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// ItemResource is a synchronization state of one item.
type ItemResource = resource.Resource[*models.Item]

// Service synchronizes catalog items between the local store and the remote API.
type Service struct {
	store    Store
	remote   Fetcher
	sync     reconcile.Config
	metrics  *reconcile.Metrics
	executor *network.Executor
	logger   *zap.Logger
}

// NewService creates a new catalog service. metrics may be nil.
func NewService(store Store, remote Fetcher, sync reconcile.Config, metrics *reconcile.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		remote:   remote,
		sync:     sync,
		metrics:  metrics,
		executor: network.NewExecutor(network.WithLogger(logger)),
		logger:   logger,
	}
}

// Sync starts a reconciliation of item id. The local copy is refreshed when it is
// absent, older than the configured staleness window, or when force is set.
// The channel stays open, following local changes, until ctx is done.
func (s *Service) Sync(ctx context.Context, id int, force bool) <-chan ItemResource {
	return s.engine(ctx, id, force).Run(ctx)
}

// Resolve runs a reconciliation of id to its first terminal state.
// It returns the terminal state and every state emitted up to it.
func (s *Service) Resolve(ctx context.Context, id int, force bool) (ItemResource, []ItemResource, error) {
	return s.engine(ctx, id, force).Terminal(ctx)
}

// Peek fetches id from the remote API without reading or writing the local store.
func (s *Service) Peek(ctx context.Context, id int) resource.Resource[models.Item] {
	result := network.Execute[models.Item](ctx, s.executor, func(ctx context.Context) (*network.Response[models.Item], error) {
		return s.remote.FetchItem(ctx, id)
	})
	return network.ToResource(result)
}

// Forget drops the local copy of id.
func (s *Service) Forget(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) engine(ctx context.Context, id int, force bool) *reconcile.Engine[*models.Item, models.Item] {
	logger := s.logger.With(zap.Int("item_id", id))

	policy := reconcile.Always()
	if !force {
		policy = reconcile.StaleAfter(s.sync.StaleAfter(), func() (time.Time, bool) {
			updated, ok, err := s.store.LastUpdated(ctx, id)
			if err != nil {
				// Unknown freshness counts as stale
				logger.Warn("Failed to read item freshness", zap.Error(err))
				return time.Time{}, false
			}
			return updated, ok
		})
	}

	return reconcile.New[*models.Item, models.Item](
		NewAdapter(id, s.store, s.remote),
		reconcile.WithName("catalog"),
		reconcile.WithShouldFetch(policy),
		reconcile.WithLoadingMessage(s.sync.LoadingMessage),
		reconcile.WithLogger(logger),
		reconcile.WithMetrics(s.metrics),
	)
}
