package reconcile

import (
	"context"

	"resource-sync/core/network"
)

// Adapter supplies the store and transport behaviour reconciled by an Engine.
type Adapter[R, Q any] interface {
	// LoadFromLocal starts a live read of the local store. Every call must
	// return a new subscription that first yields the current value, then
	// every subsequent change. The channel must be closed once ctx is done.
	LoadFromLocal(ctx context.Context) <-chan R

	// Persist writes a remote value to the local store. Watchers started by
	// LoadFromLocal after Persist returns must observe the write.
	Persist(ctx context.Context, data *Q) error

	// FetchRemote performs the remote call. Errors are classified by the
	// engine's executor and never surface as raw errors.
	FetchRemote(ctx context.Context) (*network.Response[Q], error)
}

// AdapterFuncs adapts plain functions to the Adapter interface.
type AdapterFuncs[R, Q any] struct {
	Load  func(ctx context.Context) <-chan R
	Save  func(ctx context.Context, data *Q) error
	Fetch func(ctx context.Context) (*network.Response[Q], error)
}

// LoadFromLocal implements Adapter.
func (f AdapterFuncs[R, Q]) LoadFromLocal(ctx context.Context) <-chan R {
	return f.Load(ctx)
}

// Persist implements Adapter.
func (f AdapterFuncs[R, Q]) Persist(ctx context.Context, data *Q) error {
	return f.Save(ctx, data)
}

// FetchRemote implements Adapter.
func (f AdapterFuncs[R, Q]) FetchRemote(ctx context.Context) (*network.Response[Q], error) {
	return f.Fetch(ctx)
}
