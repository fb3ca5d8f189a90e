// Package observe turns pull-based local stores into live, push-based reads.
//
// A Hub tracks watchers per key. Writers call Publish(key) after a successful
// write; every watcher of that key re-runs its query and emits the fresh
// value. Watch returns a new channel for every call, so the same store read can
// be subscribed any number of times, and each subscription starts from the
// current state rather than a cached snapshot.
//
// Notifications are coalesced: a watcher that is busy delivering a value sees
// at most one pending re-query, which always reads the latest state.
//
// # Usage
//
//	hub := observe.NewHub()
//	ch := observe.Watch(ctx, hub, "item:1", func(ctx context.Context) (*Item, error) {
//	    return store.Find(ctx, 1)
//	}, log)
//
//	// elsewhere, after a write
//	hub.Publish("item:1")
package observe
