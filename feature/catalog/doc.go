// Package catalog implements the item catalog feature.
//
// It keeps a local copy of remote catalog items and reconciles it with the remote
// API through the core/reconcile engine. Every read first shows the local copy
// (Loading), then either confirms it (Success, after a refresh when one was due) or
// reports why the refresh failed (Failure) while still carrying the local copy.
//
// # Stores
//
//   - DBStore: items in the catalog_items table (MySQL or SQLite through GORM).
//   - ObjectStore: items as JSON objects at items/<id>.json in the storage bucket.
//
// Both stores publish writes to an observe.Hub so watchers re-read after every Save.
// Config.Store selects the backend.
//
// # Fetch Policy
//
// A refresh happens when the item is absent locally, when it was synced longer ago
// than sync.stale_after_seconds, or when the caller forces it.
//
// # Components
//
//   - Remote: GET /items/{id} against the configured remote API.
//   - Adapter: binds a store and the remote for one id.
//   - Service: builds engines per request and exposes Sync and Resolve.
//   - Handler: Exposes HTTP endpoints.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /items/:id : Terminal state of a sync (200 Success, 502 Failure). ?refresh=true forces a fetch.
//   - GET /items/:id/states : Every state emitted up to the terminal one.
//   - DELETE /items/:id : Drop the local copy.
package catalog
