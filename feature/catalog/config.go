package catalog

import "time"

const (
	// StoreDatabase keeps items in the SQL database.
	StoreDatabase = "database"
	// StoreObject keeps items as JSON objects in the storage bucket.
	StoreObject = "storage"
)

// Config holds configuration for the catalog feature.
type Config struct {
	// Store selects the local store backend (database, storage).
	Store string `mapstructure:"store" default:"database"`
	// RequestTimeoutSeconds bounds a single HTTP sync request.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" default:"90"`
}

// RequestTimeout returns the per-request deadline.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 90 * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
