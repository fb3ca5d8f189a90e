// Package config provides configuration management for resource-sync.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional config.yaml, and an optional .env file (godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: SQL connection details for the local store
//   - Storage: S3/MinIO credentials and bucket settings for the object store
//   - Log: Logging level and format
//   - Client: remote API base URL, credentials, timeouts and retries
//   - Sync: fetch policy (staleness window, loading message)
//   - Catalog: which local store backs the catalog feature
//
// Defaults come from `default` struct tags; environment variables use the
// upper-cased key path (e.g. SYNC_STALE_AFTER_SECONDS).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Client.BaseURL)
package config
