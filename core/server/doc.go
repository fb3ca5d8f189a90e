// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for the listener and the routes exempt from
// authentication.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, metrics route and the graceful
// shutdown deadline.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by cmd/start.go to build the Fiber application.
package server
