// Package database handles database connections for the local store.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that opens either a
// MySQL connection or an SQLite database based on the application's configuration.
//
// # Connect
//
// Connect chooses the dialector from Config.Driver, applies pool settings and verifies
// the connection with a ping bounded by Config.TimeoutSeconds. SQLite is limited to a
// single open connection so that ":memory:" databases are shared by every query.
//
// # Ping
//
// Ping is used by the readiness endpoint to report whether the local store is reachable.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
