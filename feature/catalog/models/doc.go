// Package models defines the catalog entities shared by the stores, the remote
// client and the HTTP handler.
package models
