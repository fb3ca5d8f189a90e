package models

import "time"

// Item is a catalog entry mirrored from the remote API.
type Item struct {
	// ID is assigned by the remote API.
	ID int `gorm:"primaryKey;autoIncrement:false" json:"id"`
	// Name is the display name.
	Name string `gorm:"size:255" json:"name"`
	// UpdatedAt is the remote modification time, kept as received.
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	// SyncedAt is when the local copy was last written.
	SyncedAt time.Time `gorm:"index" json:"synced_at"`
}

// TableName overrides the GORM table name.
func (Item) TableName() string {
	return "catalog_items"
}
