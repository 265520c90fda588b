package models

import "time"

// KVEntry is one key of the SQL storage backend. Values are opaque text; the
// services above encode their record sets as JSON.
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;type:text;primaryKey"`
	Value     string    `gorm:"column:entry_value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table created by the storage migration.
func (KVEntry) TableName() string {
	return "kv_entries"
}
