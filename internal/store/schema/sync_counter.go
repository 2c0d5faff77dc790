package schema

import "time"

// SyncCounter stores a named monotonic sequence used to stamp entities with
// their position in creation order. Counters survive restarts with the rest
// of the store.
type SyncCounter struct {
	Name      string    `gorm:"primaryKey;type:text"`
	Value     uint64    `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SyncCounter) TableName() string {
	return "sync_counters"
}
