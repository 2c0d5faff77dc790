package schema

import (
	"time"
)

// User represents the users table - one row per address ever seen as a
// transfer counterparty, including the zero address
type User struct {
	// ID is the lowercased holder address
	ID string `gorm:"column:id;primaryKey;type:text"`
	// SyncingIndex is the position of this record in entity creation order
	SyncingIndex uint64 `gorm:"column:syncing_index;not null;index"`
	// CreatedAt is the timestamp when this record was first indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Balances []UserBalance `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
