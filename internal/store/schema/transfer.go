package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Transfer represents the transfers table - one immutable row per transfer
// leg, keyed by txHash-logIndex-tokenNumber so batch legs never collide
type Transfer struct {
	// ID is the transfer identity in format: txHash-logIndex-tokenNumber,
	// with the hash lowercased
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Hash is the lowercased transaction hash
	Hash string `gorm:"column:hash;not null;type:text;index"`
	// TokenID references the tokens row this leg moved
	TokenID string `gorm:"column:token_id;not null;type:text;index"`
	// From is the lowercased sender address
	From string `gorm:"column:from;not null;type:text;index"`
	// To is the lowercased recipient address
	To string `gorm:"column:to;not null;type:text;index"`
	// Value is the quantity moved (stored as string to support up to 78 digits)
	Value string `gorm:"column:value;not null;type:numeric(78,0)"`
	// BlockNumber is the block the transfer was mined in
	BlockNumber uint64 `gorm:"column:block_number;not null"`
	// Timestamp is the block timestamp of the transfer
	Timestamp uint64 `gorm:"column:timestamp;not null"`
	// SyncingIndex is the position of this record in entity creation order
	SyncingIndex uint64 `gorm:"column:syncing_index;not null;index"`
	// Raw is the normalized source event this leg was derived from
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was first indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Transfer model
func (Transfer) TableName() string {
	return "transfers"
}
