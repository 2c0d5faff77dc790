package schema

import (
	"time"
)

// UserBalance represents the user_balances table - per-holder, per-token
// edition counts with lifetime sent/received totals
type UserBalance struct {
	// ID is the balance identity in format: holder-tokenNumber-contract, with
	// both addresses lowercased
	ID string `gorm:"column:id;primaryKey;type:text"`
	// UserID is the lowercased holder address
	UserID string `gorm:"column:user_id;not null;type:text;index:idx_user_balances_user_token,priority:1"`
	// TokenNumber is the token ID within the contract
	TokenNumber string `gorm:"column:token_number;not null;type:text;index:idx_user_balances_user_token,priority:2"`
	// ContractAddress is the lowercased address of the minter contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// Balance is the holder's current edition count. Signed on purpose: an
	// out-of-order replay can drive it negative, and the raw value is kept
	// visible rather than clamped.
	Balance string `gorm:"column:balance;not null;type:numeric(78,0)"`
	// TotalSent is the lifetime quantity sent by this holder for this token
	TotalSent string `gorm:"column:total_sent;not null;type:numeric(78,0)"`
	// TotalReceived is the lifetime quantity received by this holder for this token
	TotalReceived string `gorm:"column:total_received;not null;type:numeric(78,0)"`
	// SyncingIndex is the position of this record in entity creation order
	SyncingIndex uint64 `gorm:"column:syncing_index;not null;index"`
	// CreatedAt is the timestamp when this balance was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the UserBalance model
func (UserBalance) TableName() string {
	return "user_balances"
}
