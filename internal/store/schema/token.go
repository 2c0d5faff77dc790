package schema

import (
	"time"
)

// Token represents the tokens table - the thin per-token row keyed by the
// contract-scoped identity "contract-tokenNumber"
type Token struct {
	// ID is the contract-scoped token identity in format: contract-tokenNumber
	// (e.g., "0xabc...-12"), with the contract address lowercased
	ID string `gorm:"column:id;primaryKey;type:text"`
	// ContractAddress is the lowercased address of the minter contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text;index:idx_tokens_contract_number,priority:1"`
	// TokenNumber is the token ID within the contract (string to support very large numbers)
	TokenNumber string `gorm:"column:token_number;not null;type:text;index:idx_tokens_contract_number,priority:2"`
	// CreatedAt is the timestamp when this record was first indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Record    *ArtzoneToken `gorm:"foreignKey:TokenID;constraint:OnDelete:CASCADE"`
	Transfers []Transfer    `gorm:"foreignKey:TokenID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
