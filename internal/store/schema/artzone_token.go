package schema

import (
	"time"
)

// ArtzoneToken represents the artzone_tokens table - the rich per-token record
// carrying supplies, royalty terms and resolved display metadata
type ArtzoneToken struct {
	// ID is the contract-scoped token identity, shared with the tokens row
	ID string `gorm:"column:id;primaryKey;type:text"`
	// TokenID references the thin tokens row
	TokenID string `gorm:"column:token_id;not null;uniqueIndex;type:text"`
	// MintedAt is the block timestamp of the event that created this record
	MintedAt uint64 `gorm:"column:minted_at;not null;default:0"`
	// SecondaryRoyalties is the royalty amount at the fixed basis-points sale
	// price (stored as string to support up to 78 digits)
	SecondaryRoyalties string `gorm:"column:secondary_royalties;not null;type:numeric(78,0)"`
	// RoyaltiesReceiver is the lowercased royalty receiver address, or "native"
	// when the contract exposes none
	RoyaltiesReceiver string `gorm:"column:royalties_receiver;not null;type:text"`
	// TotalMaxSupply is the maximum mintable supply reported by the contract
	TotalMaxSupply string `gorm:"column:total_max_supply;not null;type:numeric(78,0)"`
	// TotalSupply is the supply minted so far
	TotalSupply string `gorm:"column:total_supply;not null;type:numeric(78,0)"`
	// Name is the display name from the metadata document; nil until the
	// document resolves with all four display fields present
	Name *string `gorm:"column:name;type:text"`
	// Image is the display image URI from the metadata document
	Image *string `gorm:"column:image;type:text"`
	// Description is the display description from the metadata document
	Description *string `gorm:"column:description;type:text"`
	// ExternalURL is the display external link from the metadata document
	ExternalURL *string `gorm:"column:external_url;type:text"`
	// Artist is the artist attribution from the metadata document, set
	// independently of the display fields
	Artist *string `gorm:"column:artist;type:text"`
	// SyncingIndex is the position of this record in entity creation order
	SyncingIndex uint64 `gorm:"column:syncing_index;not null;index"`
	// CreatedAt is the timestamp when this record was first indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ArtzoneToken model
func (ArtzoneToken) TableName() string {
	return "artzone_tokens"
}
