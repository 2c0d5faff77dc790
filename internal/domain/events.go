package domain

import (
	"fmt"
	"math/big"
)

// EventType represents the kind of minter contract event
type EventType string

const (
	EventTypeTransferSingle      EventType = "transfer_single"
	EventTypeTransferBatch       EventType = "transfer_batch"
	EventTypeTokenInitialisation EventType = "token_initialisation"
	EventTypeTokenMint           EventType = "token_mint"
)

// Event is the normalized minter contract event delivered to the reconciler.
// One struct covers all four shapes; Type selects which fields are populated.
// All token quantities are decimal strings to survive JSON transport without
// precision loss.
type Event struct {
	Type            EventType `json:"type"`
	ContractAddress string    `json:"contract_address"`

	// Transfer fields (single and batch)
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	// TokenNumber is the logical token id for single transfer, initialisation
	// and mint events
	TokenNumber string `json:"token_number,omitempty"`
	// Quantity is the transferred value for single transfers and the minted
	// quantity for mint events
	Quantity string `json:"quantity,omitempty"`

	// Batch transfer fields; always of equal length, zero-length is a legal no-op
	TokenNumbers []string `json:"token_numbers,omitempty"`
	Quantities   []string `json:"quantities,omitempty"`

	// Initialisation fields, authoritative over any on-chain royalty read
	RoyaltyPercent  string `json:"royalty_percent,omitempty"`
	RoyaltyReceiver string `json:"royalty_receiver,omitempty"`

	// Event coordinates
	TxHash         string `json:"tx_hash,omitempty"`
	LogIndex       uint   `json:"log_index"`
	BlockNumber    uint64 `json:"block_number,omitempty"`
	BlockTimestamp uint64 `json:"block_timestamp,omitempty"`
}

// Valid checks structural validity for the event's type
func (e *Event) Valid() bool {
	if e.ContractAddress == "" {
		return false
	}

	switch e.Type {
	case EventTypeTransferSingle:
		return e.From != "" && e.To != "" &&
			validNumeric(e.TokenNumber) && validNumeric(e.Quantity)
	case EventTypeTransferBatch:
		if e.From == "" || e.To == "" {
			return false
		}
		if len(e.TokenNumbers) != len(e.Quantities) {
			return false
		}
		for i := range e.TokenNumbers {
			if !validNumeric(e.TokenNumbers[i]) || !validNumeric(e.Quantities[i]) {
				return false
			}
		}
		return true
	case EventTypeTokenInitialisation:
		return validNumeric(e.TokenNumber) &&
			validNumeric(e.RoyaltyPercent) && e.RoyaltyReceiver != ""
	case EventTypeTokenMint:
		return validNumeric(e.TokenNumber) && validNumeric(e.Quantity)
	default:
		return false
	}
}

// MessageID returns a deterministic identifier for broker-level deduplication.
// LogIndex distinguishes repeated logs within one transaction; Type guards the
// degenerate case of two different events sharing coordinates.
func (e *Event) MessageID() string {
	return fmt.Sprintf("%s-%d-%s", e.TxHash, e.LogIndex, e.Type)
}

// RoyaltyInfo is the transient (amount, receiver) pair returned by the
// contract's royaltyInfo read. It is never persisted directly.
type RoyaltyInfo struct {
	Amount   *big.Int
	Receiver string
}

// DefaultRoyaltyInfo is the fallback returned when the royaltyInfo call reverts.
func DefaultRoyaltyInfo() RoyaltyInfo {
	return RoyaltyInfo{Amount: big.NewInt(0), Receiver: NativeAddress}
}

// validNumeric reports whether s is a non-empty unsigned decimal integer
func validNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
