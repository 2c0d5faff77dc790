package store

import (
	"context"

	"github.com/artzone/artzone-indexer/internal/store/schema"
)

// Counter names for the entity creation-order sequences
const (
	CounterArtzoneTokens = "artzonetokens"
	CounterTransfers     = "transfers"
	CounterUsers         = "users"
	CounterUserBalances  = "userbalances"
)

// Store defines the interface for database operations. Get methods return
// (nil, nil) when no record exists; Save methods upsert by primary key.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks
type Store interface {
	// GetToken retrieves a token by its contract-scoped identity
	GetToken(ctx context.Context, id string) (*schema.Token, error)
	// SaveToken inserts or updates a token
	SaveToken(ctx context.Context, token *schema.Token) error

	// GetArtzoneToken retrieves a token record by its contract-scoped identity
	GetArtzoneToken(ctx context.Context, id string) (*schema.ArtzoneToken, error)
	// SaveArtzoneToken inserts or updates a token record
	SaveArtzoneToken(ctx context.Context, token *schema.ArtzoneToken) error

	// GetUser retrieves a user by its lowercased address
	GetUser(ctx context.Context, id string) (*schema.User, error)
	// SaveUser inserts or updates a user
	SaveUser(ctx context.Context, user *schema.User) error

	// GetUserBalance retrieves a balance by its holder-token-contract identity
	GetUserBalance(ctx context.Context, id string) (*schema.UserBalance, error)
	// SaveUserBalance inserts or updates a balance
	SaveUserBalance(ctx context.Context, balance *schema.UserBalance) error

	// GetTransfer retrieves a transfer leg by its identity
	GetTransfer(ctx context.Context, id string) (*schema.Transfer, error)
	// SaveTransfer inserts or updates a transfer leg
	SaveTransfer(ctx context.Context, transfer *schema.Transfer) error

	// NextSequence atomically increments the named counter and returns the
	// new value. The first call for a name returns 1.
	NextSequence(ctx context.Context, name string) (uint64, error)

	// GetBlockCursor retrieves the last processed block number for a chain
	GetBlockCursor(ctx context.Context, chain string) (uint64, error)
	// SetBlockCursor stores the last processed block number for a chain
	SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error
}
