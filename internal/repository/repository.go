package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/artzone/artzone-indexer/internal/adapter"
	"github.com/artzone/artzone-indexer/internal/domain"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/metadata"
	"github.com/artzone/artzone-indexer/internal/providers/ethereum"
	"github.com/artzone/artzone-indexer/internal/store"
	"github.com/artzone/artzone-indexer/internal/store/schema"
)

// Repository mediates between event handlers and the store. Get-or-create
// methods are idempotent: a second call with the same identity returns the
// persisted record without touching the contract or the metadata store.
//
//go:generate mockgen -source=repository.go -destination=../mocks/repository.go -package=mocks
type Repository interface {
	// GetOrCreateToken returns the thin token row, creating it if absent
	GetOrCreateToken(ctx context.Context, contractAddress, tokenNumber string) (*schema.Token, error)

	// GetOrCreateArtzoneToken returns the rich token record, lazily creating
	// it from contract reads and the metadata document if absent. A record
	// created on demand carries no mint time; only an initialisation event
	// supplies one.
	GetOrCreateArtzoneToken(ctx context.Context, contractAddress, tokenNumber string) (*schema.ArtzoneToken, error)

	// InitializeArtzoneToken rebuilds the rich token record from fresh supply
	// reads, overwriting whatever was persisted before. The royalty terms come
	// from the caller; the contract's royaltyInfo is not consulted.
	InitializeArtzoneToken(ctx context.Context, contractAddress, tokenNumber string, blockTimestamp uint64, royalties domain.RoyaltyInfo) (*schema.ArtzoneToken, error)

	// GetOrCreateUser returns the user row for an address, creating it if absent
	GetOrCreateUser(ctx context.Context, address string) (*schema.User, error)

	// GetOrCreateUserBalance returns the holder's balance row for a token,
	// creating it with zero balance and totals if absent
	GetOrCreateUserBalance(ctx context.Context, holderAddress, tokenNumber, contractAddress string) (*schema.UserBalance, error)

	// SaveArtzoneToken persists an updated token record
	SaveArtzoneToken(ctx context.Context, token *schema.ArtzoneToken) error

	// SaveUserBalance persists an updated balance row
	SaveUserBalance(ctx context.Context, balance *schema.UserBalance) error

	// CreateTransfer records one transfer leg derived from an event. Replaying
	// the same leg returns the persisted row unchanged.
	CreateTransfer(ctx context.Context, event *domain.Event, tokenNumber, quantity string) (*schema.Transfer, error)
}

type repository struct {
	store    store.Store
	reader   ethereum.Reader
	resolver metadata.Resolver
	json     adapter.JSON
}

// New creates a repository over a store, a contract reader and a metadata resolver
func New(s store.Store, reader ethereum.Reader, resolver metadata.Resolver, jsonAdapter adapter.JSON) Repository {
	return &repository{
		store:    s,
		reader:   reader,
		resolver: resolver,
		json:     jsonAdapter,
	}
}

// GetOrCreateToken returns the thin token row, creating it if absent
func (r *repository) GetOrCreateToken(ctx context.Context, contractAddress, tokenNumber string) (*schema.Token, error) {
	contractAddress = domain.NormalizeAddress(contractAddress)
	id := domain.TokenEntityID(contractAddress, tokenNumber)

	token, err := r.store.GetToken(ctx, id)
	if err != nil {
		return nil, err
	}
	if token != nil {
		return token, nil
	}

	token = &schema.Token{
		ID:              id,
		ContractAddress: contractAddress,
		TokenNumber:     tokenNumber,
	}
	if err := r.store.SaveToken(ctx, token); err != nil {
		return nil, err
	}

	return token, nil
}

// GetOrCreateArtzoneToken returns the rich token record, lazily creating it
// from contract reads and the metadata document if absent. The mint time of a
// lazily created record stays zero until an initialisation event sets it.
func (r *repository) GetOrCreateArtzoneToken(ctx context.Context, contractAddress, tokenNumber string) (*schema.ArtzoneToken, error) {
	contractAddress = domain.NormalizeAddress(contractAddress)
	id := domain.TokenEntityID(contractAddress, tokenNumber)

	record, err := r.store.GetArtzoneToken(ctx, id)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	return r.buildArtzoneToken(ctx, contractAddress, tokenNumber, 0, nil, nil)
}

// InitializeArtzoneToken rebuilds the rich token record from fresh supply
// reads and the caller's royalty terms. An existing record is overwritten
// wholesale, but keeps its syncing index so creation order stays stable
// across re-initialisations.
func (r *repository) InitializeArtzoneToken(ctx context.Context, contractAddress, tokenNumber string, blockTimestamp uint64, royalties domain.RoyaltyInfo) (*schema.ArtzoneToken, error) {
	contractAddress = domain.NormalizeAddress(contractAddress)
	id := domain.TokenEntityID(contractAddress, tokenNumber)

	existing, err := r.store.GetArtzoneToken(ctx, id)
	if err != nil {
		return nil, err
	}

	return r.buildArtzoneToken(ctx, contractAddress, tokenNumber, blockTimestamp, &royalties, existing)
}

// buildArtzoneToken assembles and persists a rich token record from contract
// reads and the metadata document. Royalty terms are read from the contract
// only when the caller supplies none. When existing is non-nil its syncing
// index is reused; otherwise a new one is allocated.
func (r *repository) buildArtzoneToken(ctx context.Context, contractAddress, tokenNumber string, mintedAt uint64, royalties *domain.RoyaltyInfo, existing *schema.ArtzoneToken) (*schema.ArtzoneToken, error) {
	token, err := r.GetOrCreateToken(ctx, contractAddress, tokenNumber)
	if err != nil {
		return nil, err
	}

	if royalties == nil {
		info := r.reader.Royalties(ctx, contractAddress, tokenNumber)
		royalties = &info
	}
	maxSupply := r.reader.TokenMaxSupply(ctx, contractAddress, tokenNumber)
	supply := r.reader.TokenSupply(ctx, contractAddress, tokenNumber)

	record := &schema.ArtzoneToken{
		ID:                 token.ID,
		TokenID:            token.ID,
		MintedAt:           mintedAt,
		SecondaryRoyalties: royalties.Amount.String(),
		RoyaltiesReceiver:  royalties.Receiver,
		TotalMaxSupply:     maxSupply.String(),
		TotalSupply:        supply.String(),
	}

	if existing != nil {
		record.SyncingIndex = existing.SyncingIndex
		record.CreatedAt = existing.CreatedAt
	} else {
		index, err := r.store.NextSequence(ctx, store.CounterArtzoneTokens)
		if err != nil {
			return nil, err
		}
		record.SyncingIndex = index
	}

	meta, err := r.resolver.Resolve(ctx, contractAddress, tokenNumber)
	if err != nil {
		// A malformed document never clears display fields that were already
		// persisted; the record keeps whatever the previous resolution set.
		logger.Warn("metadata resolution failed, keeping persisted fields",
			zap.String("token", token.ID),
			zap.Error(err))
		if existing != nil {
			record.Name = existing.Name
			record.Image = existing.Image
			record.Description = existing.Description
			record.ExternalURL = existing.ExternalURL
			record.Artist = existing.Artist
		}
	} else if meta != nil {
		if meta.Display != nil {
			record.Name = &meta.Display.Name
			record.Image = &meta.Display.Image
			record.Description = &meta.Display.Description
			record.ExternalURL = &meta.Display.ExternalURL
		}
		record.Artist = meta.Artist
	}

	if err := r.store.SaveArtzoneToken(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// GetOrCreateUser returns the user row for an address, creating it if absent
func (r *repository) GetOrCreateUser(ctx context.Context, address string) (*schema.User, error) {
	id := domain.NormalizeAddress(address)

	user, err := r.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	index, err := r.store.NextSequence(ctx, store.CounterUsers)
	if err != nil {
		return nil, err
	}

	user = &schema.User{
		ID:           id,
		SyncingIndex: index,
	}
	if err := r.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetOrCreateUserBalance returns the holder's balance row for a token,
// creating it with zero balance and totals if absent
func (r *repository) GetOrCreateUserBalance(ctx context.Context, holderAddress, tokenNumber, contractAddress string) (*schema.UserBalance, error) {
	holderAddress = domain.NormalizeAddress(holderAddress)
	contractAddress = domain.NormalizeAddress(contractAddress)
	id := domain.BalanceEntityID(holderAddress, tokenNumber, contractAddress)

	balance, err := r.store.GetUserBalance(ctx, id)
	if err != nil {
		return nil, err
	}
	if balance != nil {
		return balance, nil
	}

	user, err := r.GetOrCreateUser(ctx, holderAddress)
	if err != nil {
		return nil, err
	}

	index, err := r.store.NextSequence(ctx, store.CounterUserBalances)
	if err != nil {
		return nil, err
	}

	balance = &schema.UserBalance{
		ID:              id,
		UserID:          user.ID,
		TokenNumber:     tokenNumber,
		ContractAddress: contractAddress,
		Balance:         "0",
		TotalSent:       "0",
		TotalReceived:   "0",
		SyncingIndex:    index,
	}
	if err := r.store.SaveUserBalance(ctx, balance); err != nil {
		return nil, err
	}

	return balance, nil
}

// SaveArtzoneToken persists an updated token record
func (r *repository) SaveArtzoneToken(ctx context.Context, token *schema.ArtzoneToken) error {
	return r.store.SaveArtzoneToken(ctx, token)
}

// SaveUserBalance persists an updated balance row
func (r *repository) SaveUserBalance(ctx context.Context, balance *schema.UserBalance) error {
	return r.store.SaveUserBalance(ctx, balance)
}

// CreateTransfer records one transfer leg derived from an event
func (r *repository) CreateTransfer(ctx context.Context, event *domain.Event, tokenNumber, quantity string) (*schema.Transfer, error) {
	id := domain.TransferEntityID(event.TxHash, event.LogIndex, tokenNumber)

	transfer, err := r.store.GetTransfer(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer != nil {
		return transfer, nil
	}

	token, err := r.GetOrCreateToken(ctx, event.ContractAddress, tokenNumber)
	if err != nil {
		return nil, err
	}

	raw, err := r.json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event %s: %w", event.MessageID(), err)
	}

	index, err := r.store.NextSequence(ctx, store.CounterTransfers)
	if err != nil {
		return nil, err
	}

	transfer = &schema.Transfer{
		ID:           id,
		Hash:         domain.NormalizeHash(event.TxHash),
		TokenID:      token.ID,
		From:         domain.NormalizeAddress(event.From),
		To:           domain.NormalizeAddress(event.To),
		Value:        quantity,
		BlockNumber:  event.BlockNumber,
		Timestamp:    event.BlockTimestamp,
		SyncingIndex: index,
		Raw:          raw,
	}
	if err := r.store.SaveTransfer(ctx, transfer); err != nil {
		return nil, err
	}

	return transfer, nil
}
