package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/artzone/artzone-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the store's tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Token{},
		&schema.ArtzoneToken{},
		&schema.User{},
		&schema.UserBalance{},
		&schema.Transfer{},
		&schema.SyncCounter{},
		&schema.KeyValueStore{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults: 20 open, 5 idle,
// 5 minute lifetime, 10 minute idle time.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetToken retrieves a token by its contract-scoped identity
func (s *pgStore) GetToken(ctx context.Context, id string) (*schema.Token, error) {
	var token schema.Token
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token %s: %w", id, err)
	}
	return &token, nil
}

// SaveToken inserts or updates a token
func (s *pgStore) SaveToken(ctx context.Context, token *schema.Token) error {
	if err := s.db.WithContext(ctx).Save(token).Error; err != nil {
		return fmt.Errorf("failed to save token %s: %w", token.ID, err)
	}
	return nil
}

// GetArtzoneToken retrieves a token record by its contract-scoped identity
func (s *pgStore) GetArtzoneToken(ctx context.Context, id string) (*schema.ArtzoneToken, error) {
	var token schema.ArtzoneToken
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artzone token %s: %w", id, err)
	}
	return &token, nil
}

// SaveArtzoneToken inserts or updates a token record
func (s *pgStore) SaveArtzoneToken(ctx context.Context, token *schema.ArtzoneToken) error {
	if err := s.db.WithContext(ctx).Save(token).Error; err != nil {
		return fmt.Errorf("failed to save artzone token %s: %w", token.ID, err)
	}
	return nil
}

// GetUser retrieves a user by its lowercased address
func (s *pgStore) GetUser(ctx context.Context, id string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &user, nil
}

// SaveUser inserts or updates a user
func (s *pgStore) SaveUser(ctx context.Context, user *schema.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.ID, err)
	}
	return nil
}

// GetUserBalance retrieves a balance by its holder-token-contract identity
func (s *pgStore) GetUserBalance(ctx context.Context, id string) (*schema.UserBalance, error) {
	var balance schema.UserBalance
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user balance %s: %w", id, err)
	}
	return &balance, nil
}

// SaveUserBalance inserts or updates a balance
func (s *pgStore) SaveUserBalance(ctx context.Context, balance *schema.UserBalance) error {
	if err := s.db.WithContext(ctx).Save(balance).Error; err != nil {
		return fmt.Errorf("failed to save user balance %s: %w", balance.ID, err)
	}
	return nil
}

// GetTransfer retrieves a transfer leg by its identity
func (s *pgStore) GetTransfer(ctx context.Context, id string) (*schema.Transfer, error) {
	var transfer schema.Transfer
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&transfer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transfer %s: %w", id, err)
	}
	return &transfer, nil
}

// SaveTransfer inserts or updates a transfer leg
func (s *pgStore) SaveTransfer(ctx context.Context, transfer *schema.Transfer) error {
	if err := s.db.WithContext(ctx).Save(transfer).Error; err != nil {
		return fmt.Errorf("failed to save transfer %s: %w", transfer.ID, err)
	}
	return nil
}

// NextSequence atomically increments the named counter and returns the new
// value. The counter row is locked for the duration of the transaction.
func (s *pgStore) NextSequence(ctx context.Context, name string) (uint64, error) {
	var next uint64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter schema.SyncCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).
			First(&counter).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			counter = schema.SyncCounter{Name: name}
		}

		counter.Value++
		next = counter.Value

		return tx.Save(&counter).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}

	return next, nil
}

// GetBlockCursor retrieves the last processed block number for a chain
func (s *pgStore) GetBlockCursor(ctx context.Context, chain string) (uint64, error) {
	key := fmt.Sprintf("block_cursor:%s", chain)

	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // Return 0 if no cursor exists
		}
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}

	blockNumber, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse block cursor: %w", err)
	}

	return blockNumber, nil
}

// SetBlockCursor stores the last processed block number for a chain
func (s *pgStore) SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error {
	key := fmt.Sprintf("block_cursor:%s", chain)

	kv := schema.KeyValueStore{
		Key:   key,
		Value: strconv.FormatUint(blockNumber, 10),
	}

	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set block cursor: %w", err)
	}

	return nil
}
