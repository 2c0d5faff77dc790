package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/artzone/artzone-indexer/internal/adapter"
	"github.com/artzone/artzone-indexer/internal/logger"
)

// BlockInfo represents cached latest-block information
type BlockInfo struct {
	Number   uint64
	CachedAt time.Time
}

// BlockTimestampCache represents a cached timestamp for a specific block number
type BlockTimestampCache struct {
	Timestamp uint64
	CachedAt  time.Time
}

// BlockProvider provides cached access to the latest block number and to
// block timestamps. It reduces RPC calls to the Ethereum provider by caching
// the latest block for a configurable TTL and timestamps of confirmed blocks
// effectively forever.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider
type BlockProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// GetBlockTimestamp returns the timestamp for a given block number, potentially from cache
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error)
}

// BlockFetcher is the interface for fetching block information from the blockchain
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockFetcher=MockBlockFetcher
type BlockFetcher interface {
	// FetchLatestBlock fetches the latest block number from the blockchain
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// FetchBlockTimestamp fetches the timestamp for a given block number
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TTL is how long to cache the latest block number
	TTL time.Duration

	// StaleWindow is how long to fall back to stale data when fetching fails.
	// If the cached data is older than this and the fetch fails, return error.
	StaleWindow time.Duration

	// BlockTimestampTTL is how long to cache block timestamps. Timestamps of
	// confirmed blocks are immutable; 0 caches forever.
	BlockTimestampTTL time.Duration
}

// blockProvider implements BlockProvider with TTL-based caching
type blockProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu              sync.RWMutex
	blockInfo       *BlockInfo
	blockTimestamps map[uint64]*BlockTimestampCache
}

// NewBlockProvider creates a new BlockProvider with caching
func NewBlockProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	return &blockProvider{
		fetcher:         fetcher,
		config:          config,
		clock:           clock,
		blockTimestamps: make(map[uint64]*BlockTimestampCache),
	}
}

// GetLatestBlock returns the latest block number, using cache if valid
func (p *blockProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.blockInfo
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.CachedAt) < p.config.TTL {
		logger.Debug("Using cached block number", zap.Uint64("block_number", cached.Number))
		return cached.Number, nil
	}

	blockNumber, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.CachedAt) < p.config.StaleWindow {
			logger.Debug("Using stale block number", zap.Uint64("block_number", cached.Number))
			return cached.Number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.blockInfo = &BlockInfo{
		Number:   blockNumber,
		CachedAt: now,
	}
	p.mu.Unlock()

	return blockNumber, nil
}

// GetBlockTimestamp returns the timestamp for a given block number, using cache if valid
func (p *blockProvider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error) {
	p.mu.RLock()
	cached := p.blockTimestamps[blockNumber]
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && (p.config.BlockTimestampTTL == 0 || now.Sub(cached.CachedAt) < p.config.BlockTimestampTTL) {
		return cached.Timestamp, nil
	}

	timestamp, err := p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		if cached != nil && now.Sub(cached.CachedAt) < p.config.StaleWindow {
			logger.Debug("Using stale block timestamp",
				zap.Uint64("block_number", blockNumber),
				zap.Uint64("timestamp", cached.Timestamp))
			return cached.Timestamp, nil
		}
		return 0, fmt.Errorf("failed to fetch block timestamp for block %d and no valid cache available: %w", blockNumber, err)
	}

	p.mu.Lock()
	p.blockTimestamps[blockNumber] = &BlockTimestampCache{
		Timestamp: timestamp,
		CachedAt:  now,
	}
	p.mu.Unlock()

	return timestamp, nil
}
