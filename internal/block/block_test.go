package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artzone/artzone-indexer/internal/block"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func setupTestProvider(t *testing.T, cfg block.Config) (*mocks.MockBlockFetcher, *mocks.MockClock, block.BlockProvider) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockBlockFetcher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	return fetcher, clock, block.NewBlockProvider(fetcher, cfg, clock)
}

func TestGetLatestBlockCachesWithinTTL(t *testing.T) {
	fetcher, clock, provider := setupTestProvider(t, block.Config{
		TTL:         12 * time.Second,
		StaleWindow: time.Minute,
	})

	ctx := context.Background()
	base := time.Now()

	clock.EXPECT().Now().Return(base)
	fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(17200000), nil)

	blockNumber, err := provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(17200000), blockNumber)

	// Within the TTL the cached number is served without a fetch
	clock.EXPECT().Now().Return(base.Add(5 * time.Second))

	blockNumber, err = provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(17200000), blockNumber)

	// Past the TTL the fetcher is consulted again
	clock.EXPECT().Now().Return(base.Add(20 * time.Second))
	fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(17200002), nil)

	blockNumber, err = provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(17200002), blockNumber)
}

func TestGetLatestBlockServesStaleOnFetchFailure(t *testing.T) {
	fetcher, clock, provider := setupTestProvider(t, block.Config{
		TTL:         12 * time.Second,
		StaleWindow: time.Minute,
	})

	ctx := context.Background()
	base := time.Now()

	clock.EXPECT().Now().Return(base)
	fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(17200000), nil)

	_, err := provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	// Fetch fails past the TTL but within the stale window
	clock.EXPECT().Now().Return(base.Add(30 * time.Second))
	fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("rpc timeout"))

	blockNumber, err := provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(17200000), blockNumber)

	// Past the stale window the failure surfaces
	clock.EXPECT().Now().Return(base.Add(2 * time.Minute))
	fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("rpc timeout"))

	_, err = provider.GetLatestBlock(ctx)
	assert.ErrorContains(t, err, "no valid cache available")
}

func TestGetBlockTimestampCachesForever(t *testing.T) {
	fetcher, clock, provider := setupTestProvider(t, block.Config{
		TTL:         12 * time.Second,
		StaleWindow: time.Minute,
		// zero BlockTimestampTTL: confirmed block timestamps never change
	})

	ctx := context.Background()
	base := time.Now()

	clock.EXPECT().Now().Return(base)
	fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(17200000)).Return(uint64(1683000000), nil)

	timestamp, err := provider.GetBlockTimestamp(ctx, 17200000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1683000000), timestamp)

	clock.EXPECT().Now().Return(base.Add(24 * time.Hour))

	timestamp, err = provider.GetBlockTimestamp(ctx, 17200000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1683000000), timestamp)
}

func TestGetBlockTimestampDistinctBlocks(t *testing.T) {
	fetcher, clock, provider := setupTestProvider(t, block.Config{
		TTL:         12 * time.Second,
		StaleWindow: time.Minute,
	})

	ctx := context.Background()
	base := time.Now()

	clock.EXPECT().Now().Return(base).Times(2)
	fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(100)).Return(uint64(1000), nil)
	fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(101)).Return(uint64(1012), nil)

	first, err := provider.GetBlockTimestamp(ctx, 100)
	require.NoError(t, err)
	second, err := provider.GetBlockTimestamp(ctx, 101)
	require.NoError(t, err)

	assert.Equal(t, uint64(1000), first)
	assert.Equal(t, uint64(1012), second)
}

func TestGetBlockTimestampErrorWithoutCache(t *testing.T) {
	fetcher, clock, provider := setupTestProvider(t, block.Config{
		TTL:         12 * time.Second,
		StaleWindow: time.Minute,
	})

	ctx := context.Background()

	clock.EXPECT().Now().Return(time.Now())
	fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(5)).Return(uint64(0), errors.New("rpc timeout"))

	_, err := provider.GetBlockTimestamp(ctx, 5)
	assert.ErrorContains(t, err, "failed to fetch block timestamp")
}
