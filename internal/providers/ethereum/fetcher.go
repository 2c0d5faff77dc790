package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/artzone/artzone-indexer/internal/adapter"
	"github.com/artzone/artzone-indexer/internal/block"
)

// blockFetcher implements block.BlockFetcher over an Ethereum connection
type blockFetcher struct {
	client adapter.EthClient
}

// NewBlockFetcher creates a block fetcher over an Ethereum connection
func NewBlockFetcher(client adapter.EthClient) block.BlockFetcher {
	return &blockFetcher{client: client}
}

// FetchLatestBlock fetches the latest block number from the blockchain
func (f *blockFetcher) FetchLatestBlock(ctx context.Context) (uint64, error) {
	header, err := f.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

// FetchBlockTimestamp fetches the timestamp for a given block number
func (f *blockFetcher) FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error) {
	header, err := f.client.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return 0, fmt.Errorf("failed to get block %d: %w", blockNumber, err)
	}
	return header.Time, nil
}
