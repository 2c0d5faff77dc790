package messaging

import "context"

// ChainSource streams minter events straight from the chain, in log order.
//
//go:generate mockgen -source=source.go -destination=../mocks/chain_source.go -package=mocks -mock_names=ChainSource=MockChainSource
type ChainSource interface {
	// SubscribeEvents replays events from fromBlock and then follows the
	// chain head, calling handler for each event in order. A handler error
	// aborts the subscription so no event is silently skipped.
	SubscribeEvents(ctx context.Context, fromBlock uint64, handler EventHandler) error

	// GetLatestBlock returns the latest block number
	GetLatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection and cleans up resources
	Close()
}
