package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/artzone/artzone-indexer/internal/adapter"
	"github.com/artzone/artzone-indexer/internal/block"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/messaging"
)

// Config holds the configuration for the Ethereum event subscription
type Config struct {
	// WebSocketURL is the provider endpoint, e.g. wss://mainnet.infura.io/ws/v3/KEY
	WebSocketURL string
	// ContractAddress is the ArtzoneMinter contract to follow
	ContractAddress string
	// BackfillStep is the widest block range requested per getLogs call
	BackfillStep uint64
}

const defaultBackfillStep = 10000

type ethSubscriber struct {
	client   adapter.EthClient
	blocks   block.BlockProvider
	contract common.Address
	step     uint64
}

// NewSubscriber creates an Ethereum event source for one minter contract
func NewSubscriber(cfg Config, client adapter.EthClient, blocks block.BlockProvider) messaging.ChainSource {
	step := cfg.BackfillStep
	if step == 0 {
		step = defaultBackfillStep
	}

	return &ethSubscriber{
		client:   client,
		blocks:   blocks,
		contract: common.HexToAddress(cfg.ContractAddress),
		step:     step,
	}
}

// SubscribeEvents replays minter events from fromBlock and then follows the
// chain head. Backfilled and live logs go through the same decode path, so
// the handler sees one ordered stream either way.
func (s *ethSubscriber) SubscribeEvents(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
	latest, err := s.GetLatestBlock(ctx)
	if err != nil {
		return err
	}

	if fromBlock <= latest {
		if err := s.backfill(ctx, fromBlock, latest, handler); err != nil {
			return err
		}
	}

	return s.follow(ctx, latest+1, handler)
}

// backfill replays historical logs in bounded ranges. A range that the
// provider rejects for holding too many results is retried at half the size.
func (s *ethSubscriber) backfill(ctx context.Context, fromBlock, toBlock uint64, handler messaging.EventHandler) error {
	logger.Info("Backfilling minter events",
		zap.Uint64("from_block", fromBlock),
		zap.Uint64("to_block", toBlock))

	step := s.step
	current := fromBlock

	for current <= toBlock {
		end := current + step - 1
		if end > toBlock {
			end = toBlock
		}

		logs, err := s.client.FilterLogs(ctx, s.filterQuery(
			new(big.Int).SetUint64(current),
			new(big.Int).SetUint64(end),
		))
		if err != nil {
			if isTooManyResultsError(err) && step > 1 {
				step /= 2
				logger.Warn("Too many results, reducing step size",
					zap.Uint64("new_step", step),
					zap.Uint64("from_block", current))
				continue
			}
			return fmt.Errorf("failed to get logs for range %d-%d: %w", current, end, err)
		}

		for i := range logs {
			if err := s.dispatch(ctx, logs[i], handler); err != nil {
				return err
			}
		}

		current = end + 1
	}

	return nil
}

// follow subscribes to new minter logs from fromBlock onwards
func (s *ethSubscriber) follow(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
	query := s.filterQuery(new(big.Int).SetUint64(fromBlock), nil)

	logs := make(chan types.Log)
	sub, err := s.client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return fmt.Errorf("failed to subscribe to filter logs: %w", err)
	}
	defer sub.Unsubscribe()

	logger.Info("Following minter events", zap.Uint64("from_block", fromBlock))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("subscription error: %w", err)
		case vLog := <-logs:
			if err := s.dispatch(ctx, vLog, handler); err != nil {
				return err
			}
		}
	}
}

// dispatch decodes one log and hands the event to the handler. Removed logs
// from reorged blocks are skipped; a decode failure is skipped after logging
// because retrying cannot fix the log.
func (s *ethSubscriber) dispatch(ctx context.Context, vLog types.Log, handler messaging.EventHandler) error {
	if vLog.Removed {
		return nil
	}

	timestamp, err := s.blocks.GetBlockTimestamp(ctx, vLog.BlockNumber)
	if err != nil {
		return err
	}

	event, err := ParseEventLog(vLog, timestamp)
	if err != nil {
		logger.Error(err, zap.String("message", "Error parsing log"),
			zap.String("tx_hash", vLog.TxHash.Hex()),
			zap.Uint("log_index", vLog.Index))
		return nil
	}

	if err := handler(event); err != nil {
		return fmt.Errorf("failed to handle event %s: %w", event.MessageID(), err)
	}

	return nil
}

func (s *ethSubscriber) filterQuery(fromBlock, toBlock *big.Int) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		FromBlock: fromBlock,
		ToBlock:   toBlock,
		Addresses: []common.Address{s.contract},
		Topics:    [][]common.Hash{EventSignatures()},
	}
}

// GetLatestBlock returns the latest block number
func (s *ethSubscriber) GetLatestBlock(ctx context.Context) (uint64, error) {
	return s.blocks.GetLatestBlock(ctx)
}

// Close closes the connection
func (s *ethSubscriber) Close() {
	if s.client == nil {
		return
	}

	s.client.Close()
	logger.Info("Ethereum connection closed")
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum")
}
