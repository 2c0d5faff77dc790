package emitter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/artzone/artzone-indexer/internal/adapter"
	"github.com/artzone/artzone-indexer/internal/domain"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/messaging"
	"github.com/artzone/artzone-indexer/internal/metrics"
	"github.com/artzone/artzone-indexer/internal/store"
)

// Config holds the configuration for the event emitter
type Config struct {
	ChainID         string
	StartBlock      uint64
	CursorSaveFreq  uint64        // Save cursor every N blocks
	CursorSaveDelay time.Duration // Or save cursor every N seconds
}

// Emitter reads minter events off the chain and publishes them to the
// message broker, keeping a persisted block cursor so a restart resumes
// where the previous run stopped.
//
//go:generate mockgen -source=emitter.go -destination=../mocks/emitter.go -package=mocks -mock_names=Emitter=MockEmitter
type Emitter interface {
	// Run starts the event emitter
	Run(ctx context.Context) error
	// Close closes the emitter and cleans up resources
	Close()
}

type emitter struct {
	source    messaging.ChainSource
	publisher messaging.Publisher
	store     store.Store
	config    Config
	clock     adapter.Clock
}

// NewEmitter creates a new event emitter
func NewEmitter(
	source messaging.ChainSource,
	pub messaging.Publisher,
	st store.Store,
	cfg Config,
	clock adapter.Clock,
) Emitter {
	return &emitter{
		source:    source,
		publisher: pub,
		store:     st,
		config:    cfg,
		clock:     clock,
	}
}

// Run starts the event emitter
func (e *emitter) Run(ctx context.Context) error {
	startBlock := e.config.StartBlock
	if startBlock == 0 {
		lastBlock, err := e.store.GetBlockCursor(ctx, e.config.ChainID)
		if err != nil {
			return fmt.Errorf("failed to get block cursor: %w", err)
		}

		if lastBlock > 0 {
			startBlock = lastBlock + 1
			logger.Info("Resuming from last processed block", zap.String("chain", e.config.ChainID), zap.Uint64("block", startBlock))
		} else {
			latestBlock, err := e.source.GetLatestBlock(ctx)
			if err != nil {
				return fmt.Errorf("failed to get latest block number: %w", err)
			}
			startBlock = latestBlock
			logger.Info("Starting from latest block", zap.String("chain", e.config.ChainID), zap.Uint64("block", startBlock))
		}
	} else {
		logger.Info("Starting from configured block", zap.String("chain", e.config.ChainID), zap.Uint64("block", startBlock))
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("Starting event subscription", zap.String("chain", e.config.ChainID))

		lastSavedBlock := uint64(0)
		lastSaveTime := e.clock.Now()

		handler := func(event *domain.Event) error {
			if err := e.publisher.PublishEvent(ctx, event); err != nil {
				return fmt.Errorf("failed to publish event %s: %w", event.MessageID(), err)
			}

			metrics.LastProcessedBlock.Set(float64(event.BlockNumber))

			// Save cursor periodically (every N blocks or N seconds)
			shouldSave := event.BlockNumber-lastSavedBlock >= e.config.CursorSaveFreq ||
				e.clock.Since(lastSaveTime) >= e.config.CursorSaveDelay

			if shouldSave {
				// The persisted cursor trails the event's block by one: a
				// block's logs arrive as separate handler calls, so saving
				// the current block mid-block would skip its remaining logs
				// after a crash. Resuming one block back replays the whole
				// block and the broker's dedup window drops the legs that
				// were already published.
				cursor := event.BlockNumber
				if cursor > 0 {
					cursor--
				}
				if err := e.store.SetBlockCursor(ctx, e.config.ChainID, cursor); err != nil {
					logger.Error(fmt.Errorf("failed to save block cursor: %w", err))
				} else {
					lastSavedBlock = event.BlockNumber
					lastSaveTime = e.clock.Now()
				}
			}

			return nil
		}

		err := e.source.SubscribeEvents(ctx, startBlock, handler)
		if err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes the emitter and cleans up resources
func (e *emitter) Close() {
	e.source.Close()
}
