package emitter_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artzone/artzone-indexer/internal/domain"
	"github.com/artzone/artzone-indexer/internal/emitter"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/messaging"
	"github.com/artzone/artzone-indexer/internal/mocks"
)

const testChainID = "ethereum"

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testEmitterMocks struct {
	ctrl      *gomock.Controller
	source    *mocks.MockChainSource
	publisher *mocks.MockPublisher
	store     *mocks.MockStore
	clock     *mocks.MockClock
}

func setupTestEmitter(t *testing.T, cfg emitter.Config) (*testEmitterMocks, emitter.Emitter) {
	ctrl := gomock.NewController(t)

	m := &testEmitterMocks{
		ctrl:      ctrl,
		source:    mocks.NewMockChainSource(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		store:     mocks.NewMockStore(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}

	return m, emitter.NewEmitter(m.source, m.publisher, m.store, cfg, m.clock)
}

func testEvent(blockNumber uint64) *domain.Event {
	return &domain.Event{
		Type:            domain.EventTypeTokenMint,
		ContractAddress: "0xab8483f64d9c6d1ecf9b849ae677dd3315835cb2",
		TokenNumber:     "1",
		Quantity:        "10",
		TxHash:          "0x6f1c4c8f7b9f3ad1c2e19b36f29df9a4de3e6af8c7266d5696b2fbd6575a7a19",
		LogIndex:        1,
		BlockNumber:     blockNumber,
	}
}

func TestRunResumesFromCursor(t *testing.T) {
	m, e := setupTestEmitter(t, emitter.Config{
		ChainID:         testChainID,
		CursorSaveFreq:  1,
		CursorSaveDelay: 30 * time.Second,
	})
	defer m.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	event := testEvent(17200000)

	m.store.EXPECT().GetBlockCursor(gomock.Any(), testChainID).Return(uint64(17199999), nil)
	m.clock.EXPECT().Now().Return(time.Now()).Times(2)
	m.publisher.EXPECT().PublishEvent(gomock.Any(), event).Return(nil)
	m.store.EXPECT().SetBlockCursor(gomock.Any(), testChainID, uint64(17199999)).Return(nil)

	m.source.EXPECT().
		SubscribeEvents(gomock.Any(), uint64(17200000), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint64, handler messaging.EventHandler) error {
			require.NoError(t, handler(event))
			cancel()
			return nil
		})

	err := e.Run(ctx)
	assert.Equal(t, context.Canceled, err)
}

func TestRunCursorTrailsCurrentBlock(t *testing.T) {
	m, e := setupTestEmitter(t, emitter.Config{
		ChainID:         testChainID,
		CursorSaveFreq:  1,
		CursorSaveDelay: 30 * time.Second,
	})
	defer m.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := testEvent(17200000)
	second := testEvent(17200000)
	second.LogIndex = 2
	next := testEvent(17200001)

	m.store.EXPECT().GetBlockCursor(gomock.Any(), testChainID).Return(uint64(17199999), nil)
	m.clock.EXPECT().Now().Return(time.Now()).Times(3)
	m.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0))
	m.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	// Every save stays one block behind the event, so a crash before the
	// block's remaining logs are published cannot skip them on restart
	gomock.InOrder(
		m.store.EXPECT().SetBlockCursor(gomock.Any(), testChainID, uint64(17199999)).Return(nil),
		m.store.EXPECT().SetBlockCursor(gomock.Any(), testChainID, uint64(17200000)).Return(nil),
	)

	m.source.EXPECT().
		SubscribeEvents(gomock.Any(), uint64(17200000), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint64, handler messaging.EventHandler) error {
			require.NoError(t, handler(first))
			require.NoError(t, handler(second))
			require.NoError(t, handler(next))
			cancel()
			return nil
		})

	err := e.Run(ctx)
	assert.Equal(t, context.Canceled, err)
}

func TestRunStartsFromLatestWithoutCursor(t *testing.T) {
	m, e := setupTestEmitter(t, emitter.Config{
		ChainID:         testChainID,
		CursorSaveFreq:  100,
		CursorSaveDelay: 30 * time.Second,
	})
	defer m.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.store.EXPECT().GetBlockCursor(gomock.Any(), testChainID).Return(uint64(0), nil)
	m.source.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(17300000), nil)
	m.clock.EXPECT().Now().Return(time.Now())

	m.source.EXPECT().
		SubscribeEvents(gomock.Any(), uint64(17300000), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint64, _ messaging.EventHandler) error {
			cancel()
			return nil
		})

	err := e.Run(ctx)
	assert.Equal(t, context.Canceled, err)
}

func TestRunStartsFromConfiguredBlock(t *testing.T) {
	m, e := setupTestEmitter(t, emitter.Config{
		ChainID:         testChainID,
		StartBlock:      15000000,
		CursorSaveFreq:  100,
		CursorSaveDelay: 30 * time.Second,
	})
	defer m.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The persisted cursor is not consulted when a start block is configured
	m.clock.EXPECT().Now().Return(time.Now())
	m.source.EXPECT().
		SubscribeEvents(gomock.Any(), uint64(15000000), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint64, _ messaging.EventHandler) error {
			cancel()
			return nil
		})

	err := e.Run(ctx)
	assert.Equal(t, context.Canceled, err)
}

func TestRunReturnsSubscriptionError(t *testing.T) {
	m, e := setupTestEmitter(t, emitter.Config{
		ChainID:         testChainID,
		StartBlock:      15000000,
		CursorSaveFreq:  100,
		CursorSaveDelay: 30 * time.Second,
	})
	defer m.ctrl.Finish()

	m.clock.EXPECT().Now().Return(time.Now())
	m.source.EXPECT().
		SubscribeEvents(gomock.Any(), uint64(15000000), gomock.Any()).
		Return(errors.New("websocket closed"))

	err := e.Run(context.Background())
	assert.ErrorContains(t, err, "websocket closed")
}

func TestRunPublishFailureSurfacesThroughHandler(t *testing.T) {
	m, e := setupTestEmitter(t, emitter.Config{
		ChainID:         testChainID,
		StartBlock:      15000000,
		CursorSaveFreq:  100,
		CursorSaveDelay: 30 * time.Second,
	})
	defer m.ctrl.Finish()

	event := testEvent(15000001)

	m.clock.EXPECT().Now().Return(time.Now())
	m.publisher.EXPECT().PublishEvent(gomock.Any(), event).Return(errors.New("nats: timeout"))

	m.source.EXPECT().
		SubscribeEvents(gomock.Any(), uint64(15000000), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint64, handler messaging.EventHandler) error {
			return handler(event)
		})

	err := e.Run(context.Background())
	assert.ErrorContains(t, err, "failed to publish event")
}

func TestClose(t *testing.T) {
	m, e := setupTestEmitter(t, emitter.Config{ChainID: testChainID})
	defer m.ctrl.Finish()

	m.source.EXPECT().Close()
	e.Close()
}
