package reconciler_test

import (
	"context"
	"math/big"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artzone/artzone-indexer/internal/adapter"
	"github.com/artzone/artzone-indexer/internal/domain"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/mocks"
	"github.com/artzone/artzone-indexer/internal/reconciler"
	"github.com/artzone/artzone-indexer/internal/repository"
	"github.com/artzone/artzone-indexer/internal/store"
)

const (
	testContract  = "0xab8483f64d9c6d1ecf9b849ae677dd3315835cb2"
	testMinter    = "0x4b20993bc481177ec7e8f571cecae8a9e22c02db"
	testCollector = "0x78731d3ca6b7e34ac0f824c42a7cc18a495cabab"
	testTxHash    = "0x6f1c4c8f7b9f3ad1c2e19b36f29df9a4de3e6af8c7266d5696b2fbd6575a7a19"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testReconcilerMocks struct {
	ctrl     *gomock.Controller
	reader   *mocks.MockContractReader
	resolver *mocks.MockMetadataResolver
	store    store.Store
}

func setupTestReconciler(t *testing.T) (*testReconcilerMocks, reconciler.Reconciler) {
	ctrl := gomock.NewController(t)

	m := &testReconcilerMocks{
		ctrl:     ctrl,
		reader:   mocks.NewMockContractReader(ctrl),
		resolver: mocks.NewMockMetadataResolver(ctrl),
		store:    store.NewMemoryStore(),
	}

	repo := repository.New(m.store, m.reader, m.resolver, adapter.NewJSON())
	return m, reconciler.New(repo)
}

// expectContractReads wires the reads performed when a transfer or mint
// builds a token record on demand. Royalty and supply values stand in for
// live contract state.
func (m *testReconcilerMocks) expectContractReads(tokenNumber string, maxSupply, supply int64) {
	m.reader.EXPECT().
		Royalties(gomock.Any(), testContract, tokenNumber).
		Return(domain.RoyaltyInfo{Amount: big.NewInt(500), Receiver: testMinter}).
		Times(1)
	m.reader.EXPECT().
		TokenMaxSupply(gomock.Any(), testContract, tokenNumber).
		Return(big.NewInt(maxSupply)).
		Times(1)
	m.reader.EXPECT().
		TokenSupply(gomock.Any(), testContract, tokenNumber).
		Return(big.NewInt(supply)).
		Times(1)
	m.resolver.EXPECT().
		Resolve(gomock.Any(), testContract, tokenNumber).
		Return(nil, nil).
		Times(1)
}

func transferSingleEvent(from, to, tokenNumber, quantity string, logIndex uint) *domain.Event {
	return &domain.Event{
		Type:            domain.EventTypeTransferSingle,
		ContractAddress: testContract,
		From:            from,
		To:              to,
		TokenNumber:     tokenNumber,
		Quantity:        quantity,
		TxHash:          testTxHash,
		LogIndex:        logIndex,
		BlockNumber:     17200000,
		BlockTimestamp:  1683000000,
	}
}

func TestApplyTokenInitialisationAndMint(t *testing.T) {
	m, rec := setupTestReconciler(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	// The initialisation takes its royalty terms from the event, so only the
	// supply reads and the metadata resolution are expected here; a
	// royaltyInfo call would fail the controller
	m.reader.EXPECT().
		TokenMaxSupply(gomock.Any(), testContract, "7").
		Return(big.NewInt(100)).
		Times(1)
	m.reader.EXPECT().
		TokenSupply(gomock.Any(), testContract, "7").
		Return(big.NewInt(0)).
		Times(1)
	m.resolver.EXPECT().
		Resolve(gomock.Any(), testContract, "7").
		Return(nil, nil).
		Times(1)

	err := rec.Apply(ctx, &domain.Event{
		Type:            domain.EventTypeTokenInitialisation,
		ContractAddress: testContract,
		TokenNumber:     "7",
		RoyaltyPercent:  "1000",
		RoyaltyReceiver: testMinter,
		TxHash:          testTxHash,
		LogIndex:        1,
		BlockTimestamp:  1683000000,
	})
	require.NoError(t, err)

	record, err := m.store.GetArtzoneToken(ctx, domain.TokenEntityID(testContract, "7"))
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "1000", record.SecondaryRoyalties)
	assert.Equal(t, testMinter, record.RoyaltiesReceiver)
	assert.Equal(t, "100", record.TotalMaxSupply)
	assert.Equal(t, "0", record.TotalSupply)
	assert.Equal(t, uint64(1683000000), record.MintedAt)
	assert.Equal(t, uint64(1), record.SyncingIndex)

	// The mint raises the supply but leaves every balance untouched
	err = rec.Apply(ctx, &domain.Event{
		Type:            domain.EventTypeTokenMint,
		ContractAddress: testContract,
		TokenNumber:     "7",
		Quantity:        "25",
		TxHash:          testTxHash,
		LogIndex:        2,
		BlockTimestamp:  1683000000,
	})
	require.NoError(t, err)

	record, err = m.store.GetArtzoneToken(ctx, domain.TokenEntityID(testContract, "7"))
	require.NoError(t, err)
	assert.Equal(t, "25", record.TotalSupply)

	balance, err := m.store.GetUserBalance(ctx, domain.BalanceEntityID(testMinter, "7", testContract))
	require.NoError(t, err)
	assert.Nil(t, balance)
}

func TestApplyLazyTokenCreationHasNoMintTime(t *testing.T) {
	m, rec := setupTestReconciler(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.expectContractReads("11", 10, 0)

	err := rec.Apply(ctx, &domain.Event{
		Type:            domain.EventTypeTokenMint,
		ContractAddress: testContract,
		TokenNumber:     "11",
		Quantity:        "5",
		TxHash:          testTxHash,
		LogIndex:        9,
		BlockNumber:     17200000,
		BlockTimestamp:  1683000000,
	})
	require.NoError(t, err)

	// A record created on demand by a mint or transfer has no mint time,
	// whatever block carried the triggering event; only an initialisation
	// event sets one
	record, err := m.store.GetArtzoneToken(ctx, domain.TokenEntityID(testContract, "11"))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, uint64(0), record.MintedAt)
	assert.Equal(t, "5", record.TotalSupply)
}

func TestApplyTransferFromZeroAddress(t *testing.T) {
	m, rec := setupTestReconciler(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.expectContractReads("3", 50, 10)

	event := transferSingleEvent(domain.ZeroAddress, testMinter, "3", "10", 4)
	require.NoError(t, rec.Apply(ctx, event))

	toBalance, err := m.store.GetUserBalance(ctx, domain.BalanceEntityID(testMinter, "3", testContract))
	require.NoError(t, err)
	require.NotNil(t, toBalance)
	assert.Equal(t, "10", toBalance.Balance)
	assert.Equal(t, "10", toBalance.TotalReceived)
	assert.Equal(t, "0", toBalance.TotalSent)

	// The zero address is a holder like any other; its row records the debit
	zeroBalance, err := m.store.GetUserBalance(ctx, domain.BalanceEntityID(domain.ZeroAddress, "3", testContract))
	require.NoError(t, err)
	require.NotNil(t, zeroBalance)
	assert.Equal(t, "-10", zeroBalance.Balance)
	assert.Equal(t, "10", zeroBalance.TotalSent)

	transfer, err := m.store.GetTransfer(ctx, domain.TransferEntityID(testTxHash, 4, "3"))
	require.NoError(t, err)
	require.NotNil(t, transfer)
	assert.Equal(t, domain.ZeroAddress, transfer.From)
	assert.Equal(t, testMinter, transfer.To)
	assert.Equal(t, "10", transfer.Value)
	assert.Equal(t, uint64(17200000), transfer.BlockNumber)
}

func TestApplyTransferConservesEditions(t *testing.T) {
	m, rec := setupTestReconciler(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.expectContractReads("1", 20, 20)

	require.NoError(t, rec.Apply(ctx, transferSingleEvent(domain.ZeroAddress, testMinter, "1", "20", 1)))
	require.NoError(t, rec.Apply(ctx, transferSingleEvent(testMinter, testCollector, "1", "8", 2)))

	minterBalance, err := m.store.GetUserBalance(ctx, domain.BalanceEntityID(testMinter, "1", testContract))
	require.NoError(t, err)
	assert.Equal(t, "12", minterBalance.Balance)
	assert.Equal(t, "20", minterBalance.TotalReceived)
	assert.Equal(t, "8", minterBalance.TotalSent)

	collectorBalance, err := m.store.GetUserBalance(ctx, domain.BalanceEntityID(testCollector, "1", testContract))
	require.NoError(t, err)
	assert.Equal(t, "8", collectorBalance.Balance)
	assert.Equal(t, "8", collectorBalance.TotalReceived)
	assert.Equal(t, "0", collectorBalance.TotalSent)
}

func TestApplyTransferKeepsNegativeBalance(t *testing.T) {
	m, rec := setupTestReconciler(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.expectContractReads("9", 10, 10)

	// A send observed before the matching receive drives the balance negative;
	// the value is recorded as-is so a later replay can reconcile it.
	require.NoError(t, rec.Apply(ctx, transferSingleEvent(testMinter, testCollector, "9", "4", 1)))

	minterBalance, err := m.store.GetUserBalance(ctx, domain.BalanceEntityID(testMinter, "9", testContract))
	require.NoError(t, err)
	assert.Equal(t, "-4", minterBalance.Balance)
	assert.Equal(t, "4", minterBalance.TotalSent)
}

func TestApplyTransferBatch(t *testing.T) {
	m, rec := setupTestReconciler(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.expectContractReads("1", 10, 10)
	m.expectContractReads("2", 10, 10)

	event := &domain.Event{
		Type:            domain.EventTypeTransferBatch,
		ContractAddress: testContract,
		From:            testMinter,
		To:              testCollector,
		TokenNumbers:    []string{"1", "2"},
		Quantities:      []string{"3", "5"},
		TxHash:          testTxHash,
		LogIndex:        6,
		BlockNumber:     17200000,
		BlockTimestamp:  1683000000,
	}
	require.NoError(t, rec.Apply(ctx, event))

	// Each leg gets its own transfer row keyed by token number
	first, err := m.store.GetTransfer(ctx, domain.TransferEntityID(testTxHash, 6, "1"))
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "3", first.Value)

	second, err := m.store.GetTransfer(ctx, domain.TransferEntityID(testTxHash, 6, "2"))
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "5", second.Value)
	assert.NotEqual(t, first.ID, second.ID)

	firstBalance, err := m.store.GetUserBalance(ctx, domain.BalanceEntityID(testCollector, "1", testContract))
	require.NoError(t, err)
	assert.Equal(t, "3", firstBalance.Balance)

	secondBalance, err := m.store.GetUserBalance(ctx, domain.BalanceEntityID(testCollector, "2", testContract))
	require.NoError(t, err)
	assert.Equal(t, "5", secondBalance.Balance)
}

func TestApplyTransferBatchZeroLegs(t *testing.T) {
	m, rec := setupTestReconciler(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	// No contract reads, no rows: the controller fails on any unexpected call
	event := &domain.Event{
		Type:            domain.EventTypeTransferBatch,
		ContractAddress: testContract,
		From:            testMinter,
		To:              testCollector,
		TxHash:          testTxHash,
		LogIndex:        8,
	}
	require.NoError(t, rec.Apply(ctx, event))

	balance, err := m.store.GetUserBalance(ctx, domain.BalanceEntityID(testCollector, "1", testContract))
	require.NoError(t, err)
	assert.Nil(t, balance)
}

func TestApplyReplayedTransferIsIdempotentOnTransferRow(t *testing.T) {
	m, rec := setupTestReconciler(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.expectContractReads("5", 10, 10)

	event := transferSingleEvent(domain.ZeroAddress, testMinter, "5", "10", 2)
	require.NoError(t, rec.Apply(ctx, event))
	require.NoError(t, rec.Apply(ctx, event))

	// The transfer row is deduplicated by identity even though the broker's
	// dedup window is the first line of defense
	transfer, err := m.store.GetTransfer(ctx, domain.TransferEntityID(testTxHash, 2, "5"))
	require.NoError(t, err)
	require.NotNil(t, transfer)
	assert.Equal(t, uint64(1), transfer.SyncingIndex)
}

func TestApplyInvalidEvent(t *testing.T) {
	m, rec := setupTestReconciler(t)
	defer m.ctrl.Finish()

	err := rec.Apply(context.Background(), &domain.Event{
		Type:            domain.EventTypeTransferSingle,
		ContractAddress: testContract,
		From:            testMinter,
		// missing recipient, token number and quantity
		TxHash:   testTxHash,
		LogIndex: 1,
	})
	assert.ErrorContains(t, err, "invalid transfer_single event")
}

func TestApplyNormalizesAddressCase(t *testing.T) {
	m, rec := setupTestReconciler(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.reader.EXPECT().
		Royalties(gomock.Any(), testContract, "2").
		Return(domain.DefaultRoyaltyInfo()).
		Times(1)
	m.reader.EXPECT().
		TokenMaxSupply(gomock.Any(), testContract, "2").
		Return(big.NewInt(0)).
		Times(1)
	m.reader.EXPECT().
		TokenSupply(gomock.Any(), testContract, "2").
		Return(big.NewInt(0)).
		Times(1)
	m.resolver.EXPECT().
		Resolve(gomock.Any(), testContract, "2").
		Return(nil, nil).
		Times(1)

	event := transferSingleEvent(
		domain.ZeroAddress,
		"0x4B20993Bc481177ec7E8f571ceCaE8A9e22C02db", // checksummed testMinter
		"2", "1", 3,
	)
	event.ContractAddress = "0xAB8483F64d9C6d1EcF9b849Ae677dD3315835cb2"
	require.NoError(t, rec.Apply(ctx, event))

	balance, err := m.store.GetUserBalance(ctx, domain.BalanceEntityID(testMinter, "2", testContract))
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.Equal(t, "1", balance.Balance)
}
