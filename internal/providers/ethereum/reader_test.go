package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/artzone/artzone-indexer/internal/domain"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/mocks"
	"github.com/artzone/artzone-indexer/internal/providers/ethereum"
)

const testContract = "0xab8483f64d9c6d1ecf9b849ae677dd3315835cb2"

var errExecutionReverted = errors.New("execution reverted")

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func setupTestReader(t *testing.T) (*mocks.MockMinterClient, ethereum.Reader) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMinterClient(ctrl)
	return client, ethereum.NewReader(client)
}

func TestCollectionName(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(client *mocks.MockMinterClient)
		expected   string
	}{
		{
			name: "successful read",
			setupMocks: func(client *mocks.MockMinterClient) {
				client.EXPECT().
					Name(gomock.Any(), testContract).
					Return("Artzone Collection", nil)
			},
			expected: "Artzone Collection",
		},
		{
			name: "reverted read yields unknown",
			setupMocks: func(client *mocks.MockMinterClient) {
				client.EXPECT().
					Name(gomock.Any(), testContract).
					Return("", errExecutionReverted)
			},
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, reader := setupTestReader(t)
			tt.setupMocks(client)

			assert.Equal(t, tt.expected, reader.CollectionName(context.Background(), testContract))
		})
	}
}

func TestCollectionSymbol(t *testing.T) {
	client, reader := setupTestReader(t)

	client.EXPECT().
		Symbol(gomock.Any(), testContract).
		Return("", errExecutionReverted)

	assert.Equal(t, "unknown", reader.CollectionSymbol(context.Background(), testContract))
}

func TestTokenURI(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(client *mocks.MockMinterClient)
		expected   string
	}{
		{
			name: "successful read",
			setupMocks: func(client *mocks.MockMinterClient) {
				client.EXPECT().
					URI(gomock.Any(), testContract, "1").
					Return("ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", nil)
			},
			expected: "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
		},
		{
			name: "reverted read yields unknown",
			setupMocks: func(client *mocks.MockMinterClient) {
				client.EXPECT().
					URI(gomock.Any(), testContract, "1").
					Return("", errExecutionReverted)
			},
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, reader := setupTestReader(t)
			tt.setupMocks(client)

			assert.Equal(t, tt.expected, reader.TokenURI(context.Background(), testContract, "1"))
		})
	}
}

func TestTokenSupplies(t *testing.T) {
	client, reader := setupTestReader(t)

	client.EXPECT().
		TokenMaxSupply(gomock.Any(), testContract, "1").
		Return(big.NewInt(100), nil)
	client.EXPECT().
		TokenSupply(gomock.Any(), testContract, "1").
		Return(nil, errExecutionReverted)

	ctx := context.Background()
	assert.Equal(t, "100", reader.TokenMaxSupply(ctx, testContract, "1").String())

	// A failed supply read degrades to zero, never an error
	assert.Equal(t, "0", reader.TokenSupply(ctx, testContract, "1").String())
}

func TestRoyalties(t *testing.T) {
	tests := []struct {
		name             string
		setupMocks       func(client *mocks.MockMinterClient)
		expectedAmount   string
		expectedReceiver string
	}{
		{
			name: "successful read normalizes receiver",
			setupMocks: func(client *mocks.MockMinterClient) {
				client.EXPECT().
					RoyaltyInfo(gomock.Any(), testContract, "1", domain.RoyaltyBPS()).
					Return(common.HexToAddress("0x4B20993Bc481177ec7E8f571ceCaE8A9e22C02db"), big.NewInt(500), nil)
			},
			expectedAmount:   "500",
			expectedReceiver: "0x4b20993bc481177ec7e8f571cecae8a9e22c02db",
		},
		{
			name: "reverted read yields native default",
			setupMocks: func(client *mocks.MockMinterClient) {
				client.EXPECT().
					RoyaltyInfo(gomock.Any(), testContract, "1", domain.RoyaltyBPS()).
					Return(common.Address{}, nil, errExecutionReverted)
			},
			expectedAmount:   "0",
			expectedReceiver: domain.NativeAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, reader := setupTestReader(t)
			tt.setupMocks(client)

			info := reader.Royalties(context.Background(), testContract, "1")
			assert.Equal(t, tt.expectedAmount, info.Amount.String())
			assert.Equal(t, tt.expectedReceiver, info.Receiver)
		})
	}
}
