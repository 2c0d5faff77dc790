package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artzone/artzone-indexer/internal/domain"
)

const testContract = "0xab8483f64d9c6d1ecf9b849ae677dd3315835cb2"

func TestEventValid(t *testing.T) {
	tests := []struct {
		name  string
		event domain.Event
		valid bool
	}{
		{
			name: "transfer single",
			event: domain.Event{
				Type:            domain.EventTypeTransferSingle,
				ContractAddress: testContract,
				From:            domain.ZeroAddress,
				To:              "0x4b20993bc481177ec7e8f571cecae8a9e22c02db",
				TokenNumber:     "1",
				Quantity:        "10",
			},
			valid: true,
		},
		{
			name: "transfer single missing quantity",
			event: domain.Event{
				Type:            domain.EventTypeTransferSingle,
				ContractAddress: testContract,
				From:            domain.ZeroAddress,
				To:              "0x4b20993bc481177ec7e8f571cecae8a9e22c02db",
				TokenNumber:     "1",
			},
			valid: false,
		},
		{
			name: "transfer single non-numeric quantity",
			event: domain.Event{
				Type:            domain.EventTypeTransferSingle,
				ContractAddress: testContract,
				From:            domain.ZeroAddress,
				To:              "0x4b20993bc481177ec7e8f571cecae8a9e22c02db",
				TokenNumber:     "1",
				Quantity:        "-5",
			},
			valid: false,
		},
		{
			name: "transfer batch",
			event: domain.Event{
				Type:            domain.EventTypeTransferBatch,
				ContractAddress: testContract,
				From:            domain.ZeroAddress,
				To:              "0x4b20993bc481177ec7e8f571cecae8a9e22c02db",
				TokenNumbers:    []string{"1", "2"},
				Quantities:      []string{"5", "7"},
			},
			valid: true,
		},
		{
			name: "transfer batch zero legs",
			event: domain.Event{
				Type:            domain.EventTypeTransferBatch,
				ContractAddress: testContract,
				From:            domain.ZeroAddress,
				To:              "0x4b20993bc481177ec7e8f571cecae8a9e22c02db",
			},
			valid: true,
		},
		{
			name: "transfer batch length mismatch",
			event: domain.Event{
				Type:            domain.EventTypeTransferBatch,
				ContractAddress: testContract,
				From:            domain.ZeroAddress,
				To:              "0x4b20993bc481177ec7e8f571cecae8a9e22c02db",
				TokenNumbers:    []string{"1", "2"},
				Quantities:      []string{"5"},
			},
			valid: false,
		},
		{
			name: "token initialisation",
			event: domain.Event{
				Type:            domain.EventTypeTokenInitialisation,
				ContractAddress: testContract,
				TokenNumber:     "3",
				RoyaltyPercent:  "1000",
				RoyaltyReceiver: "0x4b20993bc481177ec7e8f571cecae8a9e22c02db",
			},
			valid: true,
		},
		{
			name: "token initialisation missing receiver",
			event: domain.Event{
				Type:            domain.EventTypeTokenInitialisation,
				ContractAddress: testContract,
				TokenNumber:     "3",
				RoyaltyPercent:  "1000",
			},
			valid: false,
		},
		{
			name: "token mint",
			event: domain.Event{
				Type:            domain.EventTypeTokenMint,
				ContractAddress: testContract,
				TokenNumber:     "3",
				Quantity:        "100",
			},
			valid: true,
		},
		{
			name: "missing contract address",
			event: domain.Event{
				Type:        domain.EventTypeTokenMint,
				TokenNumber: "3",
				Quantity:    "100",
			},
			valid: false,
		},
		{
			name: "unknown type",
			event: domain.Event{
				Type:            domain.EventType("uri_updated"),
				ContractAddress: testContract,
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.event.Valid())
		})
	}
}

func TestEventMessageID(t *testing.T) {
	event := domain.Event{
		Type:     domain.EventTypeTransferSingle,
		TxHash:   "0xdeadbeef",
		LogIndex: 42,
	}
	assert.Equal(t, "0xdeadbeef-42-transfer_single", event.MessageID())

	// Two logs from the same transaction produce distinct identifiers
	other := event
	other.LogIndex = 43
	assert.NotEqual(t, event.MessageID(), other.MessageID())
}

func TestDefaultRoyaltyInfo(t *testing.T) {
	info := domain.DefaultRoyaltyInfo()
	assert.Equal(t, "0", info.Amount.String())
	assert.Equal(t, domain.NativeAddress, info.Receiver)
}
