package ethereum

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/artzone/artzone-indexer/internal/domain"
)

// Event signatures emitted by the ArtzoneMinter contract
var (
	// ERC1155 TransferSingle(address indexed operator, address indexed from, address indexed to, uint256 id, uint256 value)
	transferSingleEventSignature = crypto.Keccak256Hash([]byte("TransferSingle(address,address,address,uint256,uint256)"))

	// ERC1155 TransferBatch(address indexed operator, address indexed from, address indexed to, uint256[] ids, uint256[] values)
	transferBatchEventSignature = crypto.Keccak256Hash([]byte("TransferBatch(address,address,address,uint256[],uint256[])"))

	// TokenInitialisation(uint256 indexed tokenId, uint256 royaltyPercent, address royaltyAddr)
	tokenInitialisationEventSignature = crypto.Keccak256Hash([]byte("TokenInitialisation(uint256,uint256,address)"))

	// TokenMint(uint256 indexed tokenId, uint256 quantity)
	tokenMintEventSignature = crypto.Keccak256Hash([]byte("TokenMint(uint256,uint256)"))
)

// EventSignatures lists the topic hashes of every minter event the emitter
// subscribes to
func EventSignatures() []common.Hash {
	return []common.Hash{
		transferSingleEventSignature,
		transferBatchEventSignature,
		tokenInitialisationEventSignature,
		tokenMintEventSignature,
	}
}

// minterEventsABIJSON describes the minter events with non-indexed parameters,
// used to unpack the log data sections.
const minterEventsABIJSON = `[
	{"anonymous":false,"inputs":[{"indexed":true,"name":"operator","type":"address"},{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"id","type":"uint256"},{"indexed":false,"name":"value","type":"uint256"}],"name":"TransferSingle","type":"event"},
	{"anonymous":false,"inputs":[{"indexed":true,"name":"operator","type":"address"},{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"ids","type":"uint256[]"},{"indexed":false,"name":"values","type":"uint256[]"}],"name":"TransferBatch","type":"event"},
	{"anonymous":false,"inputs":[{"indexed":true,"name":"tokenId","type":"uint256"},{"indexed":false,"name":"royaltyPercent","type":"uint256"},{"indexed":false,"name":"royaltyAddr","type":"address"}],"name":"TokenInitialisation","type":"event"},
	{"anonymous":false,"inputs":[{"indexed":true,"name":"tokenId","type":"uint256"},{"indexed":false,"name":"quantity","type":"uint256"}],"name":"TokenMint","type":"event"}
]`

var minterEventsABI = mustParseABI(minterEventsABIJSON)

// ParseEventLog decodes one minter contract log into a normalized event.
// The block timestamp is supplied by the caller because logs do not carry it.
func ParseEventLog(vLog types.Log, blockTimestamp uint64) (*domain.Event, error) {
	if len(vLog.Topics) == 0 {
		return nil, fmt.Errorf("log without topics in tx %s", vLog.TxHash.Hex())
	}

	event := &domain.Event{
		ContractAddress: domain.NormalizeAddress(vLog.Address.Hex()),
		TxHash:          domain.NormalizeHash(vLog.TxHash.Hex()),
		LogIndex:        vLog.Index,
		BlockNumber:     vLog.BlockNumber,
		BlockTimestamp:  blockTimestamp,
	}

	switch vLog.Topics[0] {
	case transferSingleEventSignature:
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid TransferSingle event: expected 4 topics, got %d", len(vLog.Topics))
		}
		if len(vLog.Data) < 64 {
			return nil, fmt.Errorf("invalid TransferSingle event: insufficient data")
		}

		event.Type = domain.EventTypeTransferSingle
		event.From = domain.NormalizeAddress(common.BytesToAddress(vLog.Topics[2].Bytes()).Hex())
		event.To = domain.NormalizeAddress(common.BytesToAddress(vLog.Topics[3].Bytes()).Hex())

		// First 32 bytes of data = token ID, next 32 bytes = value
		event.TokenNumber = new(big.Int).SetBytes(vLog.Data[0:32]).String()
		event.Quantity = new(big.Int).SetBytes(vLog.Data[32:64]).String()

	case transferBatchEventSignature:
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid TransferBatch event: expected 4 topics, got %d", len(vLog.Topics))
		}

		event.Type = domain.EventTypeTransferBatch
		event.From = domain.NormalizeAddress(common.BytesToAddress(vLog.Topics[2].Bytes()).Hex())
		event.To = domain.NormalizeAddress(common.BytesToAddress(vLog.Topics[3].Bytes()).Hex())

		values, err := minterEventsABI.Unpack("TransferBatch", vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack TransferBatch data: %w", err)
		}
		if len(values) != 2 {
			return nil, fmt.Errorf("unexpected TransferBatch data arity: %d", len(values))
		}

		ids, ok := values[0].([]*big.Int)
		if !ok {
			return nil, fmt.Errorf("unexpected TransferBatch ids type %T", values[0])
		}
		amounts, ok := values[1].([]*big.Int)
		if !ok {
			return nil, fmt.Errorf("unexpected TransferBatch values type %T", values[1])
		}
		if len(ids) != len(amounts) {
			return nil, fmt.Errorf("TransferBatch length mismatch: %d ids, %d values", len(ids), len(amounts))
		}

		event.TokenNumbers = make([]string, len(ids))
		event.Quantities = make([]string, len(amounts))
		for i := range ids {
			event.TokenNumbers[i] = ids[i].String()
			event.Quantities[i] = amounts[i].String()
		}

	case tokenInitialisationEventSignature:
		if len(vLog.Topics) != 2 {
			return nil, fmt.Errorf("invalid TokenInitialisation event: expected 2 topics, got %d", len(vLog.Topics))
		}
		if len(vLog.Data) < 64 {
			return nil, fmt.Errorf("invalid TokenInitialisation event: insufficient data")
		}

		event.Type = domain.EventTypeTokenInitialisation
		event.TokenNumber = new(big.Int).SetBytes(vLog.Topics[1].Bytes()).String()
		event.RoyaltyPercent = new(big.Int).SetBytes(vLog.Data[0:32]).String()
		event.RoyaltyReceiver = domain.NormalizeAddress(common.BytesToAddress(vLog.Data[32:64]).Hex())

	case tokenMintEventSignature:
		if len(vLog.Topics) != 2 {
			return nil, fmt.Errorf("invalid TokenMint event: expected 2 topics, got %d", len(vLog.Topics))
		}
		if len(vLog.Data) < 32 {
			return nil, fmt.Errorf("invalid TokenMint event: insufficient data")
		}

		event.Type = domain.EventTypeTokenMint
		event.TokenNumber = new(big.Int).SetBytes(vLog.Topics[1].Bytes()).String()
		event.Quantity = new(big.Int).SetBytes(vLog.Data[0:32]).String()

	default:
		return nil, fmt.Errorf("unknown event signature: %s", vLog.Topics[0].Hex())
	}

	return event, nil
}
