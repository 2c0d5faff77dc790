package ethereum

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"github.com/artzone/artzone-indexer/internal/domain"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/metrics"
)

// unknownValue is substituted for string reads that revert
const unknownValue = "unknown"

// Reader is the revert-tolerant view over the minter contract. A reverted or
// failed call yields a well-defined default instead of an error, so callers
// never see on-chain failures.
//
//go:generate mockgen -source=reader.go -destination=../../mocks/contract_reader.go -package=mocks -mock_names=Reader=MockContractReader
type Reader interface {
	// CollectionName returns the collection name, or "unknown"
	CollectionName(ctx context.Context, contractAddress string) string

	// CollectionSymbol returns the collection symbol, or "unknown"
	CollectionSymbol(ctx context.Context, contractAddress string) string

	// TokenURI returns the metadata URI for a token, or "unknown"
	TokenURI(ctx context.Context, contractAddress, tokenNumber string) string

	// TokenMaxSupply returns the maximum supply for a token, or 0
	TokenMaxSupply(ctx context.Context, contractAddress, tokenNumber string) *big.Int

	// TokenSupply returns the current supply for a token, or 0
	TokenSupply(ctx context.Context, contractAddress, tokenNumber string) *big.Int

	// Royalties returns the royalty amount and receiver for a token at the
	// fixed basis-points denominator, or (0, "native")
	Royalties(ctx context.Context, contractAddress, tokenNumber string) domain.RoyaltyInfo
}

type reader struct {
	client MinterClient
}

// NewReader creates a revert-tolerant reader over a minter client
func NewReader(client MinterClient) Reader {
	return &reader{client: client}
}

// fallback records a substituted default for a failed read
func fallback(op string, err error) {
	metrics.ContractReadFallbacks.WithLabelValues(op).Inc()
	logger.Debug("contract read failed, substituting default", zap.String("op", op), zap.Error(err))
}

// CollectionName returns the collection name, or "unknown"
func (r *reader) CollectionName(ctx context.Context, contractAddress string) string {
	name, err := r.client.Name(ctx, contractAddress)
	if err != nil {
		fallback("name", err)
		return unknownValue
	}
	return name
}

// CollectionSymbol returns the collection symbol, or "unknown"
func (r *reader) CollectionSymbol(ctx context.Context, contractAddress string) string {
	symbol, err := r.client.Symbol(ctx, contractAddress)
	if err != nil {
		fallback("symbol", err)
		return unknownValue
	}
	return symbol
}

// TokenURI returns the metadata URI for a token, or "unknown"
func (r *reader) TokenURI(ctx context.Context, contractAddress, tokenNumber string) string {
	uri, err := r.client.URI(ctx, contractAddress, tokenNumber)
	if err != nil {
		fallback("uri", err)
		return unknownValue
	}
	return uri
}

// TokenMaxSupply returns the maximum supply for a token, or 0
func (r *reader) TokenMaxSupply(ctx context.Context, contractAddress, tokenNumber string) *big.Int {
	supply, err := r.client.TokenMaxSupply(ctx, contractAddress, tokenNumber)
	if err != nil {
		fallback("tokenMaxSupply", err)
		return big.NewInt(0)
	}
	return supply
}

// TokenSupply returns the current supply for a token, or 0
func (r *reader) TokenSupply(ctx context.Context, contractAddress, tokenNumber string) *big.Int {
	supply, err := r.client.TokenSupply(ctx, contractAddress, tokenNumber)
	if err != nil {
		fallback("tokenSupply", err)
		return big.NewInt(0)
	}
	return supply
}

// Royalties returns the royalty amount and receiver for a token. The amount
// is in the token's native unit at the fixed basis-points sale price.
func (r *reader) Royalties(ctx context.Context, contractAddress, tokenNumber string) domain.RoyaltyInfo {
	receiver, amount, err := r.client.RoyaltyInfo(ctx, contractAddress, tokenNumber, domain.RoyaltyBPS())
	if err != nil {
		fallback("royaltyInfo", err)
		return domain.DefaultRoyaltyInfo()
	}

	return domain.RoyaltyInfo{
		Amount:   amount,
		Receiver: domain.NormalizeAddress(receiver.Hex()),
	}
}
