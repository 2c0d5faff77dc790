package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/artzone/artzone-indexer/internal/adapter"
)

// minterABIJSON covers the read-only surface of the ArtzoneMinter contract
// that the indexer consumes.
const minterABIJSON = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"uri","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenMaxSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"},{"name":"salePrice","type":"uint256"}],"name":"royaltyInfo","outputs":[{"name":"receiver","type":"address"},{"name":"royaltyAmount","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

var minterABI = mustParseABI(minterABIJSON)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(fmt.Sprintf("invalid minter ABI: %v", err))
	}
	return parsed
}

// MinterClient performs raw read calls against an ArtzoneMinter contract.
// Every method propagates reverts and transport errors; the Reader layers
// the fallback semantics on top.
//
//go:generate mockgen -source=client.go -destination=../../mocks/minter_client.go -package=mocks -mock_names=MinterClient=MockMinterClient
type MinterClient interface {
	// Name fetches the collection name
	Name(ctx context.Context, contractAddress string) (string, error)

	// Symbol fetches the collection symbol
	Symbol(ctx context.Context, contractAddress string) (string, error)

	// URI fetches the metadata URI for a token
	URI(ctx context.Context, contractAddress, tokenNumber string) (string, error)

	// TokenMaxSupply fetches the maximum supply for a token
	TokenMaxSupply(ctx context.Context, contractAddress, tokenNumber string) (*big.Int, error)

	// TokenSupply fetches the current supply for a token
	TokenSupply(ctx context.Context, contractAddress, tokenNumber string) (*big.Int, error)

	// RoyaltyInfo fetches the royalty receiver and amount for a token at the
	// given sale price
	RoyaltyInfo(ctx context.Context, contractAddress, tokenNumber string, salePrice *big.Int) (common.Address, *big.Int, error)
}

type minterClient struct {
	client adapter.EthClient
}

// NewMinterClient creates a minter contract client over an Ethereum connection
func NewMinterClient(client adapter.EthClient) MinterClient {
	return &minterClient{client: client}
}

// call packs and executes a read-only contract call
func (c *minterClient) call(ctx context.Context, contractAddress, method string, args ...interface{}) ([]byte, error) {
	data, err := minterABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	contractAddr := common.HexToAddress(contractAddress)
	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	return result, nil
}

func (c *minterClient) stringCall(ctx context.Context, contractAddress, method string, args ...interface{}) (string, error) {
	result, err := c.call(ctx, contractAddress, method, args...)
	if err != nil {
		return "", err
	}

	var value string
	if err := minterABI.UnpackIntoInterface(&value, method, result); err != nil {
		return "", fmt.Errorf("failed to unpack %s result: %w", method, err)
	}

	return value, nil
}

func (c *minterClient) uintCall(ctx context.Context, contractAddress, method string, args ...interface{}) (*big.Int, error) {
	result, err := c.call(ctx, contractAddress, method, args...)
	if err != nil {
		return nil, err
	}

	var value *big.Int
	if err := minterABI.UnpackIntoInterface(&value, method, result); err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}

	return value, nil
}

// Name fetches the collection name
func (c *minterClient) Name(ctx context.Context, contractAddress string) (string, error) {
	return c.stringCall(ctx, contractAddress, "name")
}

// Symbol fetches the collection symbol
func (c *minterClient) Symbol(ctx context.Context, contractAddress string) (string, error) {
	return c.stringCall(ctx, contractAddress, "symbol")
}

// URI fetches the metadata URI for a token
func (c *minterClient) URI(ctx context.Context, contractAddress, tokenNumber string) (string, error) {
	tokenID, err := parseTokenNumber(tokenNumber)
	if err != nil {
		return "", err
	}
	return c.stringCall(ctx, contractAddress, "uri", tokenID)
}

// TokenMaxSupply fetches the maximum supply for a token
func (c *minterClient) TokenMaxSupply(ctx context.Context, contractAddress, tokenNumber string) (*big.Int, error) {
	tokenID, err := parseTokenNumber(tokenNumber)
	if err != nil {
		return nil, err
	}
	return c.uintCall(ctx, contractAddress, "tokenMaxSupply", tokenID)
}

// TokenSupply fetches the current supply for a token
func (c *minterClient) TokenSupply(ctx context.Context, contractAddress, tokenNumber string) (*big.Int, error) {
	tokenID, err := parseTokenNumber(tokenNumber)
	if err != nil {
		return nil, err
	}
	return c.uintCall(ctx, contractAddress, "tokenSupply", tokenID)
}

// RoyaltyInfo fetches the royalty receiver and amount for a token at the given sale price
func (c *minterClient) RoyaltyInfo(ctx context.Context, contractAddress, tokenNumber string, salePrice *big.Int) (common.Address, *big.Int, error) {
	tokenID, err := parseTokenNumber(tokenNumber)
	if err != nil {
		return common.Address{}, nil, err
	}

	result, err := c.call(ctx, contractAddress, "royaltyInfo", tokenID, salePrice)
	if err != nil {
		return common.Address{}, nil, err
	}

	values, err := minterABI.Unpack("royaltyInfo", result)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("failed to unpack royaltyInfo result: %w", err)
	}
	if len(values) != 2 {
		return common.Address{}, nil, fmt.Errorf("unexpected royaltyInfo result arity: %d", len(values))
	}

	receiver, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, nil, fmt.Errorf("unexpected royaltyInfo receiver type %T", values[0])
	}
	amount, ok := values[1].(*big.Int)
	if !ok {
		return common.Address{}, nil, fmt.Errorf("unexpected royaltyInfo amount type %T", values[1])
	}

	return receiver, amount, nil
}

func parseTokenNumber(tokenNumber string) (*big.Int, error) {
	tokenID, ok := new(big.Int).SetString(tokenNumber, 10)
	if !ok {
		return nil, fmt.Errorf("invalid token number: %s", tokenNumber)
	}
	return tokenID, nil
}
