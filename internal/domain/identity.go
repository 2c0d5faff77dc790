package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// TokenEntityID derives the key shared by the Token and ArtzoneToken entities
// for one logical token under one contract. Injective over (address, id)
// because neither component contains the separator.
func TokenEntityID(contractAddress, tokenNumber string) string {
	return NormalizeAddress(contractAddress) + "-" + tokenNumber
}

// TransferEntityID derives the key of one transfer record. The token number
// is part of the key so that the legs of a batch transfer, which share the
// transaction hash and log index, stay distinct.
func TransferEntityID(txHash string, logIndex uint, tokenNumber string) string {
	return fmt.Sprintf("%s-%d-%s", strings.ToLower(txHash), logIndex, tokenNumber)
}

// BalanceEntityID derives the key of one holder's position in one token.
func BalanceEntityID(holder, tokenNumber, contractAddress string) string {
	return NormalizeAddress(holder) + "-" + tokenNumber + "-" + NormalizeAddress(contractAddress)
}

// NormalizeHash canonicalizes a transaction hash to lowercase hex.
func NormalizeHash(hash string) string {
	return strings.ToLower(hash)
}

// NormalizeAddress canonicalizes an Ethereum address to lowercase hex.
// Non-hex inputs (the "native" sentinel) pass through lowercased.
func NormalizeAddress(address string) string {
	if common.IsHexAddress(address) {
		return strings.ToLower(common.HexToAddress(address).Hex())
	}
	return strings.ToLower(address)
}
