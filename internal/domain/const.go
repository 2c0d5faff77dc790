package domain

import "math/big"

const (
	// NativeAddress is the sentinel royalty receiver used when the
	// royaltyInfo call reverts.
	NativeAddress = "native"

	// ZeroAddress is the Ethereum zero address; transfers from it are mints
	// at the contract level.
	ZeroAddress = "0x0000000000000000000000000000000000000000"

	// IPFSHashLength is the length of a CIDv0 IPFS hash ("Qm..."). Token URIs
	// emitted by the minter contract end with the metadata document's CID.
	IPFSHashLength = 46

	// RoyaltyBPSDenominator is the basis-points denominator passed to the
	// contract's royaltyInfo call. The returned amount is in the token's
	// native unit, not a ratio.
	RoyaltyBPSDenominator = 10000
)

// RoyaltyBPS returns the basis-points denominator as a big integer for ABI calls.
func RoyaltyBPS() *big.Int {
	return big.NewInt(RoyaltyBPSDenominator)
}
