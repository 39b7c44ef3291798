package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EstimateKind selects what an estimate calculates.
type EstimateKind string

const (
	// EstimateSwapOut: TokenOut received for Amount of TokenIn.
	EstimateSwapOut EstimateKind = "out"
	// EstimateSwapIn: TokenIn needed to receive Amount of TokenOut.
	EstimateSwapIn EstimateKind = "in"
	// EstimateEquivalent: paired token to deposit alongside Amount of TokenIn.
	EstimateEquivalent EstimateKind = "equivalent"
	// EstimateProvide: shares minted for depositing Amount of TokenIn.
	EstimateProvide EstimateKind = "provide"
	// EstimateWithdraw: TokenIn paid out for burning Amount shares.
	EstimateWithdraw EstimateKind = "withdraw"
)

// EstimateRequest represents a request to calculate an off-chain AMM estimate.
// TokenOut is only used by the swap kinds. An empty Kind means EstimateSwapOut.
type EstimateRequest struct {
	Kind     EstimateKind
	TokenIn  common.Address
	TokenOut common.Address
	Amount   *big.Int
}
