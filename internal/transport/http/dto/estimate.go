package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EstimateRequest represents a parsed HTTP request for the /estimate endpoint.
type EstimateRequest struct {
	Kind     string
	TokenIn  common.Address
	TokenOut common.Address
	Amount   *big.Int
}
