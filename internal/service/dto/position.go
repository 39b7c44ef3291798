package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Position is the liquidity held by Account and what withdrawing all of it
// would pay out in each pool token.
type Position struct {
	Account     common.Address
	Share       *big.Int
	TotalShares *big.Int
	Token0      common.Address
	Token1      common.Address
	Amount0     *big.Int
	Amount1     *big.Int
}
