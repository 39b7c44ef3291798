package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fleshka4/amm-dapp-connector/internal/contracts"
)

// BalanceRequest asks for the holdings of Account in one token. A zero
// Account means the connected account.
type BalanceRequest struct {
	Token   contracts.TokenKind
	Account common.Address
}

// Balance is a token holding. Allowance is what the AMM may spend on behalf
// of Account, nil while the AMM handle is not populated.
type Balance struct {
	Account   common.Address
	Token     common.Address
	Symbol    string
	Decimals  uint8
	Balance   *big.Int
	Allowance *big.Int
}
