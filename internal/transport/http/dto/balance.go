package dto

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/fleshka4/amm-dapp-connector/internal/contracts"
)

// BalanceRequest represents a parsed HTTP request for the /balance endpoint.
type BalanceRequest struct {
	Token   contracts.TokenKind
	Account common.Address
}

// BalanceResponse is the body of the /balance endpoint. Amounts are base-10
// integers in the token's smallest unit.
type BalanceResponse struct {
	Account   string  `json:"account"`
	Token     string  `json:"token"`
	Symbol    string  `json:"symbol"`
	Decimals  uint8   `json:"decimals"`
	Balance   string  `json:"balance"`
	Allowance *string `json:"allowance,omitempty"`
}

// PositionResponse is the body of the /position endpoint.
type PositionResponse struct {
	Account     string `json:"account"`
	Share       string `json:"share"`
	TotalShares string `json:"totalShares"`
	Token0      string `json:"token0"`
	Token1      string `json:"token1"`
	Amount0     string `json:"amount0"`
	Amount1     string `json:"amount1"`
}
