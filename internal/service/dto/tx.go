package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fleshka4/amm-dapp-connector/internal/contracts"
)

// TxOp is a state-changing dApp operation.
type TxOp string

const (
	TxApprove  TxOp = "approve"
	TxSwap     TxOp = "swap"
	TxProvide  TxOp = "provide"
	TxWithdraw TxOp = "withdraw"
)

// TxRequest describes a transaction signed by the connected account.
//
//   - approve: Token and AmountIn; the spender is the AMM.
//   - swap: TokenIn, TokenOut and AmountIn.
//   - provide: deposits AmountIn of TokenIn and AmountOut of TokenOut.
//   - withdraw: Share.
type TxRequest struct {
	Op        TxOp
	Token     contracts.TokenKind
	TokenIn   common.Address
	TokenOut  common.Address
	AmountIn  *big.Int
	AmountOut *big.Int
	Share     *big.Int
}
