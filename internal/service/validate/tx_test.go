package validate

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/contracts"
	"github.com/fleshka4/amm-dapp-connector/internal/service/dto"
)

func TestTxRequestValidate(t *testing.T) {
	t.Parallel()

	usdc := common.HexToAddress("0x0a1d32E80B22A5D6D1Bfe58CE158684F8d8Cc125")
	joe := common.HexToAddress("0xf599e56d3e259AD722C88824F1ff614F44B97a2d")

	tests := []struct {
		name    string
		req     dto.TxRequest
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "approve",
			req:     dto.TxRequest{Op: dto.TxApprove, Token: contracts.JOE, AmountIn: big.NewInt(0)},
			wantErr: assert.NoError,
		},
		{
			name:    "approve unknown token",
			req:     dto.TxRequest{Op: dto.TxApprove, AmountIn: big.NewInt(1)},
			wantErr: assert.Error,
		},
		{
			name:    "approve negative",
			req:     dto.TxRequest{Op: dto.TxApprove, Token: contracts.USDC, AmountIn: big.NewInt(-1)},
			wantErr: assert.Error,
		},
		{
			name:    "swap",
			req:     dto.TxRequest{Op: dto.TxSwap, TokenIn: usdc, TokenOut: joe, AmountIn: big.NewInt(1)},
			wantErr: assert.NoError,
		},
		{
			name:    "swap same token",
			req:     dto.TxRequest{Op: dto.TxSwap, TokenIn: usdc, TokenOut: usdc, AmountIn: big.NewInt(1)},
			wantErr: assert.Error,
		},
		{
			name:    "provide",
			req:     dto.TxRequest{Op: dto.TxProvide, TokenIn: usdc, TokenOut: joe, AmountIn: big.NewInt(1), AmountOut: big.NewInt(2)},
			wantErr: assert.NoError,
		},
		{
			name:    "provide missing second amount",
			req:     dto.TxRequest{Op: dto.TxProvide, TokenIn: usdc, TokenOut: joe, AmountIn: big.NewInt(1)},
			wantErr: assert.Error,
		},
		{
			name:    "withdraw",
			req:     dto.TxRequest{Op: dto.TxWithdraw, Share: big.NewInt(5)},
			wantErr: assert.NoError,
		},
		{
			name:    "withdraw zero",
			req:     dto.TxRequest{Op: dto.TxWithdraw, Share: big.NewInt(0)},
			wantErr: assert.Error,
		},
		{
			name:    "unknown op",
			req:     dto.TxRequest{Op: "burn"},
			wantErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := TxRequestValidate(tt.req)
			tt.wantErr(t, err)
			if err != nil {
				require.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
			}
		})
	}
}
