package validate

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/service/dto"
)

func TestEstimateRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     dto.EstimateRequest
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "valid request",
			req:     createValidRequest(),
			wantErr: assert.NoError,
		},
		{
			name: "zero input token",
			req: dto.EstimateRequest{
				TokenIn:  common.Address{},
				TokenOut: common.HexToAddress("0x456"),
				Amount:   big.NewInt(100),
			},
			wantErr: assert.Error,
		},
		{
			name: "zero output token",
			req: dto.EstimateRequest{
				TokenIn:  common.HexToAddress("0x123"),
				TokenOut: common.Address{},
				Amount:   big.NewInt(100),
			},
			wantErr: assert.Error,
		},
		{
			name: "nil amount",
			req: dto.EstimateRequest{
				TokenIn:  common.HexToAddress("0x123"),
				TokenOut: common.HexToAddress("0x456"),
			},
			wantErr: assert.Error,
		},
		{
			name: "zero amount",
			req: dto.EstimateRequest{
				TokenIn:  common.HexToAddress("0x123"),
				TokenOut: common.HexToAddress("0x456"),
				Amount:   big.NewInt(0),
			},
			wantErr: assert.Error,
		},
		{
			name: "negative amount",
			req: dto.EstimateRequest{
				TokenIn:  common.HexToAddress("0x123"),
				TokenOut: common.HexToAddress("0x456"),
				Amount:   big.NewInt(-100),
			},
			wantErr: assert.Error,
		},
		{
			name: "same tokens",
			req: dto.EstimateRequest{
				TokenIn:  common.HexToAddress("0x123"),
				TokenOut: common.HexToAddress("0x123"),
				Amount:   big.NewInt(100),
			},
			wantErr: assert.Error,
		},
		{
			name: "same tokens different case",
			req: dto.EstimateRequest{
				TokenIn:  common.HexToAddress("0xabc123"),
				TokenOut: common.HexToAddress("0xABC123"),
				Amount:   big.NewInt(100),
			},
			wantErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := EstimateRequestValidate(tt.req)
			tt.wantErr(t, err)
			if err != nil {
				require.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
			}
		})
	}
}

func TestEstimateRequestValidate_EdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("very large amount", func(t *testing.T) {
		t.Parallel()

		req := createValidRequest()
		req.Amount = new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)

		require.NoError(t, EstimateRequestValidate(req))
	})

	t.Run("minimal positive amount", func(t *testing.T) {
		t.Parallel()

		req := createValidRequest()
		req.Amount = big.NewInt(1)

		require.NoError(t, EstimateRequestValidate(req))
	})
}

func TestEstimateRequestValidate_Kinds(t *testing.T) {
	t.Parallel()

	usdc := common.HexToAddress("0x0a1d32E80B22A5D6D1Bfe58CE158684F8d8Cc125")

	tests := []struct {
		name    string
		req     dto.EstimateRequest
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "swap in needs both tokens",
			req:     dto.EstimateRequest{Kind: dto.EstimateSwapIn, TokenIn: usdc, Amount: big.NewInt(1)},
			wantErr: assert.Error,
		},
		{
			name:    "equivalent ignores token out",
			req:     dto.EstimateRequest{Kind: dto.EstimateEquivalent, TokenIn: usdc, Amount: big.NewInt(1)},
			wantErr: assert.NoError,
		},
		{
			name:    "provide without token",
			req:     dto.EstimateRequest{Kind: dto.EstimateProvide, Amount: big.NewInt(1)},
			wantErr: assert.Error,
		},
		{
			name:    "withdraw zero share",
			req:     dto.EstimateRequest{Kind: dto.EstimateWithdraw, TokenIn: usdc, Amount: big.NewInt(0)},
			wantErr: assert.Error,
		},
		{
			name:    "unknown kind",
			req:     dto.EstimateRequest{Kind: "spot", TokenIn: usdc, Amount: big.NewInt(1)},
			wantErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := EstimateRequestValidate(tt.req)
			tt.wantErr(t, err)
			if err != nil {
				require.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
			}
		})
	}
}

func createValidRequest() dto.EstimateRequest {
	return dto.EstimateRequest{
		TokenIn:  common.HexToAddress("0x0a1d32E80B22A5D6D1Bfe58CE158684F8d8Cc125"),
		TokenOut: common.HexToAddress("0xf599e56d3e259AD722C88824F1ff614F44B97a2d"),
		Amount:   big.NewInt(1_000_000), // 1 USDC
	}
}
