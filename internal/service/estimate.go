package service

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/service/dto"
	"github.com/fleshka4/amm-dapp-connector/internal/service/validate"
)

// Estimate calculates off-chain an AMM quantity selected by req.Kind at the
// current pool state.
//
// It validates the request and reads the pool through the AMM handle of the
// current state, so the wallet must be connected and the AMM handle populated.
func (s *DappService) Estimate(ctx context.Context, req dto.EstimateRequest) (*big.Int, error) {
	if req.Kind == "" {
		req.Kind = dto.EstimateSwapOut
	}
	if err := validate.EstimateRequestValidate(req); err != nil {
		return nil, err
	}

	amm := s.conn.State().AMM
	if amm == nil {
		return nil, apperrors.ErrNotReady
	}

	var (
		out *big.Int
		err error
		op  string
	)
	switch req.Kind {
	case dto.EstimateSwapIn:
		op = "amm.Contract.EstimateSwapIn"
		out, err = amm.Contract.EstimateSwapIn(ctx, req.TokenIn, req.TokenOut, req.Amount)
	case dto.EstimateEquivalent:
		op = "amm.Contract.EstimateEquivalent"
		out, err = amm.Contract.EstimateEquivalent(ctx, req.TokenIn, req.Amount)
	case dto.EstimateProvide:
		op = "amm.Contract.EstimateProvideShares"
		out, err = amm.Contract.EstimateProvideShares(ctx, req.TokenIn, req.Amount)
	case dto.EstimateWithdraw:
		op = "amm.Contract.EstimateWithdraw"
		out, err = amm.Contract.EstimateWithdraw(ctx, req.TokenIn, req.Amount)
	default:
		op = "amm.Contract.EstimateSwapOut"
		out, err = amm.Contract.EstimateSwapOut(ctx, req.TokenIn, req.TokenOut, req.Amount)
	}
	if err != nil {
		return nil, readError(op, err)
	}
	return out, nil
}

// readError passes argument and liquidity errors through and marks the rest
// as contract read failures.
func readError(op string, err error) error {
	if errors.Is(err, apperrors.ErrInvalidArgument) || errors.Is(err, apperrors.ErrInsufficientLiquidity) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrContractRead, op, err)
}
