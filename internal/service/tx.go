package service

import (
	"context"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/service/dto"
	"github.com/fleshka4/amm-dapp-connector/internal/service/validate"
)

// Submit signs and sends the transaction described by req from the connected
// account.
func (s *DappService) Submit(ctx context.Context, req dto.TxRequest) (*types.Transaction, error) {
	if err := validate.TxRequestValidate(req); err != nil {
		return nil, err
	}

	state := s.conn.State()
	if state.AMM == nil {
		return nil, apperrors.ErrNotReady
	}
	amm := state.AMM.Contract

	var (
		tx  *types.Transaction
		err error
		op  string
	)
	switch req.Op {
	case dto.TxApprove:
		handle, herr := tokenHandle(state, req.Token)
		if herr != nil {
			return nil, herr
		}
		op = "token.Approve"
		tx, err = handle.Contract.Approve(ctx, amm.Address(), req.AmountIn)
	case dto.TxSwap:
		op = "amm.Swap"
		tx, err = amm.Swap(ctx, req.TokenIn, req.TokenOut, req.AmountIn)
	case dto.TxProvide:
		op = "amm.Provide"
		tx, err = amm.Provide(ctx, req.TokenIn, req.AmountIn, req.TokenOut, req.AmountOut)
	case dto.TxWithdraw:
		op = "amm.Withdraw"
		tx, err = amm.Withdraw(ctx, req.Share)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrTxFailed, op, err)
	}
	return tx, nil
}
