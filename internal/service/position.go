package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/service/dto"
)

// Position reads the pool share of account and what withdrawing it would pay
// out. A zero account means the connected account.
func (s *DappService) Position(ctx context.Context, account common.Address) (*dto.Position, error) {
	amm := s.conn.State().AMM
	if amm == nil {
		return nil, apperrors.ErrNotReady
	}
	if account == (common.Address{}) {
		account = amm.Contract.Signer().Account
	}

	share, err := amm.Contract.Share(ctx, account)
	if err != nil {
		return nil, readError("amm.Contract.Share", err)
	}
	total, err := amm.Contract.TotalShares(ctx)
	if err != nil {
		return nil, readError("amm.Contract.TotalShares", err)
	}
	token0, token1, err := amm.Contract.PoolTokens(ctx)
	if err != nil {
		return nil, readError("amm.Contract.PoolTokens", err)
	}

	res := &dto.Position{
		Account:     account,
		Share:       share,
		TotalShares: total,
		Token0:      token0,
		Token1:      token1,
		Amount0:     new(big.Int),
		Amount1:     new(big.Int),
	}
	if share.Sign() == 0 {
		return res, nil
	}

	if res.Amount0, err = amm.Contract.EstimateWithdraw(ctx, token0, share); err != nil {
		return nil, readError("amm.Contract.EstimateWithdraw", err)
	}
	if res.Amount1, err = amm.Contract.EstimateWithdraw(ctx, token1, share); err != nil {
		return nil, readError("amm.Contract.EstimateWithdraw", err)
	}
	return res, nil
}
