package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/connector"
	"github.com/fleshka4/amm-dapp-connector/internal/contracts"
	"github.com/fleshka4/amm-dapp-connector/internal/service/dto"
)

// Balance reads the holding of req.Account in one token, and its allowance
// toward the AMM when the AMM handle is populated.
func (s *DappService) Balance(ctx context.Context, req dto.BalanceRequest) (*dto.Balance, error) {
	state := s.conn.State()

	handle, err := tokenHandle(state, req.Token)
	if err != nil {
		return nil, err
	}
	token := handle.Contract

	account := req.Account
	if account == (common.Address{}) {
		account = token.Signer().Account
	}

	decimals, err := token.Decimals(ctx)
	if err != nil {
		return nil, readError("token.Decimals", err)
	}
	balance, err := token.BalanceOf(ctx, account)
	if err != nil {
		return nil, readError("token.BalanceOf", err)
	}

	res := &dto.Balance{
		Account:  account,
		Token:    token.Address(),
		Symbol:   handle.Symbol,
		Decimals: decimals,
		Balance:  balance,
	}

	if state.AMM != nil {
		res.Allowance, err = token.Allowance(ctx, account, state.AMM.Contract.Address())
		if err != nil {
			return nil, readError("token.Allowance", err)
		}
	}
	return res, nil
}

func tokenHandle(state connector.State, kind contracts.TokenKind) (*connector.TokenHandle, error) {
	var h *connector.TokenHandle
	switch kind {
	case contracts.USDC:
		h = state.USDC
	case contracts.JOE:
		h = state.JOE
	default:
		return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "unknown token kind %d", kind)
	}
	if h == nil {
		return nil, apperrors.ErrNotReady
	}
	return h, nil
}
