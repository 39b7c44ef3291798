package validate

import (
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/contracts"
	"github.com/fleshka4/amm-dapp-connector/internal/service/dto"
)

// TxRequestValidate validates a transaction request.
func TxRequestValidate(req dto.TxRequest) error {
	switch req.Op {
	case dto.TxApprove:
		if req.Token != contracts.USDC && req.Token != contracts.JOE {
			return errors.Wrap(apperrors.ErrInvalidArgument, "unknown token")
		}
		if req.AmountIn == nil || req.AmountIn.Sign() < 0 {
			return errors.Wrap(apperrors.ErrInvalidArgument, "amount cannot be negative")
		}
		return nil
	case dto.TxSwap, dto.TxProvide:
		if req.TokenIn == zeroAddress || req.TokenOut == zeroAddress {
			return errors.Wrap(apperrors.ErrInvalidArgument, "address cannot be empty")
		}
		if req.TokenIn == req.TokenOut {
			return errors.Wrap(apperrors.ErrInvalidArgument, "tokens cannot be the same")
		}
		if err := positive(req.AmountIn, "amount in"); err != nil {
			return err
		}
		if req.Op == dto.TxProvide {
			return positive(req.AmountOut, "amount out")
		}
		return nil
	case dto.TxWithdraw:
		return positive(req.Share, "share")
	default:
		return errors.Wrapf(apperrors.ErrInvalidArgument, "unknown operation %q", req.Op)
	}
}
