package validate

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/service/dto"
)

var zeroAddress = common.Address{}

// EstimateRequestValidate validates business logic request.
func EstimateRequestValidate(req dto.EstimateRequest) error {
	switch req.Kind {
	case "", dto.EstimateSwapOut, dto.EstimateSwapIn:
		if req.TokenIn == zeroAddress || req.TokenOut == zeroAddress {
			return errors.Wrap(apperrors.ErrInvalidArgument, "address cannot be empty")
		}
		if req.TokenIn == req.TokenOut {
			return errors.Wrap(apperrors.ErrInvalidArgument, "output token cannot be the same as input token")
		}
	case dto.EstimateEquivalent, dto.EstimateProvide, dto.EstimateWithdraw:
		if req.TokenIn == zeroAddress {
			return errors.Wrap(apperrors.ErrInvalidArgument, "address cannot be empty")
		}
	default:
		return errors.Wrapf(apperrors.ErrInvalidArgument, "unknown estimate kind %q", req.Kind)
	}

	return positive(req.Amount, "amount")
}

func positive(x *big.Int, name string) error {
	if x == nil || x.Sign() <= 0 {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "%s cannot be zero or negative", name)
	}
	return nil
}
