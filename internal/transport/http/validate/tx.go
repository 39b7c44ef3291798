package validate

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/contracts"
	servicedto "github.com/fleshka4/amm-dapp-connector/internal/service/dto"
)

// TxRequestValidate validates /tx request. The query depends on op:
//
//	approve   token, amount
//	swap      token_in, token_out, amount_in
//	provide   token_in, amount_in, token_out, amount_out
//	withdraw  share
func TxRequestValidate(r *http.Request) (*servicedto.TxRequest, int, error) {
	if r.Method != http.MethodPost {
		return nil, http.StatusMethodNotAllowed, errors.New("method not allowed")
	}

	q := r.URL.Query()
	req := &servicedto.TxRequest{Op: servicedto.TxOp(q.Get("op"))}

	var err error
	switch req.Op {
	case servicedto.TxApprove:
		if req.Token, err = contracts.ParseTokenKind(q.Get("token")); err != nil {
			err = errors.New("token must be usdc or joe")
			break
		}
		req.AmountIn, err = amount(q, "amount", true)
	case servicedto.TxSwap, servicedto.TxProvide:
		if req.TokenIn, err = address(q, "token_in"); err != nil {
			break
		}
		if req.TokenOut, err = address(q, "token_out"); err != nil {
			break
		}
		if req.AmountIn, err = amount(q, "amount_in", false); err != nil {
			break
		}
		if req.Op == servicedto.TxProvide {
			req.AmountOut, err = amount(q, "amount_out", false)
		}
	case servicedto.TxWithdraw:
		req.Share, err = amount(q, "share", false)
	default:
		err = errors.Errorf("unknown op %q", req.Op)
	}
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return req, 0, nil
}
