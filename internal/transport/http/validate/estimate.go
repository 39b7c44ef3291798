package validate

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/transport/http/dto"
)

// EstimateRequestValidate validates /estimate request and returns dto.
//
// The query depends on kind:
//
//	out (default)  token_in, token_out, amount_in
//	in             token_in, token_out, amount_out
//	equivalent     token_in, amount_in
//	provide        token_in, amount_in
//	withdraw       token_out, share
//
// For withdraw the paid out token is returned in TokenIn.
func EstimateRequestValidate(r *http.Request) (*dto.EstimateRequest, int, error) {
	if r.Method != http.MethodGet {
		return nil, http.StatusMethodNotAllowed, errors.New("method not allowed")
	}

	q := r.URL.Query()
	req := &dto.EstimateRequest{Kind: q.Get("kind")}
	if req.Kind == "" {
		req.Kind = "out"
	}

	var (
		tokenIn, tokenOut common.Address
		amt               *big.Int
		err               error
	)
	switch req.Kind {
	case "out", "in":
		if tokenIn, err = address(q, "token_in"); err != nil {
			break
		}
		if tokenOut, err = address(q, "token_out"); err != nil {
			break
		}
		name := "amount_in"
		if req.Kind == "in" {
			name = "amount_out"
		}
		amt, err = amount(q, name, false)
	case "equivalent", "provide":
		if tokenIn, err = address(q, "token_in"); err != nil {
			break
		}
		amt, err = amount(q, "amount_in", false)
	case "withdraw":
		if tokenIn, err = address(q, "token_out"); err != nil {
			break
		}
		amt, err = amount(q, "share", false)
	default:
		err = errors.Errorf("unknown kind %q", req.Kind)
	}
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	req.TokenIn = tokenIn
	req.TokenOut = tokenOut
	req.Amount = amt
	return req, 0, nil
}
