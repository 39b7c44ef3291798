package validate

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/contracts"
	"github.com/fleshka4/amm-dapp-connector/internal/transport/http/dto"
)

// BalanceRequestValidate validates /balance request. The account is optional.
func BalanceRequestValidate(r *http.Request) (*dto.BalanceRequest, int, error) {
	if r.Method != http.MethodGet {
		return nil, http.StatusMethodNotAllowed, errors.New("method not allowed")
	}

	q := r.URL.Query()
	kind, err := contracts.ParseTokenKind(q.Get("token"))
	if err != nil {
		return nil, http.StatusBadRequest, errors.New("token must be usdc or joe")
	}
	account, err := optionalAddress(q, "account")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &dto.BalanceRequest{Token: kind, Account: account}, 0, nil
}

// PositionRequestValidate validates /position request and returns the
// account, zero when absent.
func PositionRequestValidate(r *http.Request) (common.Address, int, error) {
	if r.Method != http.MethodGet {
		return common.Address{}, http.StatusMethodNotAllowed, errors.New("method not allowed")
	}

	account, err := optionalAddress(r.URL.Query(), "account")
	if err != nil {
		return common.Address{}, http.StatusBadRequest, err
	}
	return account, 0, nil
}
