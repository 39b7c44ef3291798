package validate

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ConnectRequestValidate validates /connect request and returns the account.
// An empty account is valid and means disconnect.
func ConnectRequestValidate(r *http.Request) (string, int, error) {
	if r.Method != http.MethodPost {
		return "", http.StatusMethodNotAllowed, errors.New("method not allowed")
	}

	account := r.URL.Query().Get("account")
	if account != "" && !common.IsHexAddress(account) {
		return "", http.StatusBadRequest, errors.New("bad account format")
	}
	return account, 0, nil
}
