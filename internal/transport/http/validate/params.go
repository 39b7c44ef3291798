package validate

import (
	"math/big"
	"net/url"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

func address(q url.Values, name string) (common.Address, error) {
	v := q.Get(name)
	if v == "" {
		return common.Address{}, errors.Errorf("missing %s", name)
	}
	if !common.IsHexAddress(v) {
		return common.Address{}, errors.Errorf("bad %s format", name)
	}
	return common.HexToAddress(v), nil
}

// optionalAddress returns the zero address when name is absent.
func optionalAddress(q url.Values, name string) (common.Address, error) {
	if q.Get(name) == "" {
		return common.Address{}, nil
	}
	return address(q, name)
}

// amount parses a base-10 integer. Zero is accepted only with allowZero.
func amount(q url.Values, name string, allowZero bool) (*big.Int, error) {
	v := q.Get(name)
	if v == "" {
		return nil, errors.Errorf("missing %s", name)
	}
	a, ok := new(big.Int).SetString(v, 10)
	if !ok || a.Sign() < 0 || (a.Sign() == 0 && !allowZero) {
		return nil, errors.Errorf("bad %s", name)
	}
	return a, nil
}
