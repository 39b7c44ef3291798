package contracts

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/wallet"
)

// TokenKind selects one of the token contracts the dApp knows about.
type TokenKind int

const (
	USDC TokenKind = iota + 1
	JOE
)

func (k TokenKind) String() string {
	switch k {
	case USDC:
		return "usdc"
	case JOE:
		return "joe"
	default:
		return "unknown"
	}
}

// ParseTokenKind parses the lowercase name of a token kind.
func ParseTokenKind(s string) (TokenKind, error) {
	switch s {
	case "usdc":
		return USDC, nil
	case "joe":
		return JOE, nil
	default:
		return 0, errors.Wrapf(apperrors.ErrInvalidArgument, "unknown token %q", s)
	}
}

// Token is the capability shared by the token contracts.
// The set of implementations is closed: *USDCToken and *JOEToken.
type Token interface {
	Kind() TokenKind
	Address() common.Address
	Signer() *wallet.Signer

	Symbol(ctx context.Context) (string, error)
	Decimals(ctx context.Context) (uint8, error)
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
	Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error)
	Approve(ctx context.Context, spender common.Address, amount *big.Int) (*types.Transaction, error)

	sealed()
}

// USDCToken is the USDC token handle.
type USDCToken struct{ erc20 }

// Kind returns USDC.
func (*USDCToken) Kind() TokenKind { return USDC }

// JOEToken is the JOE token handle.
type JOEToken struct{ erc20 }

// Kind returns JOE.
func (*JOEToken) Kind() TokenKind { return JOE }

// NewToken binds the token variant selected by kind.
func NewToken(
	kind TokenKind,
	desc Descriptor,
	backend wallet.Backend,
	signer *wallet.Signer,
	callTimeout time.Duration,
) (Token, error) {
	if kind != USDC && kind != JOE {
		return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "unknown token kind %d", kind)
	}

	bc, err := Bind(desc, backend, signer, callTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "Bind")
	}

	if kind == USDC {
		return &USDCToken{erc20{bc}}, nil
	}
	return &JOEToken{erc20{bc}}, nil
}

type erc20 struct {
	*BoundContract
}

func (erc20) sealed() {}

// Symbol returns the token symbol.
func (t erc20) Symbol(ctx context.Context) (string, error) {
	out, err := t.call(ctx, "symbol")
	if err != nil {
		return "", errors.Wrap(err, "t.call")
	}
	s, ok := out[0].(string)
	if !ok {
		return "", errors.New("failed to cast symbol result to string")
	}
	return s, nil
}

// Decimals returns the token decimals.
func (t erc20) Decimals(ctx context.Context) (uint8, error) {
	out, err := t.call(ctx, "decimals")
	if err != nil {
		return 0, errors.Wrap(err, "t.call")
	}
	d, ok := out[0].(uint8)
	if !ok {
		return 0, errors.New("failed to cast decimals result to uint8")
	}
	return d, nil
}

// BalanceOf returns the token balance of account.
func (t erc20) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return t.callBig(ctx, "balanceOf", account)
}

// Allowance returns how much spender may transfer on behalf of owner.
func (t erc20) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	return t.callBig(ctx, "allowance", owner, spender)
}

// Approve lets spender transfer up to amount from the signer account.
func (t erc20) Approve(ctx context.Context, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "approve amount cannot be negative")
	}
	return t.transact(ctx, "approve", spender, amount)
}
