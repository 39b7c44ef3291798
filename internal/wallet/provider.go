package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:generate mockgen -source=provider.go -destination=mock/provider.go -package=mock

// Backend is the chain access a bound contract needs.
// *ethclient.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	ChainID(ctx context.Context) (*big.Int, error)
}

// Provider brokers access to an account and its signing capability.
type Provider interface {
	// Backend returns the chain access the provider is connected to.
	Backend() Backend
	// DefaultSigner returns a signer for the provider's first account.
	DefaultSigner(ctx context.Context) (*Signer, error)
}

// Signer authorizes transactions on behalf of one account.
type Signer struct {
	Account common.Address
	Opts    *bind.TransactOpts

	// signWith returns a signing function that runs its remote calls under
	// ctx. Nil for signers that sign locally.
	signWith func(ctx context.Context) bind.SignerFn
}

// TransactOpts returns a copy of the signer options bound to ctx,
// so per-call tweaks never leak into the shared signer.
func (s *Signer) TransactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *s.Opts
	opts.Context = ctx
	if s.signWith != nil {
		opts.Signer = s.signWith(ctx)
	}
	return &opts
}
