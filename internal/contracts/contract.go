package contracts

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/wallet"
)

// BoundContract is a contract handle bound to a signer.
// Reads are eth_call from the signer account, writes are legacy transactions
// signed by it.
type BoundContract struct {
	desc    Descriptor
	backend wallet.Backend
	signer  *wallet.Signer

	callTimeout time.Duration
}

// Bind creates a contract handle. A zero callTimeout disables per-call timeouts.
func Bind(desc Descriptor, backend wallet.Backend, signer *wallet.Signer, callTimeout time.Duration) (*BoundContract, error) {
	if desc.Address == (common.Address{}) {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "contract address cannot be empty")
	}
	if len(desc.ABI.Methods) == 0 {
		return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "abi of %s has no methods", desc.Name)
	}
	if backend == nil {
		return nil, errors.Wrap(apperrors.ErrNoProvider, "backend is nil")
	}
	if signer == nil || signer.Opts == nil || signer.Opts.Signer == nil {
		return nil, errors.Wrap(apperrors.ErrNoAccount, "signer is empty")
	}

	return &BoundContract{
		desc:    desc,
		backend: backend,
		signer:  signer,

		callTimeout: callTimeout,
	}, nil
}

// Address returns the contract address.
func (c *BoundContract) Address() common.Address {
	return c.desc.Address
}

// Name returns the contract name from its artifact.
func (c *BoundContract) Name() string {
	return c.desc.Name
}

// Signer returns the signer the handle is bound to.
func (c *BoundContract) Signer() *wallet.Signer {
	return c.signer
}

func (c *BoundContract) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := c.desc.ABI.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrap(err, "c.desc.ABI.Pack")
	}

	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	to := c.desc.Address
	res, err := c.backend.CallContract(
		ctx,
		ethereum.CallMsg{
			From: c.signer.Account,
			To:   &to,
			Data: data,
		},
		nil,
	)
	if err != nil {
		return nil, errors.Wrap(err, "c.backend.CallContract")
	}

	out, err := c.desc.ABI.Unpack(method, res)
	if err != nil {
		return nil, errors.Wrap(err, "c.desc.ABI.Unpack")
	}
	if len(out) == 0 {
		return nil, errors.Errorf("no outputs from %s call", method)
	}

	return out, nil
}

func (c *BoundContract) callBig(ctx context.Context, method string, args ...any) (*big.Int, error) {
	out, err := c.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("failed to cast %s result to *big.Int", method)
	}
	return v, nil
}

func (c *BoundContract) callAddress(ctx context.Context, method string, args ...any) (common.Address, error) {
	out, err := c.call(ctx, method, args...)
	if err != nil {
		return common.Address{}, err
	}
	v, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, errors.Errorf("failed to cast %s result to address", method)
	}
	return v, nil
}

func (c *BoundContract) transact(ctx context.Context, method string, args ...any) (*types.Transaction, error) {
	data, err := c.desc.ABI.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrap(err, "c.desc.ABI.Pack")
	}

	opts := c.signer.TransactOpts(ctx)
	to := c.desc.Address

	var nonce uint64
	if opts.Nonce != nil {
		nonce = opts.Nonce.Uint64()
	} else {
		nonce, err = c.backend.PendingNonceAt(ctx, opts.From)
		if err != nil {
			return nil, errors.Wrap(err, "c.backend.PendingNonceAt")
		}
	}

	gasPrice := opts.GasPrice
	if gasPrice == nil {
		gasPrice, err = c.backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "c.backend.SuggestGasPrice")
		}
	}

	value := opts.Value
	if value == nil {
		value = new(big.Int)
	}

	gasLimit := opts.GasLimit
	if gasLimit == 0 {
		gasLimit, err = c.backend.EstimateGas(ctx, ethereum.CallMsg{
			From:     opts.From,
			To:       &to,
			GasPrice: gasPrice,
			Value:    value,
			Data:     data,
		})
		if err != nil {
			return nil, errors.Wrap(err, "c.backend.EstimateGas")
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &to,
		Value:    value,
		Data:     data,
	})

	signed, err := opts.Signer(opts.From, tx)
	if err != nil {
		return nil, errors.Wrap(err, "opts.Signer")
	}
	if opts.NoSend {
		return signed, nil
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, errors.Wrap(err, "c.backend.SendTransaction")
	}
	return signed, nil
}
