package wallet

import (
	"context"
	"encoding/json"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
)

const signTimeout = 30 * time.Second

// NodeProvider is a wallet backed by a JSON-RPC endpoint that manages
// accounts itself (geth with clef, anvil, hardhat node). Signing is
// delegated to the endpoint through eth_signTransaction.
type NodeProvider struct {
	rpc     *rpc.Client
	backend *ethclient.Client
}

// DialNode connects to a JSON-RPC wallet endpoint.
func DialNode(ctx context.Context, rawURL string) (*NodeProvider, error) {
	c, err := rpc.DialContext(ctx, rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "rpc.DialContext")
	}
	return NewNodeProvider(c), nil
}

// NewNodeProvider wraps an established RPC client.
func NewNodeProvider(c *rpc.Client) *NodeProvider {
	return &NodeProvider{
		rpc:     c,
		backend: ethclient.NewClient(c),
	}
}

// Backend returns the ethclient bound to the endpoint.
func (p *NodeProvider) Backend() Backend {
	return p.backend
}

// DefaultSigner returns a signer for account #0 of eth_accounts.
func (p *NodeProvider) DefaultSigner(ctx context.Context) (*Signer, error) {
	var accounts []common.Address
	if err := p.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, errors.Wrap(err, "p.rpc.CallContext eth_accounts")
	}
	if len(accounts) == 0 {
		return nil, errors.Wrap(apperrors.ErrNoAccount, "eth_accounts is empty")
	}

	chainID, err := p.backend.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "p.backend.ChainID")
	}

	account := accounts[0]
	return &Signer{
		Account: account,
		Opts: &bind.TransactOpts{
			From:   account,
			Signer: p.signerFn(context.Background(), account, chainID),
		},
		signWith: func(ctx context.Context) bind.SignerFn {
			return p.signerFn(ctx, account, chainID)
		},
	}, nil
}

// Close closes the underlying RPC connection.
func (p *NodeProvider) Close() {
	p.rpc.Close()
}

type txArgs struct {
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to,omitempty"`
	Gas      hexutil.Uint64  `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Value    *hexutil.Big    `json:"value"`
	Nonce    hexutil.Uint64  `json:"nonce"`
	Data     hexutil.Bytes   `json:"data"`
	ChainID  *hexutil.Big    `json:"chainId,omitempty"`
}

// signerFn signs through eth_signTransaction under ctx. Without a deadline on
// ctx the call is bounded by signTimeout.
func (p *NodeProvider) signerFn(ctx context.Context, account common.Address, chainID *big.Int) bind.SignerFn {
	signer := types.LatestSignerForChainID(chainID)

	return func(from common.Address, tx *types.Transaction) (*types.Transaction, error) {
		if from != account {
			return nil, bind.ErrNotAuthorized
		}

		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "sign transaction")
		}

		ctx := ctx
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, signTimeout)
			defer cancel()
		}

		args := txArgs{
			From:     from,
			To:       tx.To(),
			Gas:      hexutil.Uint64(tx.Gas()),
			GasPrice: (*hexutil.Big)(tx.GasPrice()),
			Value:    (*hexutil.Big)(tx.Value()),
			Nonce:    hexutil.Uint64(tx.Nonce()),
			Data:     tx.Data(),
			ChainID:  (*hexutil.Big)(chainID),
		}

		var res json.RawMessage
		if err := p.rpc.CallContext(ctx, &res, "eth_signTransaction", args); err != nil {
			return nil, errors.Wrap(err, "p.rpc.CallContext eth_signTransaction")
		}

		raw, err := decodeSignResult(res)
		if err != nil {
			return nil, err
		}

		signed := new(types.Transaction)
		if err := signed.UnmarshalBinary(raw); err != nil {
			return nil, errors.Wrap(err, "signed.UnmarshalBinary")
		}

		sender, err := types.Sender(signer, signed)
		if err != nil {
			return nil, errors.Wrap(err, "types.Sender")
		}
		if sender != account {
			return nil, errors.Errorf("transaction signed by %s, want %s", sender.Hex(), account.Hex())
		}
		return signed, nil
	}
}

// decodeSignResult accepts both the geth shape {"raw": "0x..", "tx": {..}}
// and a bare raw transaction hex string.
func decodeSignResult(res json.RawMessage) ([]byte, error) {
	var raw hexutil.Bytes
	if err := json.Unmarshal(res, &raw); err == nil {
		return raw, nil
	}

	var obj struct {
		Raw hexutil.Bytes `json:"raw"`
	}
	if err := json.Unmarshal(res, &obj); err != nil {
		return nil, errors.Wrap(err, "json.Unmarshal sign result")
	}
	if len(obj.Raw) == 0 {
		return nil, errors.New("empty sign result")
	}
	return obj.Raw, nil
}
