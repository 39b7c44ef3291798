package wallet

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
)

// ethService serves the eth_ namespace subset a node wallet answers.
type ethService struct {
	key      *ecdsa.PrivateKey
	accounts []common.Address
	chainID  *big.Int
}

func (s *ethService) Accounts() []common.Address {
	return s.accounts
}

func (s *ethService) ChainId() *hexutil.Big {
	return (*hexutil.Big)(s.chainID)
}

func (s *ethService) SignTransaction(args txArgs) (hexutil.Bytes, error) {
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    uint64(args.Nonce),
		GasPrice: args.GasPrice.ToInt(),
		Gas:      uint64(args.Gas),
		To:       args.To,
		Value:    args.Value.ToInt(),
		Data:     args.Data,
	})
	signed, err := types.SignTx(tx, types.NewEIP155Signer(s.chainID), s.key)
	if err != nil {
		return nil, err
	}
	return signed.MarshalBinary()
}

func newTestNode(t *testing.T, withAccount bool) (*NodeProvider, *ethService) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	svc := &ethService{key: key, chainID: big.NewInt(1337)}
	if withAccount {
		svc.accounts = []common.Address{crypto.PubkeyToAddress(key.PublicKey)}
	}

	srv := rpc.NewServer()
	require.NoError(t, srv.RegisterName("eth", svc))
	t.Cleanup(srv.Stop)

	p := NewNodeProvider(rpc.DialInProc(srv))
	t.Cleanup(p.Close)
	return p, svc
}

func TestNodeProvider_DefaultSigner(t *testing.T) {
	t.Parallel()

	t.Run("first account signs through the node", func(t *testing.T) {
		t.Parallel()

		p, svc := newTestNode(t, true)

		signer, err := p.DefaultSigner(context.Background())
		require.NoError(t, err)
		require.Equal(t, svc.accounts[0], signer.Account)
		require.Equal(t, svc.accounts[0], signer.Opts.From)

		to := common.HexToAddress("0x18426047a5f6775b102e1fE2581F4262068f9AeB")
		tx := types.NewTx(&types.LegacyTx{
			Nonce:    7,
			GasPrice: big.NewInt(1_000_000_000),
			Gas:      50_000,
			To:       &to,
			Value:    big.NewInt(0),
			Data:     []byte{0xde, 0xad, 0xbe, 0xef},
		})

		signed, err := signer.Opts.Signer(signer.Account, tx)
		require.NoError(t, err)
		require.Equal(t, uint64(7), signed.Nonce())
		require.Equal(t, to, *signed.To())
		require.Equal(t, tx.Data(), signed.Data())

		sender, err := types.Sender(types.LatestSignerForChainID(svc.chainID), signed)
		require.NoError(t, err)
		require.Equal(t, svc.accounts[0], sender)
	})

	t.Run("foreign account is rejected", func(t *testing.T) {
		t.Parallel()

		p, _ := newTestNode(t, true)

		signer, err := p.DefaultSigner(context.Background())
		require.NoError(t, err)

		tx := types.NewTx(&types.LegacyTx{GasPrice: big.NewInt(1), Value: big.NewInt(0)})
		_, err = signer.Opts.Signer(common.HexToAddress("0x1"), tx)
		require.ErrorIs(t, err, bind.ErrNotAuthorized)
	})

	t.Run("signing follows the transact context", func(t *testing.T) {
		t.Parallel()

		p, svc := newTestNode(t, true)

		signer, err := p.DefaultSigner(context.Background())
		require.NoError(t, err)

		tx := types.NewTx(&types.LegacyTx{GasPrice: big.NewInt(1), Gas: 21_000, Value: big.NewInt(0)})

		signed, err := signer.TransactOpts(context.Background()).Signer(signer.Account, tx)
		require.NoError(t, err)
		sender, err := types.Sender(types.LatestSignerForChainID(svc.chainID), signed)
		require.NoError(t, err)
		require.Equal(t, signer.Account, sender)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		opts := signer.TransactOpts(ctx)
		_, err = opts.Signer(signer.Account, tx)
		require.ErrorIs(t, err, context.Canceled)
		require.Same(t, ctx, opts.Context)
	})

	t.Run("no accounts", func(t *testing.T) {
		t.Parallel()

		p, _ := newTestNode(t, false)

		signer, err := p.DefaultSigner(context.Background())
		require.Error(t, err)
		require.True(t, errors.Is(err, apperrors.ErrNoAccount))
		require.Nil(t, signer)
	})
}

func TestDecodeSignResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    []byte
		wantErr bool
	}{
		{name: "bare hex", in: `"0x0102"`, want: []byte{1, 2}},
		{name: "geth object", in: `{"raw":"0x0a0b","tx":{}}`, want: []byte{0x0a, 0x0b}},
		{name: "empty object", in: `{}`, wantErr: true},
		{name: "garbage", in: `42`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := decodeSignResult([]byte(tt.in))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
