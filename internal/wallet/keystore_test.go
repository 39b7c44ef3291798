package wallet

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/config"
)

// chainBackend answers ChainID only; it fails the first `failures` calls.
type chainBackend struct {
	Backend
	chainID  *big.Int
	failures int
	calls    int
}

func (b *chainBackend) ChainID(context.Context) (*big.Int, error) {
	b.calls++
	if b.calls <= b.failures {
		return nil, errors.New("connection refused")
	}
	return b.chainID, nil
}

func TestKeystoreProvider_DefaultSigner(t *testing.T) {
	t.Parallel()

	const passphrase = "correct horse"

	t.Run("unlocks first account", func(t *testing.T) {
		t.Parallel()

		ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
		acc, err := ks.NewAccount(passphrase)
		require.NoError(t, err)

		chainID := big.NewInt(81)
		p := NewKeystoreProvider(ks, &chainBackend{chainID: chainID}, passphrase)

		signer, err := p.DefaultSigner(context.Background())
		require.NoError(t, err)
		require.Equal(t, acc.Address, signer.Account)
		require.Equal(t, acc.Address, signer.Opts.From)

		to := common.HexToAddress("0x0a1d32E80B22A5D6D1Bfe58CE158684F8d8Cc125")
		tx := types.NewTx(&types.LegacyTx{GasPrice: big.NewInt(1), Gas: 21_000, To: &to, Value: big.NewInt(0)})
		signed, err := signer.Opts.Signer(acc.Address, tx)
		require.NoError(t, err)

		sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
		require.NoError(t, err)
		require.Equal(t, acc.Address, sender)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		t.Parallel()

		ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
		_, err := ks.NewAccount(passphrase)
		require.NoError(t, err)

		p := NewKeystoreProvider(ks, &chainBackend{chainID: big.NewInt(81)}, "wrong")

		signer, err := p.DefaultSigner(context.Background())
		require.Error(t, err)
		require.Nil(t, signer)
	})

	t.Run("empty keystore", func(t *testing.T) {
		t.Parallel()

		ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
		p := NewKeystoreProvider(ks, &chainBackend{chainID: big.NewInt(81)}, passphrase)

		_, err := p.DefaultSigner(context.Background())
		require.True(t, errors.Is(err, apperrors.ErrNoAccount))
	})
}

func TestKeystoreProvider_Close(t *testing.T) {
	t.Parallel()

	const passphrase = "correct horse"

	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	acc, err := ks.NewAccount(passphrase)
	require.NoError(t, err)

	p := NewKeystoreProvider(ks, &chainBackend{chainID: big.NewInt(81)}, passphrase)

	_, err = p.DefaultSigner(context.Background())
	require.NoError(t, err)

	hash := make([]byte, 32)
	_, err = ks.SignHash(acc, hash)
	require.NoError(t, err)

	p.Close()

	_, err = ks.SignHash(acc, hash)
	require.ErrorIs(t, err, keystore.ErrLocked)

	_, err = p.DefaultSigner(context.Background())
	require.True(t, errors.Is(err, apperrors.ErrNoProvider))

	require.NotPanics(t, p.Close)
}

func TestHandshake(t *testing.T) {
	t.Parallel()

	policy := func() backoff.BackOff { return backoff.NewConstantBackOff(time.Millisecond) }

	t.Run("recovers after failures", func(t *testing.T) {
		t.Parallel()

		b := &chainBackend{chainID: big.NewInt(592), failures: 2}
		got, err := handshake(context.Background(), b, policy(), 3, zap.NewNop())
		require.NoError(t, err)
		require.Equal(t, int64(592), got.Int64())
		require.Equal(t, 3, b.calls)
	})

	t.Run("gives up after max tries", func(t *testing.T) {
		t.Parallel()

		b := &chainBackend{chainID: big.NewInt(592), failures: 10}
		_, err := handshake(context.Background(), b, policy(), 2, zap.NewNop())
		require.Error(t, err)
		require.Equal(t, 2, b.calls)
	})
}

func TestDetect(t *testing.T) {
	t.Parallel()

	t.Run("no wallet configured", func(t *testing.T) {
		t.Parallel()

		p, err := Detect(context.Background(), config.WalletConfig{}, zap.NewNop())
		require.NoError(t, err)
		require.Nil(t, p)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		p, err := Detect(context.Background(), config.WalletConfig{Kind: "metamask"}, zap.NewNop())
		require.Error(t, err)
		require.Nil(t, p)
	})
}
