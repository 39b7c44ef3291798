package wallet

import (
	"context"
	"math/big"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-dapp-connector/internal/config"
)

// Detect returns the wallet provider selected by cfg.
// It returns a nil Provider and no error when no wallet is configured.
func Detect(ctx context.Context, cfg config.WalletConfig, logger *zap.Logger) (Provider, error) {
	var (
		p   Provider
		err error
	)

	switch cfg.Kind {
	case config.WalletNone:
		logger.Info("wallet provider doesn't exist")
		return nil, nil
	case config.WalletNode:
		p, err = DialNode(ctx, cfg.RPCURL)
	case config.WalletKeystore:
		p, err = OpenKeystore(ctx, cfg.KeystoreDir, cfg.RPCURL, cfg.Passphrase)
	default:
		return nil, errors.Errorf("unknown wallet kind %q", cfg.Kind)
	}
	if err != nil {
		return nil, err
	}

	chainID, err := handshake(ctx, p.Backend(), backoff.NewExponentialBackOff(), cfg.HandshakeTries, logger)
	if err != nil {
		if c, ok := p.(interface{ Close() }); ok {
			c.Close()
		}
		return nil, errors.Wrap(err, "handshake")
	}

	logger.Info("wallet provider detected",
		zap.String("kind", cfg.Kind),
		zap.Stringer("chain_id", chainID))
	return p, nil
}

// handshake checks the provider answers eth_chainId.
func handshake(ctx context.Context, b Backend, policy backoff.BackOff, tries uint, logger *zap.Logger) (*big.Int, error) {
	notify := func(err error, d time.Duration) {
		logger.Warn("wallet provider handshake failed", zap.Error(err), zap.Duration("backoff", d))
	}

	operation := func() (*big.Int, error) {
		return b.ChainID(ctx)
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(tries),
		backoff.WithNotify(notify))
}
